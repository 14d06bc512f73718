package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterValidation(t *testing.T) {
	reg := &Registry{definitions: map[CardID]CardDefinition{}}

	assert.Error(t, reg.Register(CardDefinition{Factory: NewGeographyCard}))
	assert.Error(t, reg.Register(CardDefinition{ID: "weather"}))
	require.NoError(t, reg.Register(CardDefinition{ID: "weather", Title: "Weather", Factory: NewGeographyCard}))

	def, ok := reg.Definition("weather")
	require.True(t, ok)
	assert.Equal(t, "Weather", def.Title)
}

func TestRegistryDefinitionsSorted(t *testing.T) {
	defs := NewRegistry().Definitions()
	require.NotEmpty(t, defs)
	for i := 1; i < len(defs); i++ {
		assert.Less(t, string(defs[i-1].ID), string(defs[i].ID))
	}
}

func TestRegistryBuild(t *testing.T) {
	reg := NewRegistry()

	card, err := reg.Build(CardGeography, CardDeps{})
	require.NoError(t, err)
	assert.Equal(t, CardGeography, card.ID())
	_, err = card.Render(context.Background(), RenderContext{Format: NewFormatter("en")})
	assert.NoError(t, err)

	_, err = reg.Build("weather", CardDeps{})
	assert.ErrorIs(t, err, ErrUnknownCard)
}

func TestLocalizedTitle(t *testing.T) {
	def := CardDefinition{
		Title:          "Revenue Analytics",
		TitleLocalized: map[string]string{"de": "Umsatzanalyse", "pt-br": "Análise de Receita"},
	}

	assert.Equal(t, "Umsatzanalyse", def.LocalizedTitle("de-DE"))
	assert.Equal(t, "Análise de Receita", def.LocalizedTitle("pt-BR"))
	assert.Equal(t, "Revenue Analytics", def.LocalizedTitle("fr"))
	assert.Equal(t, "Revenue Analytics", def.LocalizedTitle(""))
}
