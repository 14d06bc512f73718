package dashboard

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayout(t *testing.T) {
	doc, err := DefaultLayout()
	require.NoError(t, err)
	require.NoError(t, doc.Validate(NewRegistry()))

	assert.Equal(t, "1", doc.Version)
	assert.Equal(t, "AI Analytics Dashboard", doc.Header.Title)
	assert.Equal(t, []CardID{CardSidebar, CardKPIs}, doc.Always)
	assert.Len(t, doc.Tabs, 4)
	assert.Equal(t, []CardID{CardEnhancedInsights, CardRecentActivity}, doc.TabCards(TabAIInsights))
	assert.Len(t, doc.Rows(TabSectors), 2)
	assert.Nil(t, doc.Rows("reports"))
}

func TestDecodeLayoutRejectsUnknownFields(t *testing.T) {
	payload := `
version: "1"
always: [sidebar]
widgets: []
`
	_, err := DecodeLayout(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widgets")
}

func TestDecodeLayoutDefaultsVersion(t *testing.T) {
	doc, err := DecodeLayout(strings.NewReader("always: [sidebar]\n"))
	require.NoError(t, err)
	assert.Equal(t, ManifestVersion, doc.Version)
}

func TestDecodeLayoutEmpty(t *testing.T) {
	_, err := DecodeLayout(strings.NewReader(""))
	require.Error(t, err)
}

func TestLayoutValidate(t *testing.T) {
	reg := NewRegistry()
	cases := map[string]LayoutManifest{
		"version": {Version: "2"},
		"unknown tab": {Version: "1", Tabs: []TabLayout{
			{Key: "reports"},
		}},
		"duplicate tab": {Version: "1", Tabs: []TabLayout{
			{Key: TabOverview}, {Key: TabOverview},
		}},
		"empty id": {Version: "1", Always: []CardID{""}},
		"duplicate always": {Version: "1", Always: []CardID{CardSidebar, CardSidebar}},
		"duplicate in tab": {Version: "1", Tabs: []TabLayout{
			{Key: TabOverview, Rows: [][]CardID{{CardRevenue}, {CardRevenue}}},
		}},
		"always repeated": {Version: "1", Always: []CardID{CardKPIs}, Tabs: []TabLayout{
			{Key: TabOverview, Rows: [][]CardID{{CardKPIs}}},
		}},
		"unregistered": {Version: "1", Tabs: []TabLayout{
			{Key: TabOverview, Rows: [][]CardID{{"weather"}}},
		}},
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, doc.Validate(reg))
		})
	}

	ok := LayoutManifest{Version: "1", Tabs: []TabLayout{
		{Key: TabOverview, Rows: [][]CardID{{"weather"}}},
	}}
	assert.NoError(t, ok.Validate(nil), "registration is only checked with a registry")
}

func TestReadLayoutRoundTrip(t *testing.T) {
	doc, err := DefaultLayout()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeLayout(&buf, doc))

	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	loaded, err := ReadLayout(path)
	require.NoError(t, err)
	assert.Equal(t, path, loaded.Source)
	assert.Equal(t, doc.Tabs, loaded.Tabs)
	assert.Equal(t, doc.Header, loaded.Header)

	_, err = ReadLayout(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
