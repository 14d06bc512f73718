package dashboard

import (
	"errors"
	"testing"
)

func mustDefinition(t *testing.T, id CardID) CardDefinition {
	t.Helper()
	def, ok := NewRegistry().Definition(id)
	if !ok {
		t.Fatalf("card %s not registered", id)
	}
	return def
}

func TestJSONSchemaValidatorRejectsInvalidPayload(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := mustDefinition(t, CardRevenue)

	if err := validator.Validate(def, map[string]any{"action": "select_metric", "value": "profit"}); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
	cases := []map[string]any{
		{},
		{"action": "select_metric"},
		{"action": "select_metric", "value": "margin"},
		{"action": "zoom", "value": "profit"},
		{"action": "select_metric", "value": "profit", "extra": true},
	}
	for _, payload := range cases {
		err := validator.Validate(def, payload)
		if !errors.Is(err, ErrInvalidAction) {
			t.Fatalf("expected ErrInvalidAction for %v, got %v", payload, err)
		}
	}
}

func TestJSONSchemaValidatorRequiresIndexForSelect(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := mustDefinition(t, CardEnhancedInsights)

	if err := validator.Validate(def, map[string]any{"action": "select", "index": 2}); err != nil {
		t.Fatalf("expected valid select, got %v", err)
	}
	if err := validator.Validate(def, map[string]any{"action": "regenerate"}); err != nil {
		t.Fatalf("expected valid regenerate, got %v", err)
	}
	if err := validator.Validate(def, map[string]any{"action": "select_category", "value": "user"}); err != nil {
		t.Fatalf("expected valid category, got %v", err)
	}
	if err := validator.Validate(def, map[string]any{"action": "select"}); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected missing index to fail, got %v", err)
	}
	if err := validator.Validate(def, map[string]any{"action": "select", "index": -1}); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected negative index to fail, got %v", err)
	}
}

func TestJSONSchemaValidatorRejectsCardsWithoutActions(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := mustDefinition(t, CardGeography)
	if err := validator.Validate(def, map[string]any{"action": "select"}); !errors.Is(err, ErrUnsupportedAction) {
		t.Fatalf("expected ErrUnsupportedAction, got %v", err)
	}
}

func TestJSONSchemaValidatorCachesCompiledSchemas(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := mustDefinition(t, CardFunnel)
	payload := map[string]any{"action": "select_period", "value": "week"}
	if err := validator.Validate(def, payload); err != nil {
		t.Fatalf("unexpected error validating payload: %v", err)
	}
	if len(validator.compiled) != 1 {
		t.Fatalf("expected schema cache to contain 1 entry, got %d", len(validator.compiled))
	}
	if err := validator.Validate(def, payload); err != nil {
		t.Fatalf("unexpected error on cached validation: %v", err)
	}
	if len(validator.compiled) != 1 {
		t.Fatalf("expected schema cache to remain 1 entry, got %d", len(validator.compiled))
	}
}

func TestDecodeAction(t *testing.T) {
	action, err := DecodeAction(map[string]any{"action": "select", "index": 3})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if action.Action != "select" || action.Index != 3 {
		t.Fatalf("unexpected action %+v", action)
	}
}
