package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ActionValidator validates card action payloads against the card schema.
type ActionValidator interface {
	Validate(def CardDefinition, payload map[string]any) error
}

// JSONSchemaValidator compiles card schemas once and validates payloads.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[CardID]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[CardID]*jsonschema.Schema),
	}
}

// Validate rejects payloads for cards without a schema and payloads that do
// not satisfy the card schema. Both cases wrap ErrInvalidAction.
func (v *JSONSchemaValidator) Validate(def CardDefinition, payload map[string]any) error {
	if len(def.Schema) == 0 {
		return fmt.Errorf("%w: %s accepts no actions", ErrUnsupportedAction, def.ID)
	}
	schema, err := v.schemaFor(def)
	if err != nil {
		return err
	}
	normalized, err := normalizePayload(payload)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidAction, def.ID, err)
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidAction, def.ID, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(def CardDefinition) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[def.ID]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(def.Schema)
	if err != nil {
		return nil, fmt.Errorf("dashboard: marshal schema %s: %w", def.ID, err)
	}
	compiler := jsonschema.NewCompiler()
	name := string(def.ID) + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dashboard: load schema %s: %w", def.ID, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile schema %s: %w", def.ID, err)
	}
	v.mu.Lock()
	v.compiled[def.ID] = compiled
	v.mu.Unlock()
	return compiled, nil
}

// normalizePayload round-trips through JSON so Go numeric types match what
// the schema library expects.
func normalizePayload(payload map[string]any) (any, error) {
	if payload == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeAction converts a validated payload into a CardAction.
func DecodeAction(payload map[string]any) (CardAction, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return CardAction{}, fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}
	var action CardAction
	if err := json.Unmarshal(data, &action); err != nil {
		return CardAction{}, fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}
	return action, nil
}
