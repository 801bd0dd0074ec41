package cpbridge

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// compileDescriptor produces a JSON Schema map (exported to the orchestrator)
// and a resolved validator from a declarative descriptor. It is called once
// when the tool is registered.
func compileDescriptor(d Descriptor) (map[string]any, *jsonschema.Resolved, error) {
	if d.Name == "" {
		return nil, nil, fmt.Errorf("descriptor has no name")
	}
	props := make(map[string]any, len(d.Params))
	var required []any
	seen := make(map[string]bool, len(d.Params))
	for _, p := range d.Params {
		if p.Name == "" {
			return nil, nil, fmt.Errorf("tool %q: parameter with empty name", d.Name)
		}
		if seen[p.Name] {
			return nil, nil, fmt.Errorf("tool %q: duplicate parameter %q", d.Name, p.Name)
		}
		seen[p.Name] = true
		if p.Required && (p.Default != nil || p.IdentityDefault) {
			return nil, nil, fmt.Errorf("tool %q: parameter %q is required and carries a default", d.Name, p.Name)
		}
		if p.Default != nil {
			if err := checkDefault(p); err != nil {
				return nil, nil, fmt.Errorf("tool %q: %w", d.Name, err)
			}
		}
		prop, err := paramSchema(p)
		if err != nil {
			return nil, nil, fmt.Errorf("tool %q: %w", d.Name, err)
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schemaMap := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schemaMap["required"] = required
	}
	resolved, err := compileRawSchema(schemaMap)
	if err != nil {
		return nil, nil, fmt.Errorf("tool %q: %w", d.Name, err)
	}
	return schemaMap, resolved, nil
}

// paramSchema maps one Param to its JSON Schema node.
func paramSchema(p Param) (map[string]any, error) {
	node := map[string]any{}
	switch p.Type {
	case TypeString:
		node["type"] = "string"
		if len(p.Enum) > 0 {
			enum := make([]any, len(p.Enum))
			for i, v := range p.Enum {
				enum[i] = v
			}
			node["enum"] = enum
		}
	case TypeInteger:
		node["type"] = "integer"
		if p.Min != nil {
			node["minimum"] = *p.Min
		}
		if p.Max != nil {
			node["maximum"] = *p.Max
		}
	case TypeBoolean:
		node["type"] = "boolean"
	case TypeStringList:
		node["type"] = "array"
		node["items"] = map[string]any{"type": "string"}
	default:
		return nil, fmt.Errorf("parameter %q: unsupported type %q", p.Name, p.Type)
	}
	if p.Description != "" {
		node["description"] = p.Description
	}
	return node, nil
}

// checkDefault verifies a literal default matches the declared type.
func checkDefault(p Param) error {
	ok := false
	switch p.Type {
	case TypeString:
		_, ok = p.Default.(string)
	case TypeInteger:
		_, ok = p.Default.(int)
	case TypeBoolean:
		_, ok = p.Default.(bool)
	case TypeStringList:
		_, ok = p.Default.([]string)
	}
	if !ok {
		return fmt.Errorf("parameter %q: default %v does not match type %s", p.Name, p.Default, p.Type)
	}
	return nil
}

// compileRawSchema compiles a raw JSON Schema map into a resolved validator.
// The map is not mutated.
func compileRawSchema(schemaMap map[string]any) (*jsonschema.Resolved, error) {
	data, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, err
	}
	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s.Resolve(nil)
}

// validateAgainstSchema checks already-coerced arguments against the compiled
// schema. v must come from json.Unmarshal so value kinds match the validator's
// expectations.
func validateAgainstSchema(resolved *jsonschema.Resolved, v any) error {
	if err := resolved.Validate(v); err != nil {
		return &ArgumentError{Reason: err.Error(), Err: ErrInvalidArguments}
	}
	return nil
}
