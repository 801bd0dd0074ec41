package cpbridge

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Args holds the coerced, defaulted arguments a handler receives. Values are
// stored as their declared Go types: string, int, bool, or []string.
type Args map[string]any

// Has reports whether the parameter was supplied or defaulted.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns the string value of name, or "" when absent.
func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

// Int returns the integer value of name, or 0 when absent.
func (a Args) Int(name string) int {
	v, _ := a[name].(int)
	return v
}

// Bool returns the boolean value of name, or false when absent.
func (a Args) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

// StringList returns the list value of name, or nil when absent.
func (a Args) StringList(name string) []string {
	v, _ := a[name].([]string)
	return v
}

// buildArgs coerces supplied values to their declared types and fills defaults.
// Unknown supplied parameters are ignored for forward compatibility. Required
// parameters must be present after coercion.
func buildArgs(d Descriptor, supplied map[string]any, defaultHandle string) (Args, error) {
	out := make(Args, len(d.Params))
	for _, p := range d.Params {
		v, ok := supplied[p.Name]
		if ok && v != nil {
			cv, err := coerceValue(p, v)
			if err != nil {
				return nil, err
			}
			out[p.Name] = cv
			continue
		}
		if p.Required {
			return nil, &ArgumentError{
				Reason: fmt.Sprintf("missing required parameter %q", p.Name),
				Err:    ErrInvalidArguments,
			}
		}
		if p.Default != nil {
			out[p.Name] = p.Default
			continue
		}
		if p.IdentityDefault && defaultHandle != "" {
			if p.Type == TypeStringList {
				out[p.Name] = []string{defaultHandle}
			} else {
				out[p.Name] = defaultHandle
			}
		}
	}
	return out, nil
}

// coerceValue converts a JSON-compatible value to the parameter's declared
// type. String inputs are coerced to integer, boolean, and list types so
// orchestrators that stringify everything still dispatch cleanly.
func coerceValue(p Param, v any) (any, error) {
	switch p.Type {
	case TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case TypeInteger:
		switch n := v.(type) {
		case int:
			return n, nil
		case float64:
			if n == float64(int(n)) {
				return int(n), nil
			}
		case string:
			i, err := strconv.Atoi(strings.TrimSpace(n))
			if err == nil {
				return i, nil
			}
		}
	case TypeBoolean:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(b))
			if err == nil {
				return parsed, nil
			}
		}
	case TypeStringList:
		switch l := v.(type) {
		case []string:
			return l, nil
		case []any:
			out := make([]string, 0, len(l))
			for _, item := range l {
				s, ok := item.(string)
				if !ok {
					return nil, coerceError(p, v)
				}
				out = append(out, s)
			}
			return out, nil
		case string:
			parts := strings.Split(l, ",")
			out := make([]string, 0, len(parts))
			for _, part := range parts {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					out = append(out, trimmed)
				}
			}
			return out, nil
		}
	}
	return nil, coerceError(p, v)
}

func coerceError(p Param, v any) error {
	return &ArgumentError{
		Reason: fmt.Sprintf("parameter %q: cannot interpret %v as %s", p.Name, v, p.Type),
		Err:    ErrInvalidArguments,
	}
}

// validatableArgs rebuilds the coerced arguments as generic JSON values for
// schema validation ([]string becomes []any, int becomes float64).
func validatableArgs(a Args) (any, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
