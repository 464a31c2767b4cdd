package prefabs

import "gopkg.in/yaml.v3"

// DecodeComponentSpec re-decodes a loosely typed YAML value (an action
// argument, a level prop) into T.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}
