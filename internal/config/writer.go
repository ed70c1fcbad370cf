package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by WriteDefaultConfig when the target file is present.
var ErrConfigExists = errors.New("config file already exists")

// nest turns dotted keys into the nested map yaml expects.
func nest(flat map[string]any) map[string]any {
	out := map[string]any{}
	for key, value := range flat {
		parts := strings.Split(key, ".")
		cur := out
		for _, p := range parts[:len(parts)-1] {
			next, ok := cur[p].(map[string]any)
			if !ok {
				next = map[string]any{}
				cur[p] = next
			}
			cur = next
		}
		if d, ok := value.(interface{ String() string }); ok {
			value = d.String()
		}
		cur[parts[len(parts)-1]] = value
	}
	return out
}

// WriteDefaultConfig writes a YAML config holding every default to path.
// An existing file is only replaced when force is set.
func WriteDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	body, err := yaml.Marshal(nest(Defaults()))
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	content := "# daytrack configuration\n" + string(body)
	return os.WriteFile(path, []byte(content), 0644)
}
