package bootkit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadPropertySource reads a YAML or TOML file and merges its contents
// into the environment as dotted keys. Nested tables flatten into
// "section.key" form, so
//
//	server:
//	  port: 8080
//
// becomes the property "server.port" = 8080. The format is chosen by file
// extension (.yaml/.yml or .toml).
func LoadPropertySource(env *MapEnvironment, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading property source %s: %w", path, err)
	}

	raw := make(map[string]any)
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing yaml property source %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing toml property source %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrPropertySourceUnsupported, ext)
	}

	flattenInto(env, "", raw)
	return nil
}

func flattenInto(env *MapEnvironment, prefix string, m map[string]any) {
	for key, value := range m {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch nested := value.(type) {
		case map[string]any:
			flattenInto(env, full, nested)
		case map[any]any:
			// older yaml documents decode nested maps with any keys
			converted := make(map[string]any, len(nested))
			for k, v := range nested {
				converted[fmt.Sprintf("%v", k)] = v
			}
			flattenInto(env, full, converted)
		default:
			env.SetProperty(strings.ToLower(full), value)
		}
	}
}
