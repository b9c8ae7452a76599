package scheme

// #region imports
import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// #endregion

// #region parse-yaml

// ParseYAML decodes one YAML scheme definition document into the raw map
// form that Load consumes. File I/O stays with the caller.
func ParseYAML(data []byte) (map[string]any, error) {
	var def map[string]any
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse scheme yaml: %w", err)
	}
	return def, nil
}

// #endregion
