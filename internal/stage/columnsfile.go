package stage

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed columnsets_schema.json
var columnSetsSchema string

// columnSetsFile is the on-disk shape of a column-sets document:
//
//	tables:
//	  mosaic_stage:
//	    - mosaic_id
//	    - uri
type columnSetsFile struct {
	Tables map[string][]string `yaml:"tables"`
}

// LoadColumnSets reads a YAML column-sets file, validates its structure
// against the embedded schema, and checks every column name against the
// staging vocabulary.
func LoadColumnSets(path string) (map[string][]string, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- user-supplied config path
	if err != nil {
		return nil, fmt.Errorf("reading column sets: %w", err)
	}

	var raw interface{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parsing column sets: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(columnSetsSchema),
		gojsonschema.NewGoLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("validating column sets: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("invalid column sets file %s: %s", path, result.Errors()[0])
	}

	var parsed columnSetsFile
	if err := yaml.Unmarshal(content, &parsed); err != nil {
		return nil, fmt.Errorf("parsing column sets: %w", err)
	}

	for table, columns := range parsed.Tables {
		if err := ValidateColumns(columns); err != nil {
			return nil, fmt.Errorf("table %q: %w", table, err)
		}
	}
	return parsed.Tables, nil
}
