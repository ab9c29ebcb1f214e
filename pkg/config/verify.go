package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// schemaDoc is the part of a generated schema needed for verification
type schemaDoc struct {
	Ref  string               `json:"$ref"`
	Defs map[string]schemaDef `json:"$defs"`
}

type schemaDef struct {
	Properties map[string]struct {
		Ref string `json:"$ref"`
	} `json:"properties"`
}

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// It reports config keys the schema doesn't know about, i.e. a stale schema.json.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema schemaDoc
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]interface{}
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	var unknown []string
	checkProperties(schema, defName(schema.Ref), "", configMap, &unknown)
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("properties missing in schema: %s", strings.Join(unknown, ", "))
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// checkProperties walks the config map along schema definitions and collects unknown keys
func checkProperties(schema schemaDoc, def, prefix string, values map[string]interface{}, unknown *[]string) {
	d, ok := schema.Defs[def]
	if !ok {
		*unknown = append(*unknown, prefix+"*")
		return
	}
	for k, v := range values {
		prop, ok := d.Properties[k]
		if !ok {
			*unknown = append(*unknown, prefix+k)
			continue
		}
		if nested, ok := v.(map[string]interface{}); ok && prop.Ref != "" {
			checkProperties(schema, defName(prop.Ref), prefix+k+".", nested, unknown)
		}
	}
}

func defName(ref string) string {
	return strings.TrimPrefix(ref, "#/$defs/")
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if cfg.Pager.PageSize == 0 {
		return fmt.Errorf("pager.page_size is required")
	}
	if cfg.Feedback.Key == "" {
		return fmt.Errorf("feedback.key is required")
	}
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
