// Package config loads the binding's settings from YAML. Documents are
// checked against a JSON schema reflected from Config before they are decoded.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/invopop/jsonschema"
	schemavalidator "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Config is the root of the YAML document.
type Config struct {
	Logging Logging `yaml:"logging" json:"logging,omitempty" jsonschema:"description=Logging for the binding and its marshaling layer"`
}

// Logging controls the log package.
type Logging struct {
	Level        string   `yaml:"level" json:"level,omitempty" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Format       string   `yaml:"format" json:"format,omitempty" jsonschema:"enum=text,enum=json,default=text"`
	TraceTargets []string `yaml:"trace_targets" json:"trace_targets,omitempty" jsonschema:"description=Glob patterns of targets allowed to log at trace level (e.g. smbc/**)"`
}

// Error reports an invalid configuration document.
type Error struct {
	Field string // JSON pointer or field name; empty for document-level errors
	Err   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// Schema reflects the JSON schema of Config.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{DoNotReference: true}
	return r.Reflect(&Config{})
}

var compiled = sync.OnceValues(func() (*schemavalidator.Schema, error) {
	raw, err := json.Marshal(Schema())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config schema: %w", err)
	}
	const url = "smbc-config.json"
	c := schemavalidator.NewCompiler()
	if err := c.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to add config schema: %w", err)
	}
	return c.Compile(url)
})

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse validates a YAML document and decodes it over Default.
func Parse(data []byte) (*Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Err: err}
	}
	if doc == nil {
		doc = map[string]any{}
	}

	// The validator expects encoding/json types.
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("failed to prepare validation object: %w", err)}
	}
	var obj any
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, &Error{Err: fmt.Errorf("failed to prepare validation object: %w", err)}
	}

	sch, err := compiled()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(obj); err != nil {
		var ve *schemavalidator.ValidationError
		if errors.As(err, &ve) {
			leaf := ve
			for len(leaf.Causes) > 0 {
				leaf = leaf.Causes[0]
			}
			return nil, &Error{Field: leaf.InstanceLocation, Err: errors.New(leaf.Message)}
		}
		return nil, &Error{Err: err}
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &Error{Err: err}
	}
	for _, p := range cfg.Logging.TraceTargets {
		if !doublestar.ValidatePattern(p) {
			return nil, &Error{Field: "logging.trace_targets", Err: fmt.Errorf("invalid glob pattern %q", p)}
		}
	}
	return &cfg, nil
}
