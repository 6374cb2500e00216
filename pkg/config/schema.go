package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed casefile.schema.json
var caseFileSchema []byte

const schemaURL = "casefile.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// SchemaError lists the schema violations of a case file.
type SchemaError struct {
	Violations []Violation
}

// Violation is one schema violation.
type Violation struct {
	// Path is the location in the document, e.g. "cases.0.expect".
	Path    string
	Message string
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

func (e *SchemaError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return strings.Join(msgs, "; ")
}

// Is makes errors.Is(err, ErrSchema) hold for schema errors.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(caseFileSchema)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return compiler.Compile(schemaURL)
}

// ValidateDocument validates a generically decoded case file against the
// embedded schema.
func ValidateDocument(doc any) error {
	schemaOnce.Do(func() {
		schema, schemaErr = compileSchema()
	})
	if schemaErr != nil {
		return fmt.Errorf("schema compilation error: %w", schemaErr)
	}

	// Round trip through JSON so YAML mappings with non-string keys and
	// Go numeric types reach the validator as plain JSON values.
	data, err := json.Marshal(jsonCompatible(doc))
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		verr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return fmt.Errorf("%w: %v", ErrSchema, err)
		}
		result := &SchemaError{}
		collectViolations(verr, result)
		return result
	}
	return nil
}

func collectViolations(err *jsonschema.ValidationError, result *SchemaError) {
	if len(err.Causes) == 0 {
		result.Violations = append(result.Violations, Violation{
			Path:    pointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectViolations(cause, result)
	}
}

func pointerToPath(ptr string) string {
	if ptr == "" || ptr == "/" {
		return ""
	}
	return strings.ReplaceAll(strings.TrimPrefix(ptr, "/"), "/", ".")
}

// jsonCompatible converts map[any]any values produced by YAML decoding to
// map[string]any, recursively.
func jsonCompatible(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = jsonCompatible(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = jsonCompatible(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = jsonCompatible(val)
		}
		return out
	default:
		return v
	}
}
