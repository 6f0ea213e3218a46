// Package schemas provides JSON Schema validation for style files and preset exports.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ResolveSchemaPath looks for relativePath under the working directory and up to two
// parents, so commands and package tests find the repository's schemas/ directory.
// Returns the absolute path, or "" when nothing matches.
func ResolveSchemaPath(relativePath string) string {
	for _, candidate := range []string{
		relativePath,
		filepath.Join("..", relativePath),
		filepath.Join("..", "..", relativePath),
	} {
		absPath, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if _, err := os.Stat(absPath); err == nil {
			return absPath
		}
	}
	return ""
}

// FieldError is one schema violation. Field is a dotted path, "(root)" for the document.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation of a document.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// SchemaLoadError reports a schema that could not be read or compiled, or a document
// that could not be decoded for validation.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Schema is a compiled JSON Schema. It is safe for concurrent use.
type Schema struct {
	source   string
	compiled *gojsonschema.Schema
}

// compiledFiles caches schemas loaded from disk by absolute path.
var compiledFiles sync.Map

// Compile compiles schema content held in memory.
func Compile(content string) (*Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(content))
	if err != nil {
		return nil, &SchemaLoadError{Path: "(string schema)", Message: "invalid schema", Cause: err}
	}
	return &Schema{source: "(string schema)", compiled: compiled}, nil
}

// MustCompile is Compile for package-level schemas; it panics on an invalid schema.
func MustCompile(content string) *Schema {
	s, err := Compile(content)
	if err != nil {
		panic(err)
	}
	return s
}

// Load compiles the schema file at path, reusing an earlier compilation of the same file.
func Load(path string) (*Schema, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema path: %w", err)
	}
	if cached, ok := compiledFiles.Load(absPath); ok {
		return cached.(*Schema), nil
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, fmt.Errorf("schema file not found: %s", absPath)
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewReferenceLoader("file://" + absPath))
	if err != nil {
		return nil, &SchemaLoadError{Path: absPath, Message: "invalid schema", Cause: err}
	}
	s := &Schema{source: absPath, compiled: compiled}
	actual, _ := compiledFiles.LoadOrStore(absPath, s)
	return actual.(*Schema), nil
}

// ValidateBytes validates raw JSON.
func (s *Schema) ValidateBytes(data []byte) error {
	return s.validate(gojsonschema.NewBytesLoader(data))
}

// ValidateDocument validates an already decoded value, such as parsed YAML.
func (s *Schema) ValidateDocument(document any) error {
	return s.validate(gojsonschema.NewGoLoader(document))
}

func (s *Schema) validate(document gojsonschema.JSONLoader) error {
	result, err := s.compiled.Validate(document)
	if err != nil {
		return &SchemaLoadError{Path: s.source, Message: "document could not be validated", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return validationErr
}

// ValidateJSON validates the JSON file at jsonPath against the schema file at schemaPath.
func ValidateJSON(schemaPath, jsonPath string) error {
	schema, err := Load(schemaPath)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", jsonPath)
		}
		return fmt.Errorf("failed to read %s: %w", jsonPath, err)
	}
	return schema.ValidateBytes(data)
}

// ValidateJSONString validates JSON content against schema content.
func ValidateJSONString(schemaContent, jsonContent string) error {
	schema, err := Compile(schemaContent)
	if err != nil {
		return err
	}
	return schema.ValidateBytes([]byte(jsonContent))
}

// ValidateDocument validates a decoded document against the schema file at schemaPath.
func ValidateDocument(schemaPath string, document any) error {
	schema, err := Load(schemaPath)
	if err != nil {
		return err
	}
	return schema.ValidateDocument(document)
}
