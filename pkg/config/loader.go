package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Common errors for case file loading.
var (
	ErrFileNotFound     = errors.New("case file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("case file is empty")
	ErrSchema           = errors.New("case file does not match schema")
)

// Format is a case file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf detects the format from the file extension (.yaml, .yml for
// YAML, otherwise JSON).
func FormatOf(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return FormatYAML
	}
	return FormatJSON
}

// LoadFromFile reads a case file.
// Returns wrapped errors for common failure cases.
func LoadFromFile(path string) (*CaseFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	cf, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cf.Path = path
	return cf, nil
}

// Parse decodes and validates a case file.
func Parse(data []byte, format Format) (*CaseFile, error) {
	if format == FormatYAML {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}

// ParseJSON parses a JSON case file. Numbers are kept as json.Number so
// offsets stay integers.
func ParseJSON(data []byte) (*CaseFile, error) {
	var doc any
	if err := decodeJSON(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}

	var cf CaseFile
	if err := decodeJSON(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if err := cf.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cf, nil
}

// ParseYAML parses a YAML case file.
func ParseYAML(data []byte) (*CaseFile, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}

	var cf CaseFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if err := cf.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cf, nil
}

func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after top-level value")
	}
	return nil
}

// ParseExpectations decodes an inline YAML (and therefore JSON) mapping of
// expectations, as given on the command line.
func ParseExpectations(s string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return v, nil
}

// ToYAML marshals a case file to YAML bytes.
func ToYAML(cf *CaseFile) ([]byte, error) {
	if cf == nil {
		return nil, errors.New("case file cannot be nil")
	}
	data, err := yaml.Marshal(cf)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to YAML: %w", err)
	}
	return data, nil
}
