package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/capmatch/pkg/capture"
)

const dateCasesYAML = `version: "1"
flags: offset_capture|unmatched_as_absent
cases:
  - name: year and month
    pattern: '(?P<year>\d{4})-(?P<month>\d{2})(?:-(?P<day>\d{2}))?'
    subject: 2024-05
    expect:
      year: true
      month: ["05", 5]
      day: false
  - name: day is required
    pattern: '(?P<year>\d{4})-(?P<month>\d{2})(?:-(?P<day>\d{2}))?'
    subject: 2024-05
    negate: true
    expect:
      day: true
  - pattern: '(a)(b)?'
    subject: a
    flags: [unmatched_as_absent]
    expect:
      1: a
      2: ~
`

const dateCasesJSON = `{
  "version": "1",
  "cases": [
    {
      "name": "year and month",
      "pattern": "(?P<year>\\d{4})-(?P<month>\\d{2})",
      "subject": "2024-05",
      "expect": {"year": ["2024", 0], "2": ["05", 5]}
    }
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFile_ValidYAML(t *testing.T) {
	path := writeFile(t, "cases.yaml", dateCasesYAML)

	cf, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, cf.Path)
	assert.Equal(t, "1", cf.Version)
	require.Len(t, cf.Cases, 3)

	first := cf.Cases[0]
	assert.Equal(t, "year and month", first.Name)
	assert.Equal(t, "2024-05", first.Subject)
	assert.Equal(t, map[string]any{
		"year":  true,
		"month": []any{"05", 5},
		"day":   false,
	}, first.Expect)

	assert.True(t, cf.Cases[1].Negate)

	third := cf.Cases[2]
	assert.Equal(t, map[any]any{1: "a", 2: nil}, third.Expect)

	flags, err := cf.DefaultFlags()
	require.NoError(t, err)
	assert.Equal(t, capture.DefaultFlags, flags)

	flags, err = third.FlagsOr(flags)
	require.NoError(t, err)
	assert.Equal(t, capture.UnmatchedAsAbsent, flags)
}

func TestLoadFromFile_ValidJSON(t *testing.T) {
	path := writeFile(t, "cases.json", dateCasesJSON)

	cf, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, cf.Cases, 1)
	assert.Equal(t, map[string]any{
		"year": []any{"2024", json.Number("0")},
		"2":    []any{"05", json.Number("5")},
	}, cf.Cases[0].Expect)
}

func TestLoadFromFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{"invalid json", "bad.json", `{ invalid json }`, ErrInvalidJSON},
		{"trailing json", "bad.json", `{"cases": []} {}`, ErrInvalidJSON},
		{"invalid yaml", "bad.yaml", "cases: [\n  - a: b\n  c", ErrInvalidYAML},
		{"empty file", "empty.yml", "  \n", ErrEmptyFile},
		{"missing cases", "none.json", `{"version": "1"}`, ErrSchema},
		{"unknown field", "extra.yaml", "cases: []\nmocks: []\n", ErrSchema},
		{"missing expect", "case.yaml", "cases:\n  - pattern: a\n    subject: a\n", ErrSchema},
		{"scalar expect", "case.yaml", "cases:\n  - pattern: a\n    subject: a\n    expect: true\n", ErrSchema},
		{"bad match policy", "case.yaml", "cases:\n  - pattern: a\n    subject: a\n    expect: {}\n    match: always\n", ErrSchema},
		{"unknown flag", "case.yaml", "flags: global\ncases: []\n", capture.ErrUnknownFlag},
		{"unknown case flag", "case.yaml", "cases:\n  - pattern: a\n    subject: a\n    expect: {}\n    flags: 8\n", capture.ErrUnknownFlag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cf, err := LoadFromFile(writeFile(t, tt.file, tt.content))
			assert.Nil(t, cf)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadFromFile_UnsupportedVersion(t *testing.T) {
	cf, err := LoadFromFile(writeFile(t, "v2.yaml", "version: \"2\"\ncases: []\n"))
	assert.Nil(t, cf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported version "2"`)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	cf, err := LoadFromFile("/nonexistent/path/cases.yaml")
	assert.Nil(t, cf)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadFromFile_Directory(t *testing.T) {
	cf, err := LoadFromFile(t.TempDir())
	assert.Nil(t, cf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestSchemaError(t *testing.T) {
	_, err := ParseYAML([]byte("cases:\n  - pattern: 1\n    subject: a\n    expect: {}\n"))
	require.Error(t, err)

	var serr *SchemaError
	require.ErrorAs(t, err, &serr)
	require.NotEmpty(t, serr.Violations)
	assert.Equal(t, "cases.0.pattern", serr.Violations[0].Path)
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     any
		wantErr bool
		path    string
	}{
		{
			name: "yaml mapping with integer keys",
			doc: map[string]any{
				"version": "1",
				"flags":   3,
				"cases": []any{map[any]any{
					"pattern": "a",
					"subject": "a",
					"expect":  map[any]any{0: []any{"a", 0}},
				}},
			},
		},
		{
			name: "unknown case field",
			doc: map[string]any{
				"cases": []any{map[string]any{
					"pattern": "a", "subject": "a", "expect": map[string]any{}, "bogus": 1,
				}},
			},
			wantErr: true,
			path:    "cases.0",
		},
		{
			name:    "negative flag mask",
			doc:     map[string]any{"flags": -1, "cases": []any{}},
			wantErr: true,
			path:    "flags",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrSchema)
			var serr *SchemaError
			require.ErrorAs(t, err, &serr)
			require.NotEmpty(t, serr.Violations)
			assert.Equal(t, tt.path, serr.Violations[0].Path)
		})
	}
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatOf("a/b.yaml"))
	assert.Equal(t, FormatYAML, FormatOf("B.YML"))
	assert.Equal(t, FormatJSON, FormatOf("cases.json"))
	assert.Equal(t, FormatJSON, FormatOf("cases"))
}

func TestParseExpectations(t *testing.T) {
	v, err := ParseExpectations(`{year: true, month: ["05", 5], 3: ~}`)
	require.NoError(t, err)
	assert.Equal(t, map[any]any{"year": true, "month": []any{"05", 5}, 3: nil}, v)

	v, err = ParseExpectations(`{"year": "2024"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"year": "2024"}, v)

	_, err = ParseExpectations("{year: [")
	assert.ErrorIs(t, err, ErrInvalidYAML)
}

func TestToYAML(t *testing.T) {
	cf, err := ParseYAML([]byte(dateCasesYAML))
	require.NoError(t, err)

	data, err := ToYAML(cf)
	require.NoError(t, err)

	again, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cf.Cases[0].Expect, again.Cases[0].Expect)

	_, err = ToYAML(nil)
	assert.Error(t, err)
}
