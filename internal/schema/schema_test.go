// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package schema_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/itemforge/internal/schema"
)

type sample struct {
	Name  string `yaml:"name" jsonschema:"minLength=1"`
	Count int    `yaml:"count,omitempty" jsonschema:"minimum=1"`
}

func generateSample() ([]byte, error) {
	return schema.Generate(&sample{}, "sample.schema.json", "Sample", "Test document")
}

func TestGenerate(t *testing.T) {
	data, err := generateSample()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, schema.BaseURL+"sample.schema.json", doc["$id"])
	assert.Equal(t, "Sample", doc["title"])
	assert.Equal(t, []any{"name"}, doc["required"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "name", "properties use yaml field names")
	assert.Contains(t, props, "count")
}

func TestValidator_ValidateYAML(t *testing.T) {
	v := schema.NewValidator("sample.schema.json", generateSample)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "name: sword\ncount: 2\n", false},
		{"optional field omitted", "name: sword\n", false},
		{"empty document", "  \n", true},
		{"malformed yaml", "name: [unclosed\n", true},
		{"missing required", "count: 2\n", true},
		{"below minimum", "name: sword\ncount: 0\n", true},
		{"empty string", "name: \"\"\n", true},
		{"unknown field", "name: sword\nextra: true\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateYAML([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_GenerateFailureIsSticky(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	v := schema.NewValidator("broken.schema.json", func() ([]byte, error) {
		calls++
		return nil, boom
	})

	for range 2 {
		err := v.ValidateYAML([]byte("name: x\n"))
		require.ErrorIs(t, err, boom)
	}
	assert.Equal(t, 1, calls)
}

func TestFormatError(t *testing.T) {
	assert.Empty(t, schema.FormatError(nil))

	v := schema.NewValidator("sample.schema.json", generateSample)
	err := v.ValidateYAML([]byte("count: 2\n"))
	require.Error(t, err)
	assert.NotContains(t, schema.FormatError(err), "schema validation failed")
}
