// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package catalog

import "github.com/holomush/itemforge/internal/schema"

// SchemaFile is the file name of the catalog JSON Schema.
const SchemaFile = "catalog.schema.json"

var validator = schema.NewValidator(SchemaFile, GenerateSchema)

// GenerateSchema generates the JSON Schema for catalog files.
func GenerateSchema() ([]byte, error) {
	return schema.Generate(&File{}, SchemaFile, "Item Catalog", "Item kinds, flags and modifiers exposed by a game host")
}

// ValidateSchema validates a YAML catalog document against the schema.
func ValidateSchema(data []byte) error {
	return validator.ValidateYAML(data)
}
