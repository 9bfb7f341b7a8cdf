// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package schema generates JSON Schemas from Go types and validates YAML
// documents against them before they are decoded.
package schema

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// BaseURL prefixes the $id of every generated schema.
const BaseURL = "https://itemforge.holomush.dev/schemas/"

// Generate reflects v into a JSON Schema document. Field names follow the
// yaml struct tags, since every schema here describes a YAML file.
func Generate(v any, file, title, description string) ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
		FieldNameTag:   "yaml",
	}
	s := r.Reflect(v)
	s.ID = jsonschema.ID(BaseURL + file)
	s.Title = title
	s.Description = description

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, oops.In("schema").With("file", file).Wrapf(err, "marshal schema")
	}
	return data, nil
}

// Validator validates YAML documents against one generated schema.
// The schema is compiled on first use. It is safe for concurrent use.
type Validator struct {
	file     string
	generate func() ([]byte, error)

	once     sync.Once
	compiled *jschema.Schema
	err      error
}

// NewValidator creates a validator for the schema produced by generate.
func NewValidator(file string, generate func() ([]byte, error)) *Validator {
	return &Validator{file: file, generate: generate}
}

// ValidateYAML checks that data is a YAML document accepted by the schema.
func (v *Validator) ValidateYAML(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return oops.In("schema").With("file", v.file).Errorf("document is empty")
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return oops.In("schema").With("file", v.file).Wrapf(err, "invalid YAML")
	}
	instance, err := toJSON(doc)
	if err != nil {
		return oops.In("schema").With("file", v.file).Wrapf(err, "converting YAML")
	}

	sch, err := v.schema()
	if err != nil {
		return err
	}
	if err := sch.Validate(instance); err != nil {
		return oops.In("schema").With("file", v.file).Wrapf(err, "schema validation failed")
	}
	return nil
}

func (v *Validator) schema() (*jschema.Schema, error) {
	v.once.Do(func() {
		data, err := v.generate()
		if err != nil {
			v.err = err
			return
		}
		doc, err := jschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			v.err = oops.In("schema").With("file", v.file).Wrapf(err, "parse schema JSON")
			return
		}
		c := jschema.NewCompiler()
		if err := c.AddResource(v.file, doc); err != nil {
			v.err = oops.In("schema").With("file", v.file).Wrapf(err, "add schema resource")
			return
		}
		v.compiled, v.err = c.Compile(v.file)
		if v.err != nil {
			v.err = oops.In("schema").With("file", v.file).Wrapf(v.err, "compile schema")
		}
	})
	return v.compiled, v.err
}

// toJSON round-trips a YAML value through encoding/json so numbers and maps
// take the shapes the validator expects.
func toJSON(doc any) (any, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by caller
	}
	return jschema.UnmarshalJSON(bytes.NewReader(b)) //nolint:wrapcheck // wrapped by caller
}

// FormatError returns the part of a validation error worth showing a user.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.Index(msg, "schema validation failed: "); i >= 0 {
		msg = msg[i+len("schema validation failed: "):]
	}
	return msg
}
