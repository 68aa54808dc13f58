// Package validation checks request bodies against the JSON schema of each
// entity kind.
package validation

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/qri-io/jsonschema"

	"github.com/garnizeh/portfolio/pkg/models"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Validator holds the compiled create and update schemas. Update schemas are
// the create schemas without their required list, so partial bodies pass.
type Validator struct {
	create map[models.Kind]*jsonschema.Schema
	update map[models.Kind]*jsonschema.Schema
}

// New compiles the embedded schema of every kind.
func New() (*Validator, error) {
	v := &Validator{
		create: make(map[models.Kind]*jsonschema.Schema, len(models.Kinds)),
		update: make(map[models.Kind]*jsonschema.Schema, len(models.Kinds)),
	}
	for _, k := range models.Kinds {
		raw, err := schemaFS.ReadFile(path.Join("schemas", string(k)+".json"))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", k, err)
		}
		if v.create[k], err = compile(raw); err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", k, err)
		}

		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode schema %s: %w", k, err)
		}
		delete(doc, "required")
		partial, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		if v.update[k], err = compile(partial); err != nil {
			return nil, fmt.Errorf("compile update schema %s: %w", k, err)
		}
	}
	return v, nil
}

func compile(raw []byte) (*jsonschema.Schema, error) {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(raw, rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// Validate returns one FieldError per schema violation of body. partial
// selects the update schema.
func (v *Validator) Validate(ctx context.Context, kind models.Kind, body []byte, partial bool) ([]models.FieldError, error) {
	schemas := v.create
	if partial {
		schemas = v.update
	}
	s, ok := schemas[kind]
	if !ok {
		return nil, fmt.Errorf("no schema for %q", kind)
	}

	verrs, err := s.ValidateBytes(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("schema validate: %w", err)
	}
	if len(verrs) == 0 {
		return nil, nil
	}

	out := make([]models.FieldError, 0, len(verrs))
	for _, ke := range verrs {
		out = append(out, models.FieldError{
			Field:   strings.TrimPrefix(ke.PropertyPath, "/"),
			Message: ke.Message,
			Value:   ke.InvalidValue,
		})
	}
	return out, nil
}
