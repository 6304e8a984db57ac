// Package schema validates claim maps against JSON Schema documents before
// issuance.
package schema

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Validator validates claim data by JSON Schema.
type Validator struct {
}

// ValidateClaims validates a claim map against a JSON Schema. Claims are
// round-tripped through JSON so typed Go values are checked in the form
// they take on the wire.
func (v Validator) ValidateClaims(claims map[string]any, schema []byte) error {
	compiler := jsonschema.NewCompiler()

	err := compiler.AddResource("claims.json", bytes.NewReader(schema))
	if err != nil {
		return errors.Wrap(err, "add schema resource")
	}

	sh, err := compiler.Compile("claims.json")
	if err != nil {
		return errors.Wrap(err, "compile schema")
	}

	raw, err := json.Marshal(claims)
	if err != nil {
		return errors.Wrap(err, "marshal claims")
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrap(err, "unmarshal claims")
	}

	return sh.Validate(doc)
}
