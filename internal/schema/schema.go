// Package schema validates create-endpoint payloads against embedded JSON
// Schema documents. Server-assigned fields (id, owner id, timestamps) are
// stripped from the payload before validation, so clients that echo back a
// full record are not rejected for it.
package schema

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"
)

//go:embed *.json
var schemaFS embed.FS

// FieldError describes a single failed constraint in a payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator checks payloads against one embedded schema document.
type Validator struct {
	schema *jsonschema.Schema
	strip  []string
}

// TravelPlanCreate validates POST /api/travel-plans payloads.
func TravelPlanCreate() *Validator {
	return mustLoad("travel_plan.json", "id", "userId", "createdAt", "updatedAt")
}

// MessageCreate validates POST /api/messages payloads.
func MessageCreate() *Validator {
	return mustLoad("message.json", "id", "senderId", "createdAt")
}

// mustLoad compiles an embedded schema document. The strip list names the
// server-assigned keys removed from payloads before validation.
// Panics on a broken embedded document; that is a programming error caught
// the first time the binary starts.
func mustLoad(name string, strip ...string) *Validator {
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("schema: read embedded %s: %v", name, err))
	}
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(raw, rs); err != nil {
		panic(fmt.Sprintf("schema: compile %s: %v", name, err))
	}
	return &Validator{schema: rs, strip: strip}
}

// Validate strips server-assigned keys from the raw JSON payload, checks the
// remainder against the schema, and returns the cleaned payload bytes.
// A non-empty FieldError slice means the payload failed validation; a non-nil
// error means the payload was not valid JSON at all.
func (v *Validator) Validate(ctx context.Context, raw []byte) ([]byte, []FieldError, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, nil, fmt.Errorf("schema: invalid JSON: %w", err)
	}

	for _, key := range v.strip {
		delete(payload, key)
	}

	cleaned, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("schema: re-encode payload: %w", err)
	}

	keyErrs, err := v.schema.ValidateBytes(ctx, cleaned)
	if err != nil {
		return nil, nil, fmt.Errorf("schema: validate: %w", err)
	}

	fieldErrs := make([]FieldError, 0, len(keyErrs))
	for _, ke := range keyErrs {
		fieldErrs = append(fieldErrs, FieldError{
			Field:   fieldName(ke.PropertyPath),
			Message: ke.Message,
		})
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	return cleaned, nil, nil
}

// fieldName turns a JSON pointer property path ("/destination") into the
// bare field name clients expect in error details.
func fieldName(path string) string {
	name := strings.TrimPrefix(path, "/")
	if name == "" {
		return "body"
	}
	return name
}
