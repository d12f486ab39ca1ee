package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const todoProperties = `{
	"id":        {"type": ["string", "integer"]},
	"content":   {"type": "string"},
	"completed": {"type": "boolean"},
	"position":  {"type": "integer", "minimum": 0}
}`

var (
	createSchema = jsonschema.MustCompileString("todo-create.json", `{
		"type": "object",
		"required": ["content"],
		"properties": `+todoProperties+`
	}`)
	patchSchema = jsonschema.MustCompileString("todo-patch.json", `{
		"type": "object",
		"minProperties": 1,
		"properties": `+todoProperties+`
	}`)
	replaceSchema = jsonschema.MustCompileString("todo-replace.json", `{
		"type": "object",
		"required": ["content"],
		"properties": `+todoProperties+`
	}`)
)

// validateBody checks a raw request body against schema and returns a
// readable summary of every violation.
func validateBody(schema *jsonschema.Schema, body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		var msgs []string
		collectSchemaErrors(ve, &msgs)
		return errors.New(strings.Join(msgs, "; "))
	}
	return nil
}

func collectSchemaErrors(err *jsonschema.ValidationError, out *[]string) {
	if len(err.Causes) == 0 {
		loc := strings.TrimPrefix(err.InstanceLocation, "/")
		if loc == "" {
			*out = append(*out, err.Message)
		} else {
			*out = append(*out, loc+": "+err.Message)
		}
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, out)
	}
}
