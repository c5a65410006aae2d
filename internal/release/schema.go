package release

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/release.schema.json
var releaseSchemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(releaseSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse embedded release schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("release.schema.json", doc); err != nil {
			schemaErr = fmt.Errorf("register release schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("release.schema.json")
	})
	return schema, schemaErr
}

// validatePayload checks raw release JSON against the embedded schema
// before decoding, so malformed payloads fail with a precise reason instead
// of decoding into a zero-valued struct.
func validatePayload(body []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return sch.Validate(inst)
}
