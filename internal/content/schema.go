package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON []byte

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateDocument checks the raw document shape against the content
// schema before normalization. The schema is deliberately lenient about
// optional fields; it exists to reject documents whose top-level shape is
// wrong (e.g. modules as an object) before the forgiving normalizer runs.
func validateDocument(doc any) error {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal(schemaJSON, &def); err != nil {
			compileErr = fmt.Errorf("parse content schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://learning-content.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	if compileErr != nil {
		return compileErr
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("content schema validation: %w", err)
	}
	return nil
}
