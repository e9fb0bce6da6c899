package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "file:///svgconfig.schema.json"

var (
	once    sync.Once
	schema  *jsonschema.Schema
	loadErr error
)

func loadSchema() {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		loadErr = err
		return
	}
	schema, loadErr = c.Compile(schemaURL)
}

func validateDocument(doc []byte) error {
	once.Do(loadSchema)
	if loadErr != nil {
		return loadErr
	}

	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return err
	}
	return schema.Validate(v)
}
