// Package schema compiles and caches JSON Schema definitions used to
// validate authoring documents and LLM output.
package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var cache sync.Map // map[string]*jsonschema.Schema

// Validate checks parsed JSON (as returned by json.Unmarshal into any)
// against the named definition. The compiled schema is cached by name, so
// the definition for a given name must not change between calls.
func Validate(name string, definition map[string]any, doc any) error {
	compiled, err := compile(name, definition)
	if err != nil {
		return err
	}
	return compiled.Validate(doc)
}

func compile(name string, definition map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := cache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library wants a parsed JSON value, not a Go map with
	// typed values. Round-trip through encoding/json to normalize.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}

	cache.Store(name, compiled)
	return compiled, nil
}
