package client

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/search_response.json
var searchResponseSchema []byte

const searchResponseSchemaURL = "mem://schemas/search_response.json"

var compiledSearchResponseSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(searchResponseSchema))
	if err != nil {
		return nil, fmt.Errorf("could not parse search response schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(searchResponseSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("could not add search response schema: %w", err)
	}

	return c.Compile(searchResponseSchemaURL)
})

// validateSearchResponse checks a successful response body against the search response schema
func validateSearchResponse(body []byte) error {
	schema, err := compiledSearchResponseSchema()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}

	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("response does not match the search response schema: %w", err)
	}
	return nil
}
