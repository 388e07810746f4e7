package topology

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const schemaURL = "topology.schema.json"

// ErrMalformedJSON is wrapped by CheckShape when the document does not parse.
var ErrMalformedJSON = errors.New("malformed JSON")

var (
	//go:embed topology.schema.yaml
	schemaData []byte

	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// loadSchema compiles the embedded schema once. The schema is authored in
// YAML and converted to JSON for the compiler.
func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := yaml.Unmarshal(schemaData, &doc); err != nil {
			schemaErr = fmt.Errorf("failed to parse topology schema: %w", err)
			return
		}
		jsonData, err := json.Marshal(doc)
		if err != nil {
			schemaErr = fmt.Errorf("failed to marshal topology schema: %w", err)
			return
		}
		compiledSchema, schemaErr = jsonschema.CompileString(schemaURL, string(jsonData))
		if schemaErr != nil {
			schemaErr = fmt.Errorf("failed to compile topology schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// CheckShape validates a raw JSON document against the topology schema. Type
// mismatches are returned as a *ValidationError with one violation per
// offending location; malformed JSON is returned wrapping ErrMalformedJSON.
func CheckShape(raw []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}

	msgs := leafMessages(ve)
	sort.Strings(msgs)
	return &ValidationError{Violations: msgs}
}

// leafMessages flattens the error tree into "location: message" strings.
func leafMessages(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := strings.TrimPrefix(ve.InstanceLocation, "/")
		if loc == "" {
			loc = "(root)"
		}
		return []string{fmt.Sprintf("%s: %s", strings.ReplaceAll(loc, "/", "."), ve.Message)}
	}

	var out []string
	for _, c := range ve.Causes {
		out = append(out, leafMessages(c)...)
	}
	return out
}
