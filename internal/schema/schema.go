package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema is an opaque response-shape identity plus a validation capability.
// The orchestration core only ever reads the id; validation runs inside query
// handlers when a provider response arrives.
type Schema struct {
	name     string
	doc      string
	id       string
	compiled *jsonschema.Schema
}

// New compiles a JSON Schema document and derives a deterministic identity
// from the name and the document bytes. Two schemas with the same name and
// byte-identical documents share an id; any other pair does not.
func New(name string, doc []byte) (Schema, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Schema{}, errors.New("schema: name is required")
	}
	if len(doc) == 0 {
		return Schema{}, fmt.Errorf("schema %s: document is empty", name)
	}
	compiled, err := jsonschema.CompileString(name+".schema.json", string(doc))
	if err != nil {
		return Schema{}, fmt.Errorf("compile schema %s: %w", name, err)
	}
	digest := sha256.Sum256(append([]byte(name+"\n"), doc...))
	return Schema{
		name:     name,
		doc:      string(doc),
		id:       hex.EncodeToString(digest[:]),
		compiled: compiled,
	}, nil
}

// ID returns the schema identity used in question fingerprints.
func (s Schema) ID() string {
	return s.id
}

// Name returns the declared schema name.
func (s Schema) Name() string {
	return s.name
}

// Doc returns the JSON Schema document text.
func (s Schema) Doc() string {
	return s.doc
}

// Validate checks a raw JSON payload against the compiled document.
func (s Schema) Validate(payload []byte) error {
	if s.compiled == nil {
		return errors.New("schema: not compiled")
	}
	var decoded interface{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if err := s.compiled.Validate(decoded); err != nil {
		return fmt.Errorf("payload does not conform to %s: %w", s.name, err)
	}
	return nil
}
