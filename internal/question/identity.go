package question

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Identity returns the deterministic cache id for a question: a SHA-256 hex
// digest over a canonical JSON encoding of the template, the bindings, and
// the response-schema id. Binding key order never affects the result because
// encoding/json emits map keys sorted. The same question asked under a
// different schema id yields a different id.
func Identity(template string, bindings map[string]string, schemaID string) string {
	if bindings == nil {
		bindings = map[string]string{}
	}
	// String-only payloads cannot fail to marshal.
	payload, _ := json.Marshal(map[string]interface{}{
		"template": template,
		"bindings": bindings,
		"schema":   schemaID,
	})
	digest := sha256.Sum256(payload)
	return hex.EncodeToString(digest[:])
}
