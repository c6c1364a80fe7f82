package domain

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// CanonicalJSON serializes v the way every hash/ETag computation in this
// service requires: struct fields in declaration order, map keys sorted
// (encoding/json already sorts map[string]T keys), no HTML-escaping of
// `&`, `<`, `>` so the byte stream is stable regardless of destination, and
// a trailing newline stripped. Two calls on structurally equal values
// always produce byte-identical output.
func CanonicalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// CanonicalHash returns the lowercase hex SHA-256 digest of v's canonical
// JSON form. Used both for ProjectConfig.ConfigHash and as the basis of the
// preview ETag, per the "one canonical serializer" design note (§9).
func CanonicalHash(v any) (string, error) {
	data, err := CanonicalJSON(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
