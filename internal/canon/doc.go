// Package canon produces RFC 8785 canonical JSON and content hashes.
//
// Golden trace snapshots and catalog hashes must be byte-identical across
// runs and machines, so they go through MarshalCanonical rather than
// encoding/json:
//   - object keys sorted by UTF-16 code units
//   - strings NFC-normalized, no HTML escaping
//   - integers only; floats and null are rejected
//
// Hashes are SHA-256 with a versioned domain prefix (see hash.go).
package canon
