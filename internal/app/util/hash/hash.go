package hash

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"lukechampine.com/blake3"
)

// ContentKey derives the stable identifier for an uploaded item from its
// raw bytes: the first 16 hex characters of the blake3 digest. Identical
// content always maps to the same key, independent of the display name.
func ContentKey(data []byte) string {
	digest, _ := hashReader(bytes.NewReader(data))
	return digest[:16]
}

// Reader returns the full blake3 digest of a stream as hex.
func Reader(r io.Reader) (string, error) {
	return hashReader(r)
}

func hashReader(r io.Reader) (string, error) {
	h := blake3.New(32, nil)
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("calculating blake3 hash: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
