// Package pathcodec encodes filesystem paths as base64 tokens so they can
// travel through names and URLs.
package pathcodec

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Encode returns the standard base64 encoding of path.
func Encode(path string) string {
	return base64.StdEncoding.EncodeToString([]byte(path))
}

// Decode reverses Encode and collapses doubled slashes in the result.
func Decode(s string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("decoding path %q: %w", s, err)
	}

	return strings.ReplaceAll(string(data), "//", "/"), nil
}
