// Package schema models DTO schema documents.
//
// A schema is a tree whose interior nodes are objects and whose leaves are
// type tags ("string", "number"), reference markers ("$ref-<Name>") or
// arbitrary scalars. Object key order is significant: generated templates
// list fields in the order the schema author wrote them, so objects are
// represented by the insertion-ordered Object type instead of Go maps.
//
// Supported input formats:
//   - JSON (decoded token by token with goccy/go-json)
//   - JSONC (JSON with comments and trailing commas)
//   - YAML (walked through yaml.v3 nodes)
//   - already-decoded Go values (see FromValue)
package schema
