// Package diagnostic collects the warnings and notes produced while a
// schema is turned into a response template: omitted fields, unknown type
// tags with "did you mean" suggestions, and nulls mapped to objects.
package diagnostic
