// Package match suggests corrections for misspelled type tags and entity
// names by edit distance over normalized identifiers.
package match
