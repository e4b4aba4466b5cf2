// Package transform turns a schema tree into a template tree.
//
// The walk is depth-first. Objects keep their keys in the same order with
// every value transformed; string leaves are classified:
//
//  1. "$ref-<Name>" becomes a call of the imported template <Name>
//  2. "number" becomes a random number generator call
//  3. "string" becomes a generator call chosen from the key name
//  4. any other string is omitted
//
// Arrays are not supported and are omitted as well. Other scalars pass
// through unchanged. What happens to an omitted value is decided by the
// OmitPolicy: drop the key (default), keep it as null, or fail.
package transform
