// Package gen emits response template files from converted schema trees.
//
// A template body is JSON-shaped text in which every leaf is a template
// expression written verbatim. Files are emitted through a text/template
// file layout with a generated-by header, in an order where referenced
// templates come before the templates importing them.
package gen
