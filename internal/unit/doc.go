// Package unit owns the self-describing tree value and its text form.
//
// Ownership boundary:
// - Unit value model, constructors, accessors, structural equality
// - text grammar: parser and renderer
// - path query and reference resolution against a document root
// - schema matching for payload validation and destructuring
package unit
