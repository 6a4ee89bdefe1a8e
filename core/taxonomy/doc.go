// Package taxonomy resolves taxonomy terms and attaches them to records.
//
// Terms are unique per (taxonomy, name); EnsureTerms looks a name up with an
// exact match before inserting it. Attaching is additive: associations created
// by earlier imports or by hand are never removed.
package taxonomy
