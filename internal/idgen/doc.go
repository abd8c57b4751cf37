// Package idgen generates deployment identifiers. Callers treat them as
// opaque strings; tests may replace NewFunc to get predictable values.
package idgen
