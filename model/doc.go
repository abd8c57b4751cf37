// Package model contains the in-memory representation of process
// definitions consumed by the procgraph compiler.
//
// A process is typically loaded from a YAML document (see
// service/dao/definition) or assembled programmatically with the fluent
// helpers on Process and Scope.  The compiler only reads the model; it never
// mutates it.
package model
