// Package graph implements a compact, position-addressed binary graph.
//
// Nodes are staged with a Builder, connected through a fixed number of typed
// edge slots and serialized by Encode into a single buffer. Wrap exposes the
// buffer as a read-only Graph where the data and neighbor list of any node
// are reached with two offset lookups and no scan.
package graph
