// Package procgraph compiles hierarchical process definitions into compact,
// immutable binary graphs for an execution engine.
//
// A process (events, tasks, gateways, nested sub-processes and the sequence
// flows between them) becomes one contiguous byte slice: every element and
// every sequence flow is a node with a fixed-size index entry, so a node and
// its typed edges are reachable in O(1) without decoding the rest of the
// graph. Sub-packages:
//
//   - model        process definition types and fluent builders
//   - compiler     flattening, node-id assignment, linking and encoding
//   - graph        the generic binary graph builder, encoder and reader
//   - processgraph process-specific read view over an encoded graph
//   - descriptor   per-node flow element and process descriptors
//   - service      YAML definitions, deployment versioning and storage
//
// Typical use goes through the Service facade:
//
//	srv, _ := procgraph.New(ctx, procgraph.WithMetaBaseURL("file:///etc/processes"))
//	graph, _ := srv.Compile(ctx, "order.yaml", 1)
//	start := graph.InitialNode()
//	next := graph.Successors(nil, start)
package procgraph
