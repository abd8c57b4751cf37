package graph

import "fmt"

type node struct {
	data  []byte
	edges [][]uint32
}

// Builder stages nodes, typed edges and the root payload of a graph before
// encoding. Node ids are assigned sequentially from 0. The number of edge
// types is fixed at construction. A Builder is not safe for concurrent use.
type Builder struct {
	edgeTypeCount int
	nodes         []*node
	rootPayload   []byte
	hasRoot       bool
}

// EdgeTypeCount returns the number of edge-type slots per node
func (b *Builder) EdgeTypeCount() int {
	return b.edgeTypeCount
}

// NodeCount returns number of staged nodes
func (b *Builder) NodeCount() int {
	return len(b.nodes)
}

// NewNode stages a node with the given data and returns its id
func (b *Builder) NewNode(data []byte) uint32 {
	id := uint32(len(b.nodes))
	b.nodes = append(b.nodes, &node{data: data, edges: make([][]uint32, b.edgeTypeCount)})
	return id
}

// Connect appends nodeB to nodeA's edge slot. Edges are directed; the reverse
// relation, if any, needs its own call.
func (b *Builder) Connect(nodeA uint32, slot int, nodeB uint32) error {
	if slot < 0 || slot >= b.edgeTypeCount {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrEdgeTypeOutOfRange, slot, b.edgeTypeCount)
	}
	if int(nodeA) >= len(b.nodes) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, nodeA)
	}
	if int(nodeB) >= len(b.nodes) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, nodeB)
	}
	source := b.nodes[nodeA]
	source.edges[slot] = append(source.edges[slot], nodeB)
	return nil
}

// NodeData returns the staged data of a node
func (b *Builder) NodeData(id uint32) []byte {
	return b.nodes[id].data
}

// Edges returns the staged neighbor ids of a node slot
func (b *Builder) Edges(id uint32, slot int) []uint32 {
	return b.nodes[id].edges[slot]
}

// SetRootPayload sets the graph-level payload; it can be set only once
func (b *Builder) SetRootPayload(data []byte) error {
	if b.hasRoot {
		return ErrRootPayloadSet
	}
	b.rootPayload = data
	b.hasRoot = true
	return nil
}

// NewBuilder creates a builder with the given number of edge-type slots per node
func NewBuilder(edgeTypeCount int) (*Builder, error) {
	if edgeTypeCount < 1 || edgeTypeCount > MaxEdgeTypeCount {
		return nil, fmt.Errorf("%w: %d", ErrInvalidEdgeTypeCount, edgeTypeCount)
	}
	return &Builder{edgeTypeCount: edgeTypeCount}, nil
}
