// Package processgraph exposes a compiled process as a read-only graph.
//
// Flow elements and sequence flows are nodes. A flow element lists the
// sequence flows leaving and entering it; a sequence flow has exactly one
// source and one target node. Following a flow therefore takes two hops:
// element -> outgoing flow -> target element.
package processgraph

import (
	"fmt"

	"github.com/viant/procgraph/descriptor"
	"github.com/viant/procgraph/graph"
)

// Edge-type slots of a process graph node
const (
	NodeOutgoingSequenceFlows = iota
	NodeIncomingSequenceFlows
	SequenceFlowSourceNode
	SequenceFlowTargetNode

	// EdgeTypeCount is the number of edge-type slots per node
	EdgeTypeCount
)

// ProcessNodeID is the id of the process scope node
const ProcessNodeID uint32 = 0

// ProcessGraph is an immutable, binary-backed process graph. It is safe for
// concurrent use; several instances may wrap the same bytes.
type ProcessGraph struct {
	graph      *graph.Graph
	descriptor descriptor.ProcessDescriptor
}

// Graph returns the underlying generic graph
func (p *ProcessGraph) Graph() *graph.Graph {
	return p.graph
}

// Bytes returns the encoded graph; the slice must not be modified
func (p *ProcessGraph) Bytes() []byte {
	return p.graph.Bytes()
}

// Descriptor returns the decoded process descriptor
func (p *ProcessGraph) Descriptor() descriptor.ProcessDescriptor {
	return p.descriptor
}

// InitialNode returns the id of the none start event
func (p *ProcessGraph) InitialNode() uint32 {
	return p.descriptor.InitialNodeID
}

// NodeCount returns number of nodes, including process and sequence flow nodes
func (p *ProcessGraph) NodeCount() int {
	return p.graph.NodeCount()
}

// FlowElement returns the descriptor view of a node
func (p *ProcessGraph) FlowElement(id uint32) descriptor.FlowElement {
	return descriptor.FlowElement(p.graph.NodeData(id))
}

// Outgoing returns the sequence flow nodes leaving the element
func (p *ProcessGraph) Outgoing(id uint32) graph.Edges {
	return p.graph.Edges(id, NodeOutgoingSequenceFlows)
}

// Incoming returns the sequence flow nodes entering the element
func (p *ProcessGraph) Incoming(id uint32) graph.Edges {
	return p.graph.Edges(id, NodeIncomingSequenceFlows)
}

// Source returns the source element of a sequence flow node
func (p *ProcessGraph) Source(flowID uint32) uint32 {
	return p.graph.Edges(flowID, SequenceFlowSourceNode).At(0)
}

// Target returns the target element of a sequence flow node
func (p *ProcessGraph) Target(flowID uint32) uint32 {
	return p.graph.Edges(flowID, SequenceFlowTargetNode).At(0)
}

// Successors appends the elements reached through outgoing sequence flows
func (p *ProcessGraph) Successors(dst []uint32, id uint32) []uint32 {
	outgoing := p.Outgoing(id)
	for i := 0; i < outgoing.Len(); i++ {
		dst = append(dst, p.Target(outgoing.At(i)))
	}
	return dst
}

// NodeByID finds a node by its string id with a linear scan; intended for
// tooling and tests, not for the execution hot path
func (p *ProcessGraph) NodeByID(stringID string) (uint32, bool) {
	for id := 0; id < p.graph.NodeCount(); id++ {
		if string(p.FlowElement(uint32(id)).StringIDBytes()) == stringID {
			return uint32(id), true
		}
	}
	return 0, false
}

// Wrap validates encoded bytes and returns a process graph view
func Wrap(data []byte) (*ProcessGraph, error) {
	g, err := graph.Wrap(data)
	if err != nil {
		return nil, err
	}
	if g.EdgeTypeCount() != EdgeTypeCount {
		return nil, fmt.Errorf("%w: expected %d edge types, got %d", graph.ErrCorrupt, EdgeTypeCount, g.EdgeTypeCount())
	}
	process, err := descriptor.DecodeProcess(g.RootPayload())
	if err != nil {
		return nil, fmt.Errorf("failed to decode process descriptor: %w", err)
	}
	if g.NodeCount() == 0 || int(process.InitialNodeID) >= g.NodeCount() {
		return nil, fmt.Errorf("%w: initial node %d out of range [0, %d)", graph.ErrCorrupt, process.InitialNodeID, g.NodeCount())
	}
	for id := 0; id < g.NodeCount(); id++ {
		element, err := descriptor.Wrap(g.NodeData(uint32(id)))
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", id, err)
		}
		if element.Type() == descriptor.SequenceFlow &&
			(g.Edges(uint32(id), SequenceFlowSourceNode).Len() != 1 || g.Edges(uint32(id), SequenceFlowTargetNode).Len() != 1) {
			return nil, fmt.Errorf("%w: sequence flow node %d must have exactly one source and one target", graph.ErrCorrupt, id)
		}
	}
	return &ProcessGraph{graph: g, descriptor: *process}, nil
}
