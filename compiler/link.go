package compiler

import (
	"fmt"

	"github.com/viant/procgraph/model"
	"github.com/viant/procgraph/processgraph"
)

// linkScope allocates a node per sequence flow and wires it to its source and
// target elements: the scope's own flows first, then nested sub-processes in
// declaration order. A scope reachable more than once is linked once.
func (t *transformer) linkScope(scope *model.Scope) error {
	if t.linked[scope] {
		return nil
	}
	t.linked[scope] = true
	for _, flow := range scope.SequenceFlows {
		if flow == nil {
			continue
		}
		if err := t.link(flow); err != nil {
			return err
		}
	}
	for _, subProcess := range scope.SubProcesses() {
		if err := t.linkScope(subProcess.Scope); err != nil {
			return err
		}
	}
	return nil
}

func (t *transformer) link(flow *model.SequenceFlow) error {
	if flow.ID == "" {
		return &ValidationError{ElementID: flow.ID, Attribute: "id", Err: ErrMissingID}
	}
	sourceID, ok := t.elements[flow.SourceRef]
	if !ok {
		return &ReferentialIntegrityError{FlowID: flow.ID, Role: "source", Ref: flow.SourceRef}
	}
	targetID, ok := t.elements[flow.TargetRef]
	if !ok {
		return &ReferentialIntegrityError{FlowID: flow.ID, Role: "target", Ref: flow.TargetRef}
	}
	data, err := t.encodeSequenceFlow(flow)
	if err != nil {
		return err
	}
	flowID := t.builder.NewNode(data)
	if err := t.register(flow.ID, flowID); err != nil {
		return err
	}

	connections := []struct {
		from uint32
		slot int
		to   uint32
	}{
		{flowID, processgraph.SequenceFlowSourceNode, sourceID},
		{sourceID, processgraph.NodeOutgoingSequenceFlows, flowID},
		{flowID, processgraph.SequenceFlowTargetNode, targetID},
		{targetID, processgraph.NodeIncomingSequenceFlows, flowID},
	}
	for _, connection := range connections {
		if err := t.builder.Connect(connection.from, connection.slot, connection.to); err != nil {
			return fmt.Errorf("failed to link sequence flow %q: %w", flow.ID, err)
		}
	}
	return nil
}
