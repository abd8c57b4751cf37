// Package aspect resolves the behavioral aspects of a flow element kind: for
// each execution event the element reacts to, the policy that handles it.
package aspect

import (
	"sort"

	"github.com/viant/procgraph/descriptor"
)

// Resolver maps an element kind to its ordered event behavior mappings
type Resolver interface {
	Resolve(elementType descriptor.FlowElementType) []descriptor.EventBehavior
}

// Table is a static lookup table indexed by element kind. Mappings of each
// kind are kept sorted by event so that encoded descriptors are reproducible.
type Table struct {
	entries [][]descriptor.EventBehavior
}

// Resolve returns mappings for the element kind; unknown kinds have none.
// The returned slice must not be modified.
func (t *Table) Resolve(elementType descriptor.FlowElementType) []descriptor.EventBehavior {
	if int(elementType) >= len(t.entries) {
		return nil
	}
	return t.entries[elementType]
}

// NewTable builds a table from per-kind event to aspect maps
func NewTable(mapping map[descriptor.FlowElementType]map[descriptor.ExecutionEventType]descriptor.Aspect) *Table {
	size := 0
	for elementType := range mapping {
		if int(elementType) >= size {
			size = int(elementType) + 1
		}
	}
	ret := &Table{entries: make([][]descriptor.EventBehavior, size)}
	for elementType, aspects := range mapping {
		behaviors := make([]descriptor.EventBehavior, 0, len(aspects))
		for event, aspect := range aspects {
			behaviors = append(behaviors, descriptor.EventBehavior{Event: event, Aspect: aspect})
		}
		sort.Slice(behaviors, func(i, j int) bool {
			return behaviors[i].Event < behaviors[j].Event
		})
		ret.entries[elementType] = behaviors
	}
	return ret
}

var defaultTable = NewTable(map[descriptor.FlowElementType]map[descriptor.ExecutionEventType]descriptor.Aspect{
	descriptor.Process: {
		descriptor.ProcessInstanceCreated:   descriptor.StartProcess,
		descriptor.ProcessInstanceCompleted: descriptor.EndProcess,
	},
	descriptor.StartEvent: {
		descriptor.EventOccurred: descriptor.TakeOutgoingFlows,
	},
	descriptor.EndEvent: {
		descriptor.EventOccurred: descriptor.ConsumeToken,
	},
	descriptor.IntermediateCatchEvent: {
		descriptor.EventOccurred: descriptor.TakeOutgoingFlows,
	},
	descriptor.Task: {
		descriptor.ActivityInstanceCreated:   descriptor.StartActivity,
		descriptor.ActivityInstanceCompleted: descriptor.TakeOutgoingFlows,
	},
	descriptor.ServiceTask: {
		descriptor.ActivityInstanceCreated:   descriptor.CreateTask,
		descriptor.ActivityInstanceCompleted: descriptor.TakeOutgoingFlows,
	},
	descriptor.UserTask: {
		descriptor.ActivityInstanceCreated:   descriptor.StartActivity,
		descriptor.ActivityInstanceCompleted: descriptor.TakeOutgoingFlows,
	},
	descriptor.ExclusiveGateway: {
		descriptor.GatewayActivated: descriptor.ExclusiveSplit,
	},
	descriptor.ParallelGateway: {
		descriptor.GatewayActivated: descriptor.ParallelSplit,
	},
	descriptor.SubProcess: {
		descriptor.ActivityInstanceCreated:   descriptor.EnterScope,
		descriptor.ActivityInstanceCompleted: descriptor.TakeOutgoingFlows,
	},
	descriptor.SequenceFlow: {
		descriptor.SequenceFlowTaken: descriptor.StartFlowElement,
	},
})

// Default returns the built-in table
func Default() *Table {
	return defaultTable
}
