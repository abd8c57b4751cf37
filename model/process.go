package model

import (
	"fmt"
	"strconv"
)

type (
	// Scope is a container of flow elements and sequence flows; process and
	// sub-processes own one scope each
	Scope struct {
		Elements      []*FlowElement  `json:"elements,omitempty" yaml:"elements,omitempty"`
		SequenceFlows []*SequenceFlow `json:"flows,omitempty" yaml:"flows,omitempty"`
	}

	// Process represents a process definition
	Process struct {
		// Source provides information about the origin of the definition
		Source *Source `json:"source,omitempty" yaml:"source,omitempty"`
		// ID is the process string identifier
		ID string `json:"id" yaml:"id"`
		// Name is a human-readable process name
		Name string `json:"name,omitempty" yaml:"name,omitempty"`
		Scope
	}

	// Source describes where the definition was loaded from
	Source struct {
		URL string `json:"url,omitempty" yaml:"url,omitempty"`
	}
)

// NewProcess creates a new process with the given id
func NewProcess(id string) *Process {
	return &Process{ID: id}
}

// WithName sets the process name
func (p *Process) WithName(name string) *Process {
	p.Name = name
	return p
}

// Add appends elements to the scope
func (s *Scope) Add(elements ...*FlowElement) *Scope {
	s.Elements = append(s.Elements, elements...)
	return s
}

// Element returns a direct child element by id or nil
func (s *Scope) Element(id string) *FlowElement {
	for _, element := range s.Elements {
		if element != nil && element.ID == id {
			return element
		}
	}
	return nil
}

// ElementsByType returns direct child elements of the given type
func (s *Scope) ElementsByType(elementType ElementType) []*FlowElement {
	var result []*FlowElement
	for _, element := range s.Elements {
		if element != nil && element.Type == elementType {
			result = append(result, element)
		}
	}
	return result
}

// SubProcesses returns direct child sub-processes in declaration order
func (s *Scope) SubProcesses() []*FlowElement {
	var result []*FlowElement
	for _, element := range s.Elements {
		if element != nil && element.Type == SubProcess && element.Scope != nil {
			result = append(result, element)
		}
	}
	return result
}

func (s *Scope) newElement(id string, elementType ElementType) *FlowElement {
	element := &FlowElement{ID: id, Type: elementType}
	s.Elements = append(s.Elements, element)
	return element
}

// StartEvent adds a start event
func (s *Scope) StartEvent(id string) *FlowElement {
	return s.newElement(id, StartEvent)
}

// EndEvent adds an end event
func (s *Scope) EndEvent(id string) *FlowElement {
	return s.newElement(id, EndEvent)
}

// IntermediateCatchEvent adds an intermediate catch event with the given definition type
func (s *Scope) IntermediateCatchEvent(id, definitionType string) *FlowElement {
	return s.newElement(id, IntermediateCatchEvent).WithEventDefinition(definitionType)
}

// Task adds an abstract task
func (s *Scope) Task(id string) *FlowElement {
	return s.newElement(id, Task)
}

// UserTask adds a user task
func (s *Scope) UserTask(id string) *FlowElement {
	return s.newElement(id, UserTask)
}

// ServiceTask adds a service task with task type and queue id
func (s *Scope) ServiceTask(id, taskType string, taskQueueID uint16) *FlowElement {
	return s.newElement(id, ServiceTask).
		WithAttribute(AttributeTaskType, taskType).
		WithAttribute(AttributeTaskQueueID, strconv.Itoa(int(taskQueueID)))
}

// ExclusiveGateway adds an exclusive gateway
func (s *Scope) ExclusiveGateway(id string) *FlowElement {
	return s.newElement(id, ExclusiveGateway)
}

// ParallelGateway adds a parallel gateway
func (s *Scope) ParallelGateway(id string) *FlowElement {
	return s.newElement(id, ParallelGateway)
}

// SubProcess adds a sub-process with an empty nested scope
func (s *Scope) SubProcess(id string) *FlowElement {
	element := s.newElement(id, SubProcess)
	element.Scope = &Scope{}
	return element
}

// Flow adds a sequence flow
func (s *Scope) Flow(id, sourceRef, targetRef string) *SequenceFlow {
	flow := &SequenceFlow{ID: id, SourceRef: sourceRef, TargetRef: targetRef}
	s.SequenceFlows = append(s.SequenceFlows, flow)
	return flow
}

// Connect chains the given element ids with sequence flows named <source>_to_<target>
func (s *Scope) Connect(ids ...string) *Scope {
	for i := 1; i < len(ids); i++ {
		s.Flow(fmt.Sprintf("%s_to_%s", ids[i-1], ids[i]), ids[i-1], ids[i])
	}
	return s
}

// Walk visits every flow element of the scope and nested scopes, depth-first
// in declaration order. Nil entries are skipped.
func (s *Scope) Walk(visitor func(element *FlowElement) error) error {
	for _, element := range s.Elements {
		if element == nil {
			continue
		}
		if err := visitor(element); err != nil {
			return err
		}
		if element.Scope != nil {
			if err := element.Scope.Walk(visitor); err != nil {
				return err
			}
		}
	}
	return nil
}

// ElementCount returns number of flow elements including nested ones
func (s *Scope) ElementCount() int {
	count := 0
	_ = s.Walk(func(*FlowElement) error {
		count++
		return nil
	})
	return count
}

// FlowCount returns number of sequence flows including nested ones
func (s *Scope) FlowCount() int {
	count := 0
	for _, flow := range s.SequenceFlows {
		if flow != nil {
			count++
		}
	}
	for _, sub := range s.SubProcesses() {
		count += sub.Scope.FlowCount()
	}
	return count
}
