package model

import (
	"fmt"
	"strings"
)

// ElementType identifies the kind of a flow element
type ElementType int

const (
	UnknownElement ElementType = iota
	StartEvent
	EndEvent
	IntermediateCatchEvent
	Task
	ServiceTask
	UserTask
	ExclusiveGateway
	ParallelGateway
	SubProcess
)

var elementTypeNames = map[ElementType]string{
	StartEvent:             "startEvent",
	EndEvent:               "endEvent",
	IntermediateCatchEvent: "intermediateCatchEvent",
	Task:                   "task",
	ServiceTask:            "serviceTask",
	UserTask:               "userTask",
	ExclusiveGateway:       "exclusiveGateway",
	ParallelGateway:        "parallelGateway",
	SubProcess:             "subProcess",
}

func (t ElementType) String() string {
	if name, ok := elementTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// IsTask returns true for task-like elements that carry task metadata
func (t ElementType) IsTask() bool {
	return t == ServiceTask
}

// ParseElementType parses camelCase element type name (case-insensitive)
func ParseElementType(name string) (ElementType, error) {
	for candidate, text := range elementTypeNames {
		if strings.EqualFold(text, name) {
			return candidate, nil
		}
	}
	return UnknownElement, fmt.Errorf("unsupported element type: %q", name)
}

const (
	// AttributeTaskType names the task type attribute of a task element
	AttributeTaskType = "taskType"
	// AttributeTaskQueueID names the numeric task queue attribute of a task element
	AttributeTaskQueueID = "taskQueueId"
)

type (
	// EventDefinition qualifies an event (message, timer, signal ...)
	EventDefinition struct {
		ID   string `json:"id,omitempty" yaml:"id,omitempty"`
		Type string `json:"type,omitempty" yaml:"type,omitempty"`
	}

	// FlowElement represents a task, event, gateway or sub-process
	FlowElement struct {
		ID               string             `json:"id" yaml:"id"`
		Name             string             `json:"name,omitempty" yaml:"name,omitempty"`
		Type             ElementType        `json:"type" yaml:"type"`
		Attributes       map[string]string  `json:"attributes,omitempty" yaml:"attributes,omitempty"`
		EventDefinitions []*EventDefinition `json:"eventDefinitions,omitempty" yaml:"eventDefinitions,omitempty"`
		// Scope holds nested elements and flows of a sub-process
		Scope *Scope `json:"scope,omitempty" yaml:"scope,omitempty"`
	}

	// SequenceFlow is a directed control flow between two flow elements
	SequenceFlow struct {
		ID        string `json:"id" yaml:"id"`
		SourceRef string `json:"source" yaml:"source"`
		TargetRef string `json:"target" yaml:"target"`
	}
)

// Attribute returns attribute value and presence flag
func (e *FlowElement) Attribute(name string) (string, bool) {
	if e.Attributes == nil {
		return "", false
	}
	value, ok := e.Attributes[name]
	return value, ok
}

// WithAttribute sets an attribute
func (e *FlowElement) WithAttribute(name, value string) *FlowElement {
	if e.Attributes == nil {
		e.Attributes = make(map[string]string)
	}
	e.Attributes[name] = value
	return e
}

// WithEventDefinition adds an event definition
func (e *FlowElement) WithEventDefinition(definitionType string) *FlowElement {
	e.EventDefinitions = append(e.EventDefinitions, &EventDefinition{
		ID:   fmt.Sprintf("%s_%s%d", e.ID, definitionType, len(e.EventDefinitions)),
		Type: definitionType,
	})
	return e
}

// WithName sets the element name
func (e *FlowElement) WithName(name string) *FlowElement {
	e.Name = name
	return e
}

// IsNoneStartEvent returns true for a start event without event definitions
func (e *FlowElement) IsNoneStartEvent() bool {
	return e.Type == StartEvent && len(e.EventDefinitions) == 0
}

// MarshalText encodes element type name
func (t ElementType) MarshalText() ([]byte, error) {
	if t == UnknownElement {
		return nil, fmt.Errorf("unknown element type")
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes element type name
func (t *ElementType) UnmarshalText(text []byte) error {
	parsed, err := ParseElementType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
