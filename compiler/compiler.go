package compiler

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/viant/procgraph/aspect"
	"github.com/viant/procgraph/descriptor"
	"github.com/viant/procgraph/graph"
	"github.com/viant/procgraph/model"
	"github.com/viant/procgraph/processgraph"
	"github.com/viant/procgraph/tracing"
	"go.uber.org/zap"
)

var elementTypes = map[model.ElementType]descriptor.FlowElementType{
	model.StartEvent:             descriptor.StartEvent,
	model.EndEvent:               descriptor.EndEvent,
	model.IntermediateCatchEvent: descriptor.IntermediateCatchEvent,
	model.Task:                   descriptor.Task,
	model.ServiceTask:            descriptor.ServiceTask,
	model.UserTask:               descriptor.UserTask,
	model.ExclusiveGateway:       descriptor.ExclusiveGateway,
	model.ParallelGateway:        descriptor.ParallelGateway,
	model.SubProcess:             descriptor.SubProcess,
}

// Compiler compiles process models into process graphs. It keeps no state
// between calls and can be used concurrently.
type Compiler struct {
	resolver          aspect.Resolver
	logger            *zap.Logger
	scratchSize       int
	maxDescriptorSize int
}

// Compile compiles the process; numericID is stored in the process descriptor.
// On error no graph is returned.
func (c *Compiler) Compile(ctx context.Context, process *model.Process, numericID uint64) (ret *processgraph.ProcessGraph, err error) {
	if process == nil {
		return nil, fmt.Errorf("process was nil")
	}
	_, span := tracing.StartSpan(ctx, "procgraph.compile", "INTERNAL")
	span.WithAttributes(map[string]string{"process.id": process.ID})
	defer func() { tracing.EndSpan(span, err) }()

	t := &transformer{
		process:   process,
		numericID: numericID,
		encoder:   descriptor.NewFlowElementEncoder(c.scratchSize, c.maxDescriptorSize),
		resolver:  c.resolver,
		ids:       map[string]uint32{},
		elements:  map[string]uint32{},
		linked:    map[*model.Scope]bool{},
	}
	ret, err = t.transform()
	if err != nil {
		return nil, err
	}
	c.logger.Debug("compiled process",
		zap.String("process", process.ID),
		zap.Uint64("numericId", numericID),
		zap.Int("nodes", ret.NodeCount()),
		zap.Int("bytes", len(ret.Bytes())))
	return ret, nil
}

// New creates a compiler
func New(opts ...Option) *Compiler {
	ret := &Compiler{
		resolver:          aspect.Default(),
		logger:            zap.NewNop(),
		scratchSize:       descriptor.DefaultScratchSize,
		maxDescriptorSize: descriptor.DefaultCapacityLimit,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// transformer holds the state of a single compilation
type transformer struct {
	process   *model.Process
	numericID uint64
	builder   *graph.Builder
	encoder   *descriptor.FlowElementEncoder
	resolver  aspect.Resolver
	// ids holds every registered string id, elements only flow element nodes
	ids      map[string]uint32
	elements map[string]uint32
	linked   map[*model.Scope]bool
}

func (t *transformer) transform() (*processgraph.ProcessGraph, error) {
	if t.process.ID == "" {
		return nil, &ValidationError{Attribute: "id", Err: ErrMissingID}
	}
	initial, err := t.initialFlowNode()
	if err != nil {
		return nil, err
	}
	if t.builder, err = graph.NewBuilder(processgraph.EdgeTypeCount); err != nil {
		return nil, err
	}
	if err = t.createProcessNode(); err != nil {
		return nil, err
	}
	if err = t.createFlowElements(); err != nil {
		return nil, err
	}
	if err = t.linkScope(&t.process.Scope); err != nil {
		return nil, err
	}
	if err = t.writeProcessData(t.elements[initial.ID]); err != nil {
		return nil, err
	}
	encoded, err := graph.Encode(t.builder)
	if err != nil {
		return nil, fmt.Errorf("failed to encode process %q: %w", t.process.ID, err)
	}
	return processgraph.Wrap(encoded)
}

func (t *transformer) createProcessNode() error {
	data, err := t.encode(t.process.ID, &descriptor.FlowElementDescriptor{Type: descriptor.Process, StringID: t.process.ID})
	if err != nil {
		return err
	}
	return t.register(t.process.ID, t.builder.NewNode(data))
}

func (t *transformer) createFlowElements() error {
	elements, err := Flatten(&t.process.Scope)
	if err != nil {
		return err
	}
	for _, element := range elements {
		data, err := t.encodeFlowElement(element)
		if err != nil {
			return err
		}
		nodeID := t.builder.NewNode(data)
		if err := t.register(element.ID, nodeID); err != nil {
			return err
		}
		t.elements[element.ID] = nodeID
	}
	return nil
}

// initialFlowNode returns the only none start event of the top-level scope
func (t *transformer) initialFlowNode() (*model.FlowElement, error) {
	var candidates []*model.FlowElement
	for _, element := range t.process.ElementsByType(model.StartEvent) {
		if element.IsNoneStartEvent() {
			candidates = append(candidates, element)
		}
	}
	if len(candidates) != 1 {
		ret := &UnresolvableInitialNodeError{ProcessID: t.process.ID}
		for _, candidate := range candidates {
			ret.Candidates = append(ret.Candidates, candidate.ID)
		}
		return nil, ret
	}
	return candidates[0], nil
}

func (t *transformer) writeProcessData(initialNodeID uint32) error {
	data, err := descriptor.EncodeProcess(&descriptor.ProcessDescriptor{
		NumericID:     t.numericID,
		InitialNodeID: initialNodeID,
		StringID:      t.process.ID,
	})
	if err != nil {
		return &ValidationError{ElementID: t.process.ID, Attribute: "id", Err: err}
	}
	return t.builder.SetRootPayload(data)
}

func (t *transformer) register(stringID string, nodeID uint32) error {
	if _, ok := t.ids[stringID]; ok {
		return &ValidationError{ElementID: stringID, Attribute: "id", Err: ErrDuplicateID}
	}
	t.ids[stringID] = nodeID
	return nil
}

func (t *transformer) encodeFlowElement(element *model.FlowElement) ([]byte, error) {
	elementType, ok := elementTypes[element.Type]
	if !ok {
		return nil, &ValidationError{ElementID: element.ID, Attribute: "type", Err: fmt.Errorf("unsupported element type %v", element.Type)}
	}
	d := &descriptor.FlowElementDescriptor{Type: elementType, StringID: element.ID}
	if element.Type.IsTask() {
		d.TaskType, _ = element.Attribute(model.AttributeTaskType)
		if value, ok := element.Attribute(model.AttributeTaskQueueID); ok {
			queueID, err := strconv.ParseUint(value, 10, 16)
			if err != nil {
				return nil, &ValidationError{ElementID: element.ID, Attribute: model.AttributeTaskQueueID, Err: err}
			}
			d.TaskQueueID, d.HasTaskQueueID = uint16(queueID), true
		}
	}
	return t.encode(element.ID, d)
}

func (t *transformer) encodeSequenceFlow(flow *model.SequenceFlow) ([]byte, error) {
	return t.encode(flow.ID, &descriptor.FlowElementDescriptor{Type: descriptor.SequenceFlow, StringID: flow.ID})
}

func (t *transformer) encode(elementID string, d *descriptor.FlowElementDescriptor) ([]byte, error) {
	d.EventBehaviors = t.resolver.Resolve(d.Type)
	data, err := t.encoder.Encode(d)
	if err == nil {
		return data, nil
	}
	var fieldErr *descriptor.FieldError
	if errors.As(err, &fieldErr) {
		return nil, &ValidationError{ElementID: elementID, Attribute: fieldErr.Field, Err: err}
	}
	return nil, fmt.Errorf("failed to encode element %q: %w", elementID, err)
}
