// Package definition reads process definitions from YAML.
//
//	id: order
//	elements:
//	  start: startEvent
//	  charge:
//	    type: serviceTask
//	    taskType: payment
//	    taskQueueId: 3
//	  end: endEvent
//	flows:
//	  - {source: start, target: charge}
//	  - {id: done, source: charge, target: end}
//
// Elements and flows are either a mapping keyed by id or a sequence of
// mappings with an id key; declaration order is preserved. A flow without id
// is named <source>_to_<target>. Sub-processes carry nested elements and flows.
package definition

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/procgraph/internal/yml"
	"github.com/viant/procgraph/model"
	"github.com/viant/procgraph/service/meta"
	"gopkg.in/yaml.v3"
)

type Service struct {
	metaService *meta.Service
}

// DecodeYAML decodes a process from YAML
func (s *Service) DecodeYAML(encoded []byte) (*model.Process, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(encoded, &node); err != nil {
		return nil, err
	}
	return s.ParseProcess("", &node)
}

// Load loads a process from YAML at the specified URL
func (s *Service) Load(ctx context.Context, URL string) (*model.Process, error) {
	if filepath.Ext(URL) == "" {
		URL += ".yaml"
	}
	var node yaml.Node
	if err := s.metaService.Load(ctx, URL, &node); err != nil {
		return nil, fmt.Errorf("failed to load process from %s: %w", URL, err)
	}
	return s.ParseProcess(URL, &node)
}

// ParseProcess converts a YAML document into a process; without an id key the
// process id is the URL file name
func (s *Service) ParseProcess(URL string, node *yaml.Node) (*model.Process, error) {
	process := &model.Process{}
	if URL != "" {
		process.Source = &model.Source{URL: URL}
		base := filepath.Base(URL)
		process.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	root := (*yml.Node)(node).Root()
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("failed to parse process %s: expected mapping at line %d", URL, root.Line)
	}
	err := root.Pairs(func(key string, valueNode *yml.Node) error {
		var err error
		switch strings.ToLower(key) {
		case "id":
			process.ID, err = valueNode.Scalar(key)
		case "name":
			process.Name, err = valueNode.Scalar(key)
		case "elements":
			err = parseElements(&process.Scope, valueNode)
		case "flows":
			err = parseFlows(&process.Scope, valueNode)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse process %s: %w", URL, err)
	}
	if process.ID == "" {
		return nil, fmt.Errorf("failed to parse process %s: id was empty", URL)
	}
	return process, nil
}

func parseElements(scope *model.Scope, node *yml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		return node.Pairs(func(id string, elementNode *yml.Node) error {
			element, err := parseElement(id, elementNode)
			if err != nil {
				return err
			}
			scope.Add(element)
			return nil
		})
	case yaml.SequenceNode:
		return node.Items(func(_ int, elementNode *yml.Node) error {
			element, err := parseElement("", elementNode)
			if err != nil {
				return err
			}
			scope.Add(element)
			return nil
		})
	}
	return fmt.Errorf("elements: expected mapping or sequence at line %d", node.Line)
}

func parseElement(id string, node *yml.Node) (*model.FlowElement, error) {
	element := &model.FlowElement{ID: id}
	if node.Kind == yaml.ScalarNode {
		elementType, err := model.ParseElementType(node.Value)
		if err != nil {
			return nil, fmt.Errorf("element %q: %w", id, err)
		}
		element.Type = elementType
		return element, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("element %q: expected mapping at line %d", id, node.Line)
	}
	var nestedElements, nestedFlows *yml.Node
	err := node.Pairs(func(key string, valueNode *yml.Node) error {
		var err error
		switch strings.ToLower(key) {
		case "id":
			element.ID, err = valueNode.Scalar(key)
		case "name":
			element.Name, err = valueNode.Scalar(key)
		case "type":
			var text string
			if text, err = valueNode.Scalar(key); err == nil {
				element.Type, err = model.ParseElementType(text)
			}
		case "eventdefinitions", "eventdefinition":
			err = parseEventDefinitions(element, valueNode)
		case "elements":
			nestedElements = valueNode
		case "flows":
			nestedFlows = valueNode
		default:
			var value string
			if value, err = valueNode.Scalar(key); err == nil {
				element.WithAttribute(attributeName(key), value)
			}
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("element %q: %w", element.ID, err)
	}
	if element.Type == model.UnknownElement {
		return nil, fmt.Errorf("element %q: type was empty (line %d)", element.ID, node.Line)
	}
	if element.Type != model.SubProcess {
		if nestedElements != nil || nestedFlows != nil {
			return nil, fmt.Errorf("element %q: only %v can nest elements", element.ID, model.SubProcess)
		}
		return element, nil
	}
	element.Scope = &model.Scope{}
	if nestedElements != nil {
		if err = parseElements(element.Scope, nestedElements); err != nil {
			return nil, fmt.Errorf("sub-process %q: %w", element.ID, err)
		}
	}
	if nestedFlows != nil {
		if err = parseFlows(element.Scope, nestedFlows); err != nil {
			return nil, fmt.Errorf("sub-process %q: %w", element.ID, err)
		}
	}
	return element, nil
}

// attributeName normalizes well known task attribute keys
func attributeName(key string) string {
	switch strings.ToLower(key) {
	case strings.ToLower(model.AttributeTaskType):
		return model.AttributeTaskType
	case strings.ToLower(model.AttributeTaskQueueID):
		return model.AttributeTaskQueueID
	}
	return key
}

func parseEventDefinitions(element *model.FlowElement, node *yml.Node) error {
	add := func(definitionNode *yml.Node) error {
		if definitionNode.Kind == yaml.ScalarNode {
			element.WithEventDefinition(definitionNode.Value)
			return nil
		}
		definition := &model.EventDefinition{}
		if lookup := definitionNode.Lookup("type"); lookup != nil {
			definition.Type = lookup.Value
		}
		if lookup := definitionNode.Lookup("id"); lookup != nil {
			definition.ID = lookup.Value
		}
		if definition.Type == "" {
			return fmt.Errorf("event definition type was empty (line %d)", definitionNode.Line)
		}
		element.EventDefinitions = append(element.EventDefinitions, definition)
		return nil
	}
	if node.Kind == yaml.SequenceNode {
		return node.Items(func(_ int, item *yml.Node) error { return add(item) })
	}
	return add(node)
}

func parseFlows(scope *model.Scope, node *yml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		return node.Pairs(func(id string, flowNode *yml.Node) error {
			flow, err := parseFlow(id, flowNode)
			if err != nil {
				return err
			}
			scope.SequenceFlows = append(scope.SequenceFlows, flow)
			return nil
		})
	case yaml.SequenceNode:
		return node.Items(func(_ int, flowNode *yml.Node) error {
			flow, err := parseFlow("", flowNode)
			if err != nil {
				return err
			}
			scope.SequenceFlows = append(scope.SequenceFlows, flow)
			return nil
		})
	}
	return fmt.Errorf("flows: expected mapping or sequence at line %d", node.Line)
}

func parseFlow(id string, node *yml.Node) (*model.SequenceFlow, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("flow %q: expected mapping at line %d", id, node.Line)
	}
	flow := &model.SequenceFlow{ID: id}
	err := node.Pairs(func(key string, valueNode *yml.Node) error {
		var err error
		switch strings.ToLower(key) {
		case "id":
			flow.ID, err = valueNode.Scalar(key)
		case "source", "sourceref":
			flow.SourceRef, err = valueNode.Scalar(key)
		case "target", "targetref":
			flow.TargetRef, err = valueNode.Scalar(key)
		default:
			err = fmt.Errorf("unsupported key %q at line %d", key, valueNode.Line)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("flow %q: %w", id, err)
	}
	if flow.SourceRef == "" || flow.TargetRef == "" {
		return nil, fmt.Errorf("flow %q: source and target are required (line %d)", flow.ID, node.Line)
	}
	if flow.ID == "" {
		flow.ID = flow.SourceRef + "_to_" + flow.TargetRef
	}
	return flow, nil
}

func New(opts ...Option) *Service {
	ret := &Service{
		metaService: meta.New(afs.New(), ""),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
