package compiler

import (
	"sort"

	"github.com/viant/procgraph/model"
)

// Flatten collects flow elements of the scope and all nested sub-process
// scopes. Each element appears once, even when reachable more than once, and
// the result is sorted ascending by id (byte-wise). Distinct elements sharing
// an id are rejected with a ValidationError, as is a nested scope on anything
// other than a sub-process.
func Flatten(scope *model.Scope) ([]*model.FlowElement, error) {
	var result []*model.FlowElement
	visited := map[*model.FlowElement]bool{}
	byID := map[string]*model.FlowElement{}

	var walk func(scope *model.Scope) error
	walk = func(scope *model.Scope) error {
		for _, element := range scope.Elements {
			if element == nil || visited[element] {
				continue
			}
			visited[element] = true
			if element.ID == "" {
				return &ValidationError{ElementID: element.ID, Attribute: "id", Err: ErrMissingID}
			}
			if _, ok := byID[element.ID]; ok {
				return &ValidationError{ElementID: element.ID, Attribute: "id", Err: ErrDuplicateID}
			}
			byID[element.ID] = element
			result = append(result, element)
			if element.Scope != nil {
				if element.Type != model.SubProcess {
					return &ValidationError{ElementID: element.ID, Attribute: "scope", Err: ErrUnexpectedScope}
				}
				if err := walk(element.Scope); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(scope); err != nil {
		return nil, err
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}
