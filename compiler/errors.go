package compiler

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateID is returned when two distinct nodes share a string id
	ErrDuplicateID = errors.New("compiler: duplicate id")

	// ErrMissingID is returned for an element or flow without id
	ErrMissingID = errors.New("compiler: missing id")

	// ErrUnexpectedScope is returned for a nested scope on an element other than a sub-process
	ErrUnexpectedScope = errors.New("compiler: only sub-processes can have a nested scope")

	// ErrReferentialIntegrity marks an internally inconsistent model; it is a
	// defect of the model producer rather than a user correctable condition
	ErrReferentialIntegrity = errors.New("compiler: referential integrity violation")
)

// ValidationError reports a malformed attribute of a flow element
type ValidationError struct {
	ElementID string
	Attribute string
	Err       error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s of element %q: %v", e.Attribute, e.ElementID, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// UnresolvableInitialNodeError is returned when the top-level scope does not
// have exactly one start event without event definitions
type UnresolvableInitialNodeError struct {
	ProcessID  string
	Candidates []string
}

func (e *UnresolvableInitialNodeError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("process %q: cannot find none start event", e.ProcessID)
	}
	return fmt.Sprintf("process %q: expected one none start event, found %d: %s", e.ProcessID, len(e.Candidates), strings.Join(e.Candidates, ", "))
}

// ReferentialIntegrityError is returned when a sequence flow references an
// id that has no flow element node
type ReferentialIntegrityError struct {
	FlowID string
	Role   string
	Ref    string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("sequence flow %q: %s %q does not reference a flow element", e.FlowID, e.Role, e.Ref)
}

func (e *ReferentialIntegrityError) Unwrap() error {
	return ErrReferentialIntegrity
}
