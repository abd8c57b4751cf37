package descriptor

import (
	"encoding/binary"
	"math"
)

const (
	// BlockLength is the size of the fixed part of a flow element record
	BlockLength = 6

	eventBehaviorLength = 2
	varHeaderLength     = 2
	maxVarLength        = math.MaxUint16

	flagTaskQueueID = 1

	// DefaultScratchSize is the initial scratch buffer size
	DefaultScratchSize = 1024
	// DefaultCapacityLimit is the largest record an encoder produces
	DefaultCapacityLimit = 1024 * 1024
)

// FlowElementEncoder encodes flow element records into a reusable scratch
// buffer and returns exact-length copies. The scratch grows on demand up to
// the capacity limit. An encoder is not safe for concurrent use.
type FlowElementEncoder struct {
	scratch []byte
	limit   int
}

// Encode encodes the descriptor
func (e *FlowElementEncoder) Encode(d *FlowElementDescriptor) ([]byte, error) {
	if err := checkVarLength("eventBehaviors", len(d.EventBehaviors)); err != nil {
		return nil, err
	}
	if err := checkVarLength("id", len(d.StringID)); err != nil {
		return nil, err
	}
	if err := checkVarLength("taskType", len(d.TaskType)); err != nil {
		return nil, err
	}

	buf := e.scratch[:0]
	var flags byte
	if d.HasTaskQueueID {
		flags |= flagTaskQueueID
	}
	buf = append(buf, byte(d.Type), flags)
	buf = binary.LittleEndian.AppendUint16(buf, d.TaskQueueID)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(d.EventBehaviors)))
	for _, behavior := range d.EventBehaviors {
		buf = append(buf, byte(behavior.Event), byte(behavior.Aspect))
	}
	buf = appendVar(buf, d.StringID)
	buf = appendVar(buf, d.TaskType)

	if len(buf) > e.limit {
		return nil, &EncodingCapacityError{Required: len(buf), Limit: e.limit}
	}
	if cap(buf) > cap(e.scratch) {
		e.scratch = buf[:0]
	}
	encoded := make([]byte, len(buf))
	copy(encoded, buf)
	return encoded, nil
}

// ScratchCapacity returns the current scratch buffer capacity
func (e *FlowElementEncoder) ScratchCapacity() int {
	return cap(e.scratch)
}

func appendVar(buf []byte, value string) []byte {
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(value)))
	return append(buf, value...)
}

func checkVarLength(field string, length int) error {
	if length > maxVarLength {
		return &FieldError{Field: field, Length: length}
	}
	return nil
}

// NewFlowElementEncoder creates an encoder; non positive arguments select defaults
func NewFlowElementEncoder(scratchSize, limit int) *FlowElementEncoder {
	if limit <= 0 {
		limit = DefaultCapacityLimit
	}
	if scratchSize <= 0 {
		scratchSize = DefaultScratchSize
	}
	if scratchSize > limit {
		scratchSize = limit
	}
	return &FlowElementEncoder{scratch: make([]byte, 0, scratchSize), limit: limit}
}

// EncodeProcess encodes the process descriptor
func EncodeProcess(d *ProcessDescriptor) ([]byte, error) {
	if err := checkVarLength("id", len(d.StringID)); err != nil {
		return nil, err
	}
	buf := make([]byte, 0, processBlockLength+varHeaderLength+len(d.StringID))
	buf = binary.LittleEndian.AppendUint64(buf, d.NumericID)
	buf = binary.LittleEndian.AppendUint32(buf, d.InitialNodeID)
	return appendVar(buf, d.StringID), nil
}
