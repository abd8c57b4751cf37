package descriptor

import (
	"encoding/binary"
	"fmt"
)

const processBlockLength = 12

// FlowElement is a read-only flyweight over an encoded flow element record.
// The underlying bytes must not be modified.
type FlowElement []byte

// Wrap validates the record layout and returns a flyweight view
func Wrap(data []byte) (FlowElement, error) {
	if len(data) < BlockLength {
		return nil, fmt.Errorf("%w: record length %d shorter than block %d", ErrCorrupt, len(data), BlockLength)
	}
	f := FlowElement(data)
	idOffset := f.stringIDOffset()
	if idOffset+varHeaderLength > len(data) {
		return nil, fmt.Errorf("%w: event behavior table overruns record", ErrCorrupt)
	}
	taskTypeOffset := idOffset + varHeaderLength + int(binary.LittleEndian.Uint16(data[idOffset:]))
	if taskTypeOffset+varHeaderLength > len(data) {
		return nil, fmt.Errorf("%w: string id overruns record", ErrCorrupt)
	}
	end := taskTypeOffset + varHeaderLength + int(binary.LittleEndian.Uint16(data[taskTypeOffset:]))
	if end != len(data) {
		return nil, fmt.Errorf("%w: record length %d, expected %d", ErrCorrupt, len(data), end)
	}
	return f, nil
}

// Type returns element type
func (f FlowElement) Type() FlowElementType {
	return FlowElementType(f[0])
}

// TaskQueueID returns task queue id and presence flag
func (f FlowElement) TaskQueueID() (uint16, bool) {
	if f[1]&flagTaskQueueID == 0 {
		return 0, false
	}
	return binary.LittleEndian.Uint16(f[2:]), true
}

// EventBehaviorCount returns number of event behavior mappings
func (f FlowElement) EventBehaviorCount() int {
	return int(binary.LittleEndian.Uint16(f[4:]))
}

// EventBehavior returns i-th event behavior mapping
func (f FlowElement) EventBehavior(i int) EventBehavior {
	offset := BlockLength + i*eventBehaviorLength
	return EventBehavior{Event: ExecutionEventType(f[offset]), Aspect: Aspect(f[offset+1])}
}

// Aspect returns the behavioral aspect mapped to the event
func (f FlowElement) Aspect(event ExecutionEventType) (Aspect, bool) {
	count := f.EventBehaviorCount()
	for i := 0; i < count; i++ {
		offset := BlockLength + i*eventBehaviorLength
		if ExecutionEventType(f[offset]) == event {
			return Aspect(f[offset+1]), true
		}
	}
	return NoAspect, false
}

// StringIDBytes returns the string id bytes without copying
func (f FlowElement) StringIDBytes() []byte {
	offset := f.stringIDOffset()
	return f.varBytes(offset)
}

// StringID returns the element string id
func (f FlowElement) StringID() string {
	return string(f.StringIDBytes())
}

// TaskType returns the task type, empty when not applicable
func (f FlowElement) TaskType() string {
	offset := f.stringIDOffset()
	offset += varHeaderLength + int(binary.LittleEndian.Uint16(f[offset:]))
	return string(f.varBytes(offset))
}

// Decode copies the record into a descriptor struct
func (f FlowElement) Decode() *FlowElementDescriptor {
	ret := &FlowElementDescriptor{
		Type:     f.Type(),
		StringID: f.StringID(),
		TaskType: f.TaskType(),
	}
	ret.TaskQueueID, ret.HasTaskQueueID = f.TaskQueueID()
	if count := f.EventBehaviorCount(); count > 0 {
		ret.EventBehaviors = make([]EventBehavior, count)
		for i := range ret.EventBehaviors {
			ret.EventBehaviors[i] = f.EventBehavior(i)
		}
	}
	return ret
}

func (f FlowElement) stringIDOffset() int {
	return BlockLength + f.EventBehaviorCount()*eventBehaviorLength
}

func (f FlowElement) varBytes(offset int) []byte {
	length := int(binary.LittleEndian.Uint16(f[offset:]))
	start := offset + varHeaderLength
	return f[start : start+length : start+length]
}

// DecodeProcess decodes the process descriptor
func DecodeProcess(data []byte) (*ProcessDescriptor, error) {
	if len(data) < processBlockLength+varHeaderLength {
		return nil, fmt.Errorf("%w: process descriptor length %d", ErrCorrupt, len(data))
	}
	length := int(binary.LittleEndian.Uint16(data[processBlockLength:]))
	if processBlockLength+varHeaderLength+length != len(data) {
		return nil, fmt.Errorf("%w: process descriptor id length %d does not match record", ErrCorrupt, length)
	}
	return &ProcessDescriptor{
		NumericID:     binary.LittleEndian.Uint64(data),
		InitialNodeID: binary.LittleEndian.Uint32(data[8:]),
		StringID:      string(data[processBlockLength+varHeaderLength:]),
	}, nil
}
