package descriptor

// FlowElementType is the binary element kind tag
type FlowElementType uint8

const (
	UnknownType FlowElementType = iota
	Process
	StartEvent
	EndEvent
	IntermediateCatchEvent
	Task
	ServiceTask
	UserTask
	ExclusiveGateway
	ParallelGateway
	SubProcess
	SequenceFlow
)

var flowElementTypeNames = [...]string{
	UnknownType:            "unknown",
	Process:                "process",
	StartEvent:             "startEvent",
	EndEvent:               "endEvent",
	IntermediateCatchEvent: "intermediateCatchEvent",
	Task:                   "task",
	ServiceTask:            "serviceTask",
	UserTask:               "userTask",
	ExclusiveGateway:       "exclusiveGateway",
	ParallelGateway:        "parallelGateway",
	SubProcess:             "subProcess",
	SequenceFlow:           "sequenceFlow",
}

func (t FlowElementType) String() string {
	if int(t) < len(flowElementTypeNames) {
		return flowElementTypeNames[t]
	}
	return "unknown"
}

// ExecutionEventType is the kind of execution event a flow element reacts to
type ExecutionEventType uint8

const (
	UnknownEvent ExecutionEventType = iota
	EventOccurred
	ProcessInstanceCreated
	ProcessInstanceCompleted
	ActivityInstanceCreated
	ActivityInstanceCompleted
	GatewayActivated
	SequenceFlowTaken
)

var executionEventNames = [...]string{
	UnknownEvent:              "unknown",
	EventOccurred:             "EVT_OCCURRED",
	ProcessInstanceCreated:    "PROC_INST_CREATED",
	ProcessInstanceCompleted:  "PROC_INST_COMPLETED",
	ActivityInstanceCreated:   "ACT_INST_CREATED",
	ActivityInstanceCompleted: "ACT_INST_COMPLETED",
	GatewayActivated:          "GW_ACTIVATED",
	SequenceFlowTaken:         "SQF_TAKEN",
}

func (e ExecutionEventType) String() string {
	if int(e) < len(executionEventNames) {
		return executionEventNames[e]
	}
	return "unknown"
}

// Aspect is a behavioral aspect: how an element reacts to an execution event
type Aspect uint8

const (
	NoAspect Aspect = iota
	StartProcess
	EndProcess
	TakeOutgoingFlows
	ConsumeToken
	StartActivity
	CreateTask
	EnterScope
	ExclusiveSplit
	ParallelSplit
	StartFlowElement
)

var aspectNames = [...]string{
	NoAspect:          "none",
	StartProcess:      "startProcess",
	EndProcess:        "endProcess",
	TakeOutgoingFlows: "takeOutgoingFlows",
	ConsumeToken:      "consumeToken",
	StartActivity:     "startActivity",
	CreateTask:        "createTask",
	EnterScope:        "enterScope",
	ExclusiveSplit:    "exclusiveSplit",
	ParallelSplit:     "parallelSplit",
	StartFlowElement:  "startFlowElement",
}

func (a Aspect) String() string {
	if int(a) < len(aspectNames) {
		return aspectNames[a]
	}
	return "unknown"
}

// EventBehavior maps an execution event kind to a behavioral aspect
type EventBehavior struct {
	Event  ExecutionEventType `json:"event" yaml:"event"`
	Aspect Aspect             `json:"aspect" yaml:"aspect"`
}

// FlowElementDescriptor is the decoded form of a flow element record
type FlowElementDescriptor struct {
	Type           FlowElementType `json:"type"`
	StringID       string          `json:"id"`
	TaskType       string          `json:"taskType,omitempty"`
	TaskQueueID    uint16          `json:"taskQueueId,omitempty"`
	HasTaskQueueID bool            `json:"hasTaskQueueId,omitempty"`
	EventBehaviors []EventBehavior `json:"eventBehaviors,omitempty"`
}

// ProcessDescriptor is the graph root payload
type ProcessDescriptor struct {
	NumericID     uint64 `json:"numericId"`
	InitialNodeID uint32 `json:"initialNodeId"`
	StringID      string `json:"id"`
}
