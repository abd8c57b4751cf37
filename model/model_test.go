package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseElementType(t *testing.T) {
	testCases := []struct {
		name      string
		expect    ElementType
		expectErr bool
	}{
		{name: "serviceTask", expect: ServiceTask},
		{name: "SERVICETASK", expect: ServiceTask},
		{name: "intermediateCatchEvent", expect: IntermediateCatchEvent},
		{name: "subProcess", expect: SubProcess},
		{name: "boundaryEvent", expectErr: true},
		{name: "", expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ParseElementType(tc.name)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestProcess_Builders(t *testing.T) {
	process := NewProcess("order").WithName("Order")
	process.StartEvent("start")
	process.ServiceTask("charge", "payment", 5)
	sub := process.SubProcess("ship")
	sub.Scope.StartEvent("ship_start")
	sub.Scope.EndEvent("ship_end")
	sub.Scope.Connect("ship_start", "ship_end")
	process.IntermediateCatchEvent("paid", "message")
	process.EndEvent("end")
	process.Connect("start", "charge", "paid", "ship", "end")

	assert.Equal(t, 7, process.ElementCount())
	assert.Equal(t, 5, process.FlowCount())
	assert.Equal(t, "charge_to_paid", process.SequenceFlows[1].ID)
	assert.Len(t, process.SubProcesses(), 1)
	assert.Nil(t, process.Element("ship_start"))
	assert.NotNil(t, sub.Scope.Element("ship_start"))

	charge := process.Element("charge")
	taskType, ok := charge.Attribute(AttributeTaskType)
	assert.True(t, ok)
	assert.Equal(t, "payment", taskType)
	queueID, _ := charge.Attribute(AttributeTaskQueueID)
	assert.Equal(t, "5", queueID)
	_, ok = process.Element("end").Attribute(AttributeTaskType)
	assert.False(t, ok)

	assert.True(t, process.Element("start").IsNoneStartEvent())
	assert.False(t, process.Element("paid").IsNoneStartEvent())
	assert.Equal(t, "message", process.Element("paid").EventDefinitions[0].Type)

	var visited []string
	require.NoError(t, process.Walk(func(element *FlowElement) error {
		visited = append(visited, element.ID)
		return nil
	}))
	assert.Equal(t, []string{"start", "charge", "ship", "ship_start", "ship_end", "paid", "end"}, visited)
}

func TestScope_NilEntries(t *testing.T) {
	process := NewProcess("order")
	process.Add(nil)
	process.StartEvent("start")
	sub := process.SubProcess("sub")
	sub.Scope.Add(nil)
	sub.Scope.SequenceFlows = append(sub.Scope.SequenceFlows, nil)
	process.SequenceFlows = append(process.SequenceFlows, nil)
	process.Connect("start", "sub")

	assert.Nil(t, process.Element("missing"))
	assert.Len(t, process.ElementsByType(StartEvent), 1)
	assert.Len(t, process.SubProcesses(), 1)
	assert.Equal(t, 2, process.ElementCount())
	assert.Equal(t, 1, process.FlowCount())
}

func TestElementType_JSON(t *testing.T) {
	element := &FlowElement{ID: "task", Type: UserTask}
	data, err := json.Marshal(element)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"task","type":"userTask"}`, string(data))

	var decoded FlowElement
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, UserTask, decoded.Type)

	_, err = json.Marshal(&FlowElement{ID: "x"})
	assert.Error(t, err)
}
