package definition

import (
	"context"
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"
	"github.com/viant/procgraph/compiler"
	"github.com/viant/procgraph/descriptor"
	"github.com/viant/procgraph/model"
	"github.com/viant/procgraph/service/meta"
)

//go:embed testdata/*
var testFS embed.FS

func newService() *Service {
	return New(WithMetaService(meta.New(afs.New(), "embed:///testdata", &testFS)))
}

func TestService_Load(t *testing.T) {
	t.Setenv("PROCGRAPH_PAYMENT_QUEUE", "12")
	process, err := newService().Load(context.Background(), "order")
	require.NoError(t, err)

	assert.Equal(t, "order", process.ID)
	assert.Equal(t, "Order fulfilment", process.Name)
	assert.Equal(t, "order.yaml", process.Source.URL)

	var ids []string
	for _, element := range process.Elements {
		ids = append(ids, element.ID)
	}
	assert.Equal(t, []string{"start", "charge", "paid", "ship", "end"}, ids)

	charge := process.Element("charge")
	assert.Equal(t, model.ServiceTask, charge.Type)
	assert.Equal(t, "Charge card", charge.Name)
	assert.Equal(t, map[string]string{"taskType": "payment", "taskQueueId": "12", "retries": "3"}, charge.Attributes)

	paid := process.Element("paid")
	require.Len(t, paid.EventDefinitions, 1)
	assert.Equal(t, "message", paid.EventDefinitions[0].Type)

	ship := process.Element("ship")
	require.NotNil(t, ship.Scope)
	assert.Len(t, ship.Scope.Elements, 3)
	require.Len(t, ship.Scope.SequenceFlows, 2)
	assert.Equal(t, "ship_start_to_pack", ship.Scope.SequenceFlows[0].ID)

	var flows []string
	for _, flow := range process.SequenceFlows {
		flows = append(flows, flow.ID)
	}
	assert.Equal(t, []string{"to_charge", "to_paid", "to_ship", "to_end"}, flows)

	compiled, err := compiler.New().Compile(context.Background(), process, 1)
	require.NoError(t, err)
	assert.Equal(t, 1+8+6, compiled.NodeCount())
	chargeID, ok := compiled.NodeByID("charge")
	require.True(t, ok)
	queueID, ok := compiled.FlowElement(chargeID).TaskQueueID()
	assert.True(t, ok)
	assert.EqualValues(t, 12, queueID)
}

func TestService_Load_Sequence(t *testing.T) {
	process, err := newService().Load(context.Background(), "simple.yaml")
	require.NoError(t, err)
	assert.Equal(t, "simple", process.ID)

	timer := process.Element("timer")
	require.Len(t, timer.EventDefinitions, 1)
	assert.Equal(t, &model.EventDefinition{ID: "every_hour", Type: "timer"}, timer.EventDefinitions[0])

	compiled, err := compiler.New().Compile(context.Background(), process, 7)
	require.NoError(t, err)
	assert.Equal(t, "start", compiled.FlowElement(compiled.InitialNode()).StringID())
	task := compiled.FlowElement(3).Decode()
	assert.Equal(t, "task", task.StringID)
	assert.Equal(t, descriptor.ServiceTask, task.Type)
	assert.Equal(t, "foo", task.TaskType)
	assert.EqualValues(t, 3, task.TaskQueueID)
}

func TestService_DecodeYAML(t *testing.T) {
	testCases := []struct {
		description string
		yaml        string
		expectErr   bool
		expectFlows []*model.SequenceFlow
	}{
		{
			description: "scalar shorthand",
			yaml:        "id: p\nelements:\n  a: startEvent\n  b: endEvent\nflows:\n  - {source: a, target: b}\n",
			expectFlows: []*model.SequenceFlow{{ID: "a_to_b", SourceRef: "a", TargetRef: "b"}},
		},
		{description: "missing id", yaml: "elements:\n  a: startEvent\n", expectErr: true},
		{description: "unknown type", yaml: "id: p\nelements:\n  a: gizmo\n", expectErr: true},
		{description: "missing type", yaml: "id: p\nelements:\n  a: {name: x}\n", expectErr: true},
		{description: "nesting in task", yaml: "id: p\nelements:\n  a: {type: task, elements: {b: endEvent}}\n", expectErr: true},
		{description: "flow without target", yaml: "id: p\nflows:\n  - {source: a}\n", expectErr: true},
		{description: "unsupported flow key", yaml: "id: p\nflows:\n  f: {source: a, target: b, weight: 2}\n", expectErr: true},
		{description: "non scalar attribute", yaml: "id: p\nelements:\n  a: {type: task, extra: [1, 2]}\n", expectErr: true},
		{description: "not a mapping", yaml: "- a\n- b\n", expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			process, err := New().DecodeYAML([]byte(tc.yaml))
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectFlows, process.SequenceFlows)
		})
	}
}
