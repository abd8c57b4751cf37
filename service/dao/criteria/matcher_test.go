package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/procgraph/service/dao"
)

func TestFilterByProcessID(t *testing.T) {
	testCases := []struct {
		description string
		processID   string
		parameters  []*dao.Parameter
		expect      bool
	}{
		{description: "no parameters", processID: "order", expect: true},
		{description: "single match", processID: "order", parameters: []*dao.Parameter{dao.WithProcessID("order")}, expect: true},
		{description: "single mismatch", processID: "order", parameters: []*dao.Parameter{dao.WithProcessID("invoice")}},
		{description: "any of", processID: "order", parameters: []*dao.Parameter{dao.WithProcessID("invoice", "order")}, expect: true},
		{description: "none of", processID: "order", parameters: []*dao.Parameter{dao.WithProcessID("a", "b")}},
		{description: "other parameter", processID: "order", parameters: []*dao.Parameter{dao.NewParameter("State", "done")}, expect: true},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expect, FilterByProcessID(tc.processID, tc.parameters))
		})
	}
}
