package yml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNode(t *testing.T) {
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(`
ID: order
count: 3
enabled: true
items: [a, b]
`), &doc))
	root := (*Node)(&doc).Root()
	assert.Equal(t, yaml.MappingNode, root.Kind)

	id := root.Lookup("id")
	require.NotNil(t, id)
	value, err := id.Scalar("id")
	require.NoError(t, err)
	assert.Equal(t, "order", value)
	assert.Nil(t, root.Lookup("missing"))

	_, err = root.Lookup("items").Scalar("items")
	assert.Error(t, err)

	var keys []string
	require.NoError(t, root.Pairs(func(key string, node *Node) error {
		keys = append(keys, key)
		return nil
	}))
	assert.Equal(t, []string{"ID", "count", "enabled", "items"}, keys)
	assert.Equal(t, map[string]interface{}{
		"ID":      "order",
		"count":   3,
		"enabled": true,
		"items":   []interface{}{"a", "b"},
	}, root.Interface())
}
