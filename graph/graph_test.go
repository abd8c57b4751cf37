package graph

import (
	"encoding/binary"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type edgeSpec struct {
	from uint32
	slot int
	to   uint32
}

func TestEncode_RoundTrip(t *testing.T) {
	testCases := []struct {
		name          string
		edgeTypeCount int
		nodes         [][]byte
		edges         []edgeSpec
		root          []byte
	}{
		{
			name:          "single node",
			edgeTypeCount: 1,
			nodes:         [][]byte{[]byte("root")},
			root:          []byte("payload"),
		},
		{
			name:          "typed edges",
			edgeTypeCount: 4,
			nodes:         [][]byte{[]byte("p"), []byte("a"), []byte("bb"), nil, []byte("flow")},
			edges: []edgeSpec{
				{from: 4, slot: 2, to: 1},
				{from: 1, slot: 0, to: 4},
				{from: 4, slot: 3, to: 2},
				{from: 2, slot: 1, to: 4},
				{from: 1, slot: 0, to: 3},
				{from: 1, slot: 0, to: 1},
			},
			root: []byte{1, 2, 3},
		},
		{
			name:          "no nodes empty payload",
			edgeTypeCount: 2,
			root:          []byte{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			builder, err := NewBuilder(tc.edgeTypeCount)
			require.NoError(t, err)
			for i, data := range tc.nodes {
				assert.EqualValues(t, i, builder.NewNode(data))
			}
			for _, edge := range tc.edges {
				require.NoError(t, builder.Connect(edge.from, edge.slot, edge.to))
			}
			require.NoError(t, builder.SetRootPayload(tc.root))

			encoded, err := Encode(builder)
			require.NoError(t, err)

			g, err := Wrap(encoded)
			require.NoError(t, err)
			assert.Equal(t, len(tc.nodes), g.NodeCount())
			assert.Equal(t, tc.edgeTypeCount, g.EdgeTypeCount())
			assert.Equal(t, len(tc.root), len(g.RootPayload()))
			assert.Equal(t, string(tc.root), string(g.RootPayload()))
			for i := range tc.nodes {
				id := uint32(i)
				assert.Equal(t, string(builder.NodeData(id)), string(g.NodeData(id)))
				for slot := 0; slot < tc.edgeTypeCount; slot++ {
					staged := builder.Edges(id, slot)
					actual := g.Edges(id, slot).AppendTo(nil)
					assert.Equal(t, len(staged), len(actual), "node %d slot %d", id, slot)
					if len(staged) > 0 {
						assert.Equal(t, staged, actual, "node %d slot %d", id, slot)
					}
				}
			}
		})
	}
}

func TestEdges_All(t *testing.T) {
	builder, err := NewBuilder(1)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		builder.NewNode(nil)
	}
	for _, to := range []uint32{3, 1, 2} {
		require.NoError(t, builder.Connect(0, 0, to))
	}
	require.NoError(t, builder.SetRootPayload(nil))
	encoded, err := Encode(builder)
	require.NoError(t, err)
	g, err := Wrap(encoded)
	require.NoError(t, err)

	assert.Equal(t, []uint32{3, 1, 2}, slices.Collect(g.Edges(0, 0).All()))
	var first []uint32
	for id := range g.Edges(0, 0).All() {
		first = append(first, id)
		break
	}
	assert.Equal(t, []uint32{3}, first)
}

func TestBuilder_Errors(t *testing.T) {
	_, err := NewBuilder(0)
	assert.True(t, errors.Is(err, ErrInvalidEdgeTypeCount))
	_, err = NewBuilder(MaxEdgeTypeCount + 1)
	assert.True(t, errors.Is(err, ErrInvalidEdgeTypeCount))

	builder, err := NewBuilder(2)
	require.NoError(t, err)
	builder.NewNode(nil)
	builder.NewNode(nil)

	assert.True(t, errors.Is(builder.Connect(0, 2, 1), ErrEdgeTypeOutOfRange))
	assert.True(t, errors.Is(builder.Connect(0, -1, 1), ErrEdgeTypeOutOfRange))
	assert.True(t, errors.Is(builder.Connect(0, 0, 2), ErrUnknownNode))
	assert.True(t, errors.Is(builder.Connect(5, 0, 1), ErrUnknownNode))

	_, err = Encode(builder)
	assert.True(t, errors.Is(err, ErrRootPayloadMissing))

	require.NoError(t, builder.SetRootPayload([]byte("a")))
	assert.True(t, errors.Is(builder.SetRootPayload([]byte("b")), ErrRootPayloadSet))
}

func TestEncode_Layout(t *testing.T) {
	builder, err := NewBuilder(2)
	require.NoError(t, err)
	builder.NewNode([]byte("ab"))
	builder.NewNode([]byte("c"))
	require.NoError(t, builder.Connect(0, 1, 1))
	require.NoError(t, builder.SetRootPayload([]byte("r")))
	encoded, err := Encode(builder)
	require.NoError(t, err)

	entrySize := 8 + 2*8
	edgeArray := HeaderLength + 2*entrySize
	assert.Len(t, encoded, edgeArray+4+3+1)
	le := binary.LittleEndian
	assert.Equal(t, Magic, le.Uint32(encoded))
	assert.EqualValues(t, 2, le.Uint16(encoded[6:]))
	assert.EqualValues(t, 2, le.Uint32(encoded[8:]))
	assert.EqualValues(t, len(encoded)-1, le.Uint32(encoded[12:]))
	assert.EqualValues(t, 1, le.Uint32(encoded[16:]))
	assert.EqualValues(t, edgeArray, le.Uint32(encoded[20:]))
	assert.EqualValues(t, 1, le.Uint32(encoded[edgeArray:]))
	assert.Equal(t, "abcr", string(encoded[edgeArray+4:]))
}

func TestWrap_Corrupt(t *testing.T) {
	builder, err := NewBuilder(1)
	require.NoError(t, err)
	builder.NewNode([]byte("x"))
	builder.NewNode([]byte("y"))
	require.NoError(t, builder.Connect(0, 0, 1))
	require.NoError(t, builder.SetRootPayload([]byte("root")))
	valid, err := Encode(builder)
	require.NoError(t, err)

	mutate := func(fn func(data []byte)) []byte {
		data := slices.Clone(valid)
		fn(data)
		return data
	}
	edgeArray := HeaderLength + 2*entryLength(1)

	testCases := []struct {
		name string
		data []byte
	}{
		{name: "short", data: valid[:HeaderLength-1]},
		{name: "magic", data: mutate(func(d []byte) { d[0] = 'X' })},
		{name: "version", data: mutate(func(d []byte) { binary.LittleEndian.PutUint16(d[versionOffset:], 9) })},
		{name: "zero edge types", data: mutate(func(d []byte) { binary.LittleEndian.PutUint16(d[edgeTypeCountOffset:], 0) })},
		{name: "node count", data: mutate(func(d []byte) { binary.LittleEndian.PutUint32(d[nodeCountOffset:], 1000) })},
		{name: "root payload", data: mutate(func(d []byte) { binary.LittleEndian.PutUint32(d[rootPayloadLengthOffset:], 1000) })},
		{name: "dangling neighbor", data: mutate(func(d []byte) { binary.LittleEndian.PutUint32(d[edgeArray:], 7) })},
		{name: "truncated", data: valid[:len(valid)-2]},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Wrap(tc.data)
			assert.True(t, errors.Is(err, ErrCorrupt), "%v", err)
		})
	}
}

func TestGraph_ConcurrentReads(t *testing.T) {
	builder, err := NewBuilder(1)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		builder.NewNode([]byte{byte(i)})
		if i > 0 {
			require.NoError(t, builder.Connect(uint32(i-1), 0, uint32(i)))
		}
	}
	require.NoError(t, builder.SetRootPayload(nil))
	encoded, err := Encode(builder)
	require.NoError(t, err)
	g, err := Wrap(encoded)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := uint32(0)
			for g.Edges(id, 0).Len() > 0 {
				assert.Equal(t, byte(id), g.NodeData(id)[0])
				id = g.Edges(id, 0).At(0)
			}
			assert.EqualValues(t, 99, id)
		}()
	}
	wg.Wait()
}
