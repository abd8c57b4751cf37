package graph

import (
	"encoding/binary"
	"fmt"
	"iter"
)

// Graph is a read-only view over an encoded graph. Accessors do not allocate
// and may be called concurrently. Node ids and slots out of range panic, the
// same way slice indexing does.
type Graph struct {
	buf           []byte
	nodeCount     int
	edgeTypeCount int
	entrySize     int
}

// Edges is a neighbor id list of one (node, slot) pair
type Edges struct {
	data []byte
}

// Len returns number of neighbors
func (e Edges) Len() int {
	return len(e.data) / edgeIDLength
}

// At returns i-th neighbor id
func (e Edges) At(i int) uint32 {
	return binary.LittleEndian.Uint32(e.data[i*edgeIDLength:])
}

// All iterates neighbor ids in insertion order
func (e Edges) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for i := 0; i < e.Len(); i++ {
			if !yield(e.At(i)) {
				return
			}
		}
	}
}

// AppendTo appends neighbor ids to dst
func (e Edges) AppendTo(dst []uint32) []uint32 {
	for i := 0; i < e.Len(); i++ {
		dst = append(dst, e.At(i))
	}
	return dst
}

// NodeCount returns number of nodes
func (g *Graph) NodeCount() int {
	return g.nodeCount
}

// EdgeTypeCount returns number of edge-type slots per node
func (g *Graph) EdgeTypeCount() int {
	return g.edgeTypeCount
}

// Bytes returns the encoded graph; the slice must not be modified
func (g *Graph) Bytes() []byte {
	return g.buf
}

// NodeData returns the data (descriptor) of a node without copying
func (g *Graph) NodeData(id uint32) []byte {
	entry := g.entry(id)
	offset := binary.LittleEndian.Uint32(entry[nodeDataOffsetOffset:])
	length := binary.LittleEndian.Uint32(entry[nodeDataLengthOffset:])
	return g.buf[offset : offset+length : offset+length]
}

// Edges returns neighbors of a node reached through the slot
func (g *Graph) Edges(id uint32, slot int) Edges {
	if slot < 0 || slot >= g.edgeTypeCount {
		panic(fmt.Sprintf("graph: edge type %d out of range [0, %d)", slot, g.edgeTypeCount))
	}
	slotEntry := g.entry(id)[nodeSlotsOffset+slot*slotLength:]
	count := binary.LittleEndian.Uint32(slotEntry[slotCountOffset:])
	offset := binary.LittleEndian.Uint32(slotEntry[slotOffsetOffset:])
	end := offset + count*edgeIDLength
	return Edges{data: g.buf[offset:end:end]}
}

// RootPayload returns the graph-level payload without copying
func (g *Graph) RootPayload() []byte {
	offset := binary.LittleEndian.Uint32(g.buf[rootPayloadOffsetOffset:])
	length := binary.LittleEndian.Uint32(g.buf[rootPayloadLengthOffset:])
	return g.buf[offset : offset+length : offset+length]
}

func (g *Graph) entry(id uint32) []byte {
	if int(id) >= g.nodeCount {
		panic(fmt.Sprintf("graph: node %d out of range [0, %d)", id, g.nodeCount))
	}
	start := HeaderLength + int(id)*g.entrySize
	return g.buf[start : start+g.entrySize]
}

// Wrap validates an encoded graph and returns a read view over it. The bytes
// are not copied; callers must not modify them afterwards.
func Wrap(buf []byte) (*Graph, error) {
	if len(buf) < HeaderLength {
		return nil, fmt.Errorf("%w: length %d shorter than header", ErrCorrupt, len(buf))
	}
	le := binary.LittleEndian
	if magic := le.Uint32(buf[magicOffset:]); magic != Magic {
		return nil, fmt.Errorf("%w: bad magic %#x", ErrCorrupt, magic)
	}
	if version := le.Uint16(buf[versionOffset:]); version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrCorrupt, version)
	}
	g := &Graph{
		buf:           buf,
		nodeCount:     int(le.Uint32(buf[nodeCountOffset:])),
		edgeTypeCount: int(le.Uint16(buf[edgeTypeCountOffset:])),
	}
	if g.edgeTypeCount == 0 {
		return nil, fmt.Errorf("%w: zero edge types", ErrCorrupt)
	}
	g.entrySize = entryLength(g.edgeTypeCount)
	size := uint64(len(buf))
	edgeArrayOffset := uint64(le.Uint32(buf[edgeArrayOffsetOffset:]))
	if tableEnd := uint64(HeaderLength) + uint64(g.nodeCount)*uint64(g.entrySize); tableEnd != edgeArrayOffset || tableEnd > size {
		return nil, fmt.Errorf("%w: node table end %d, edge array offset %d, length %d", ErrCorrupt, tableEnd, edgeArrayOffset, size)
	}
	if !inRange(le.Uint32(buf[rootPayloadOffsetOffset:]), le.Uint32(buf[rootPayloadLengthOffset:]), size) {
		return nil, fmt.Errorf("%w: root payload out of range", ErrCorrupt)
	}
	for id := 0; id < g.nodeCount; id++ {
		if err := g.validateNode(uint32(id), edgeArrayOffset, size); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Graph) validateNode(id uint32, edgeArrayOffset, size uint64) error {
	le := binary.LittleEndian
	entry := g.entry(id)
	if !inRange(le.Uint32(entry[nodeDataOffsetOffset:]), le.Uint32(entry[nodeDataLengthOffset:]), size) {
		return fmt.Errorf("%w: node %d data out of range", ErrCorrupt, id)
	}
	for slot := 0; slot < g.edgeTypeCount; slot++ {
		slotEntry := entry[nodeSlotsOffset+slot*slotLength:]
		count := uint64(le.Uint32(slotEntry[slotCountOffset:]))
		offset := uint64(le.Uint32(slotEntry[slotOffsetOffset:]))
		if offset < edgeArrayOffset || offset+count*edgeIDLength > size {
			return fmt.Errorf("%w: node %d slot %d edges out of range", ErrCorrupt, id, slot)
		}
		edges := g.Edges(id, slot)
		for i := 0; i < edges.Len(); i++ {
			if neighbor := edges.At(i); int(neighbor) >= g.nodeCount {
				return fmt.Errorf("%w: node %d slot %d references unknown node %d", ErrCorrupt, id, slot, neighbor)
			}
		}
	}
	return nil
}

func inRange(offset, length uint32, size uint64) bool {
	return uint64(offset)+uint64(length) <= size
}
