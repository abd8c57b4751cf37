package graph

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encode serializes the staged graph into one contiguous buffer
func Encode(b *Builder) ([]byte, error) {
	if !b.hasRoot {
		return nil, ErrRootPayloadMissing
	}
	nodeCount := len(b.nodes)
	tableOffset := HeaderLength
	entrySize := entryLength(b.edgeTypeCount)
	edgeArrayOffset := tableOffset + nodeCount*entrySize

	edgeCount, dataLength := 0, 0
	for _, n := range b.nodes {
		for _, edges := range n.edges {
			edgeCount += len(edges)
		}
		dataLength += len(n.data)
	}
	dataOffset := edgeArrayOffset + edgeCount*edgeIDLength
	rootOffset := dataOffset + dataLength
	total := rootOffset + len(b.rootPayload)
	if uint64(total) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, total)
	}

	buf := make([]byte, total)
	le := binary.LittleEndian
	le.PutUint32(buf[magicOffset:], Magic)
	le.PutUint16(buf[versionOffset:], FormatVersion)
	le.PutUint16(buf[edgeTypeCountOffset:], uint16(b.edgeTypeCount))
	le.PutUint32(buf[nodeCountOffset:], uint32(nodeCount))
	le.PutUint32(buf[rootPayloadOffsetOffset:], uint32(rootOffset))
	le.PutUint32(buf[rootPayloadLengthOffset:], uint32(len(b.rootPayload)))
	le.PutUint32(buf[edgeArrayOffsetOffset:], uint32(edgeArrayOffset))

	edgeCursor, dataCursor := edgeArrayOffset, dataOffset
	for i, n := range b.nodes {
		entry := buf[tableOffset+i*entrySize : tableOffset+(i+1)*entrySize]
		le.PutUint32(entry[nodeDataOffsetOffset:], uint32(dataCursor))
		le.PutUint32(entry[nodeDataLengthOffset:], uint32(len(n.data)))
		dataCursor += copy(buf[dataCursor:], n.data)

		for slot, edges := range n.edges {
			slotEntry := entry[nodeSlotsOffset+slot*slotLength:]
			le.PutUint32(slotEntry[slotCountOffset:], uint32(len(edges)))
			le.PutUint32(slotEntry[slotOffsetOffset:], uint32(edgeCursor))
			for _, neighbor := range edges {
				le.PutUint32(buf[edgeCursor:], neighbor)
				edgeCursor += edgeIDLength
			}
		}
	}
	copy(buf[rootOffset:], b.rootPayload)
	return buf, nil
}
