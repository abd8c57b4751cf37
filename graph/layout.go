package graph

import "errors"

// Encoded graph layout; all numbers are little-endian and all offsets are
// absolute byte offsets into the buffer.
//
//	header      HeaderLength bytes
//	node table  nodeCount x entryLength(edgeTypeCount)
//	edge ids    u32 neighbor ids, one run per (node, slot)
//	node data   concatenated descriptors
//	root data   graph payload
const (
	// Magic identifies an encoded graph ("PGRF")
	Magic uint32 = 0x46524750
	// FormatVersion is the current layout version
	FormatVersion uint16 = 1

	magicOffset             = 0
	versionOffset           = 4
	edgeTypeCountOffset     = 6
	nodeCountOffset         = 8
	rootPayloadOffsetOffset = 12
	rootPayloadLengthOffset = 16
	edgeArrayOffsetOffset   = 20

	// HeaderLength is the fixed header size
	HeaderLength = 24

	nodeDataOffsetOffset = 0
	nodeDataLengthOffset = 4
	nodeSlotsOffset      = 8
	slotLength           = 8
	slotCountOffset      = 0
	slotOffsetOffset     = 4

	edgeIDLength = 4

	// MaxEdgeTypeCount is the largest supported number of edge-type slots
	MaxEdgeTypeCount = 1<<16 - 1
)

var (
	// ErrUnknownNode is returned when an edge references a node that was not created
	ErrUnknownNode = errors.New("graph: unknown node")
	// ErrEdgeTypeOutOfRange is returned for an edge slot outside [0, edgeTypeCount)
	ErrEdgeTypeOutOfRange = errors.New("graph: edge type out of range")
	// ErrInvalidEdgeTypeCount is returned for an edge type count outside [1, MaxEdgeTypeCount]
	ErrInvalidEdgeTypeCount = errors.New("graph: invalid edge type count")
	// ErrRootPayloadSet is returned when the root payload is set twice
	ErrRootPayloadSet = errors.New("graph: root payload already set")
	// ErrRootPayloadMissing is returned when encoding a graph without root payload
	ErrRootPayloadMissing = errors.New("graph: root payload missing")
	// ErrTooLarge is returned when the encoded graph would not be addressable with u32 offsets
	ErrTooLarge = errors.New("graph: encoded graph too large")
	// ErrCorrupt is returned when wrapping bytes that are not a valid encoded graph
	ErrCorrupt = errors.New("graph: corrupt encoding")
)

func entryLength(edgeTypeCount int) int {
	return nodeSlotsOffset + edgeTypeCount*slotLength
}
