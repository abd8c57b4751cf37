// Package descriptor encodes and decodes the variable-length binary records
// stored as node data of a compiled process graph.
//
// A flow element record has a fixed 6 byte block followed by variable data,
// all numbers little-endian:
//
//	0  u8   element type
//	1  u8   flags (bit 0: task queue id present)
//	2  u16  task queue id
//	4  u16  event behavior count n
//	6  n x {u8 event, u8 aspect}
//	.. u16 length + string id
//	.. u16 length + task type
//
// The process descriptor (graph root payload) is u64 numeric id, u32 initial
// node id, u16 length + string id.
//
// Records are read in place through the FlowElement flyweight; nothing is
// copied unless Decode or a string accessor is used.
package descriptor
