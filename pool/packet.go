// File: pool/packet.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Packet: a pooled transport buffer with a recorded payload length and a
// single-linked segment chain. One packet (with all its segments) maps to
// exactly one datagram on the wire.

package pool

// PayloadCapacity is the fixed per-segment payload size in bytes.
// Datagrams larger than this are truncated by the OS on receive.
const PayloadCapacity = 2048

// Packet is a reusable transport buffer owned by a PacketPool.
// It is not safe for concurrent use.
type Packet struct {
	data   []byte
	length int
	next   *Packet
	owner  *PacketPool
}

// Buffer returns the full-capacity payload slice for I/O into the packet.
func (p *Packet) Buffer() []byte { return p.data }

// Data returns the valid payload bytes of this segment.
func (p *Packet) Data() []byte { return p.data[:p.length] }

// Len returns the valid payload length of this segment.
func (p *Packet) Len() int { return p.length }

// Append extends the valid payload by n bytes after data was written
// into Buffer.
func (p *Packet) Append(n int) { p.length += n }

// SetData copies b into the payload, truncating at PayloadCapacity, and
// records the resulting length.
func (p *Packet) SetData(b []byte) {
	p.length = copy(p.data, b)
}

// Next returns the continuation segment, or nil.
func (p *Packet) Next() *Packet { return p.next }

// Chain links seg as the continuation of p. The chained segment keeps
// its own length; freeing p frees the whole chain.
func (p *Packet) Chain(seg *Packet) { p.next = seg }

// Segments returns the number of segments in the chain rooted at p.
func (p *Packet) Segments() int {
	n := 0
	for s := p; s != nil; s = s.next {
		n++
	}
	return n
}

// reset prepares the packet for reuse. The chain link is severed; chained
// segments are returned to the pool separately by Free.
func (p *Packet) reset() {
	p.length = 0
	p.next = nil
}
