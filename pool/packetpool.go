// File: pool/packetpool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-capacity packet pool. The free list is a FIFO ring
// (github.com/eapache/queue) behind a narrow mutex; allocation counters
// are atomics so Stats never contends with the hot path.

package pool

import (
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
)

// PacketPool hands out Packets from a preallocated fixed-size set.
type PacketPool struct {
	mu   sync.Mutex
	free *queue.Queue

	capacity  int
	allocs    atomic.Uint64
	frees     atomic.Uint64
	exhausted atomic.Uint64
}

// PoolStats is a point-in-time snapshot of pool accounting.
type PoolStats struct {
	Capacity  int
	InUse     int
	Allocs    uint64
	Frees     uint64
	Exhausted uint64
}

// NewPacketPool preallocates capacity packets of PayloadCapacity bytes.
func NewPacketPool(capacity int) *PacketPool {
	pp := &PacketPool{
		free:     queue.New(),
		capacity: capacity,
	}
	for i := 0; i < capacity; i++ {
		pp.free.Add(&Packet{
			data:  make([]byte, PayloadCapacity),
			owner: pp,
		})
	}
	return pp
}

// Alloc returns a zero-length packet, or nil when the pool is exhausted.
// Exhaustion is backpressure, not an error.
func (pp *PacketPool) Alloc() *Packet {
	pp.mu.Lock()
	if pp.free.Length() == 0 {
		pp.mu.Unlock()
		pp.exhausted.Add(1)
		return nil
	}
	pkt := pp.free.Remove().(*Packet)
	pp.mu.Unlock()
	pp.allocs.Add(1)
	return pkt
}

// Free returns pkt and every segment chained to it to the pool.
func (pp *PacketPool) Free(pkt *Packet) {
	pp.mu.Lock()
	for s := pkt; s != nil; {
		next := s.next
		s.reset()
		pp.free.Add(s)
		pp.frees.Add(1)
		s = next
	}
	pp.mu.Unlock()
}

// FreeBatch returns every packet (and chain) in pkts to the pool,
// in original order.
func (pp *PacketPool) FreeBatch(pkts []*Packet) {
	for _, pkt := range pkts {
		pp.Free(pkt)
	}
}

// Stats returns a snapshot of the pool's accounting counters.
func (pp *PacketPool) Stats() PoolStats {
	pp.mu.Lock()
	freeLen := pp.free.Length()
	pp.mu.Unlock()
	return PoolStats{
		Capacity:  pp.capacity,
		InUse:     pp.capacity - freeLen,
		Allocs:    pp.allocs.Load(),
		Frees:     pp.frees.Load(),
		Exhausted: pp.exhausted.Load(),
	}
}
