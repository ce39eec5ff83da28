// File: api/port.go
// Author: momentics <momentics@gmail.com>
//
// Defines the batch packet port abstraction: the adapter between an
// external process and the pipeline's internal packet representation.
// Ports are polled on a fixed schedule and must never block the caller.

package api

import "github.com/momentics/hioload-port/pool"

// QueueID identifies one queue of a port in a given direction.
type QueueID uint8

// Packet directions, pipeline-relative: Inc is traffic entering the
// pipeline through the port, Out is traffic leaving it.
const (
	DirInc = iota
	DirOut
	NumDirs
)

// Port is the runtime interface a packet pipeline drives.
//
// RecvPackets and SendPackets are invoked from the pipeline's scheduling
// context only and never suspend; any blocking rendezvous a driver needs
// (e.g. waiting for a peer) runs off that path.
type Port interface {
	// Init acquires the port's OS resources according to cfg.
	Init(cfg PortConfig) error

	// DeInit releases all OS resources owned by the port.
	DeInit() error

	// RecvPackets fills pkts with up to len(pkts) received packets
	// allocated from the port's pool and returns how many were stored.
	// A short or empty batch is not an error.
	RecvPackets(qid QueueID, pkts []*pool.Packet) int

	// SendPackets transmits a prefix of pkts, stopping at the first
	// failure, and returns the count actually sent. Exactly that many
	// packets are freed back to the pool; ownership of the remainder
	// stays with the caller.
	SendPackets(qid QueueID, pkts []*pool.Packet) int
}
