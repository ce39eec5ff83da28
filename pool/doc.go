// File: pool/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package pool provides the fixed-capacity packet buffer pool shared by
// port drivers and the pipeline.
//
// A Packet is a reusable transport buffer with a fixed payload capacity
// and an optional chain of continuation segments, sent and received as a
// single datagram. Pool exhaustion is a backpressure signal: Alloc
// returns nil and the caller truncates its batch.
package pool
