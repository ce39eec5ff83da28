// File: transport/unixsock/io.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The non-blocking data path: adaptive-throttled batch receive and
// scatter/gather batch transmit.

//go:build linux

package unixsock

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-port/api"
	"github.com/momentics/hioload-port/pool"
)

// txSegHint sizes the gather list for the common short chain.
const txSegHint = 8

// RecvPackets pulls up to len(pkts) datagrams into pool packets.
//
// An empty batch re-arms the poll throttle: the next recvSkipTicks calls
// return immediately without touching the socket. Pool exhaustion ends
// the batch silently. A zero-length read or a hard error starts the
// close/re-accept sequence.
func (p *Port) RecvPackets(_ api.QueueID, pkts []*pool.Packet) int {
	fd := p.clientFD.Load()
	if fd == notConnectedFD {
		return 0
	}

	if skip := p.recvSkipCnt.Load(); skip > 0 {
		p.recvSkipCnt.Store(skip - 1)
		return 0
	}

	received := 0
	rxBytes := 0
	for received < len(pkts) {
		pkt := p.pool.Alloc()
		if pkt == nil {
			break
		}

		// Datagrams larger than the payload capacity are truncated.
		n, err := unix.Read(int(fd), pkt.Buffer())
		if n > 0 {
			pkt.Append(n)
			pkts[received] = pkt
			received++
			rxBytes += n
			continue
		}

		p.pool.Free(pkt)

		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			break
		}
		if err == unix.EINTR {
			continue
		}

		// Orderly close (zero-length read) or a hard error.
		p.closeConnection()
		break
	}

	if received == 0 {
		p.recvSkipCnt.Store(recvSkipTicks)
	} else {
		p.stats.RxPackets.Add(float64(received))
		p.stats.RxBytes.Add(float64(rxBytes))
	}
	return received
}

// SendPackets transmits each packet chain as one datagram and stops at
// the first failure, including "not connected", where the sentinel
// descriptor makes sendmsg fail immediately. Exactly the sent prefix is
// freed; no error is surfaced.
func (p *Port) SendPackets(_ api.QueueID, pkts []*pool.Packet) int {
	fd := int(p.clientFD.Load())

	sent := 0
	txBytes := 0
	bufs := make([][]byte, 0, txSegHint)
	for _, pkt := range pkts {
		bufs = bufs[:0]
		for s := pkt; s != nil; s = s.Next() {
			bufs = append(bufs, s.Data())
		}

		n, err := unix.SendmsgBuffers(fd, bufs, nil, nil, unix.MSG_NOSIGNAL)
		if err != nil {
			break
		}
		sent++
		txBytes += n
	}

	if sent > 0 {
		p.pool.FreeBatch(pkts[:sent])
		p.stats.TxPackets.Add(float64(sent))
		p.stats.TxBytes.Add(float64(txBytes))
	}
	return sent
}
