// File: transport/unixsock/acceptor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// One-shot accept task. Each run blocks until a single client connects,
// promotes it into the active descriptor slot, and terminates; the close
// sequence submits a fresh run for the next connection cycle.

//go:build linux

package unixsock

import (
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// spawnAcceptor submits one accept cycle to the worker pool.
//
// The pool is non-blocking with a single worker, and the close sequence
// can run before the previous cycle's worker is handed back (a send
// observing the freshly promoted descriptor may detect an immediate
// disconnect). The accept cycle must run regardless, or the port never
// serves another client, so an overloaded pool falls back to a direct
// goroutine.
func (p *Port) spawnAcceptor() {
	if err := p.accepters.Submit(p.acceptOne); err != nil {
		if p.closed.Load() {
			return
		}
		p.log.Debug("acceptor worker not yet returned, spawning directly",
			zap.String("port", p.name), zap.Error(err))
		go p.acceptOne()
	}
}

// acceptOne blocks until a client connects, then promotes it.
//
// When a retiring descriptor exists, the accepted socket is installed at
// the previous active descriptor number with dup3, so a send racing the
// promotion sees an atomic replacement and never a reused number. dup3
// also closes the retiring socket, the only place that ever closes it.
func (p *Port) acceptOne() {
	var fd int
	for {
		nfd, _, err := unix.Accept4(int(p.listenFD.Load()),
			unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
		if err == nil {
			fd = nfd
			break
		}
		if err == unix.EINTR || err == unix.ECONNABORTED {
			continue
		}
		if p.closed.Load() || err == unix.EBADF || err == unix.EINVAL {
			// Listener torn down; this cycle ends without a promotion.
			return
		}
		p.log.Error("accept4 failed", zap.String("port", p.name), zap.Error(err))
	}

	if p.closed.Load() {
		_ = unix.Close(fd)
		return
	}

	// Do not skip the next receive attempt against the fresh client.
	p.recvSkipCnt.Store(0)

	if old := p.oldClientFD.Load(); old != notConnectedFD {
		if err := unix.Dup3(fd, int(old), 0); err != nil {
			p.log.Error("dup3 failed", zap.String("port", p.name), zap.Error(err))
			p.clientFD.Store(int32(fd))
		} else {
			// The accepted descriptor number is no longer needed.
			_ = unix.Close(fd)
			p.clientFD.Store(old)
		}
	} else {
		p.clientFD.Store(int32(fd))
	}

	p.stats.Accepts.Inc()
	p.log.Debug("client connected", zap.String("port", p.name))
}
