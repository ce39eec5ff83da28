// File: transport/unixsock/port.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Port lifecycle: listener setup and teardown, and the retire-then-replace
// close sequence that lets a concurrent send race safely against a
// reconnecting client.

//go:build linux

package unixsock

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-port/api"
	"github.com/momentics/hioload-port/pool"
	"github.com/momentics/hioload-port/transport"
)

// DriverName is the registry name of this driver.
const DriverName = "unix_port"

const (
	// notConnectedFD marks an empty descriptor slot.
	notConnectedFD = int32(-1)

	// recvSkipTicks is the number of polls skipped after an empty batch.
	recvSkipTicks = 256

	// maxAddrLen caps the socket address at 107 bytes including the
	// terminator, so the longest usable address is 106 characters.
	maxAddrLen = 107
)

// Port is a batch packet port over a local seqpacket socket.
//
// Shared state between the pipeline context and the acceptor is limited
// to the descriptor slots and the receive throttle, all atomics; there is
// no lock on the data path.
type Port struct {
	name string
	addr string
	pool *pool.PacketPool
	log  *zap.Logger

	stats      *transport.PortStats
	metricsReg prometheus.Registerer

	listenFD atomic.Int32
	// clientFD is the active connection, or notConnectedFD. Written by
	// the acceptor on promotion and by closeConnection on loss.
	clientFD atomic.Int32
	// oldClientFD is the retiring descriptor: closed for new use but kept
	// open because an in-flight send may still reference its number. It
	// is only ever superseded by the next dup3 or abandoned at DeInit.
	oldClientFD atomic.Int32
	recvSkipCnt atomic.Int32
	closed      atomic.Bool

	// accepters runs the one-shot accept task; a fresh task is submitted
	// on every connection loss.
	accepters *ants.Pool
}

func init() {
	transport.Register(DriverName, func() api.Port { return newPort() })
}

func newPort() *Port {
	p := &Port{log: zap.NewNop()}
	p.listenFD.Store(notConnectedFD)
	p.clientFD.Store(notConnectedFD)
	p.oldClientFD.Store(notConnectedFD)
	return p
}

// Init binds and listens on the configured address and starts the first
// acceptor. The backlog is 1: only one client is ever served.
func (p *Port) Init(cfg api.PortConfig) error {
	if cfg.NumQueues[api.DirInc] > 1 || cfg.NumQueues[api.DirOut] > 1 {
		return api.NewConfigError("cannot have more than 1 queue per RX/TX")
	}
	if cfg.Pool == nil {
		return api.NewConfigError("packet pool is required")
	}

	addr := cfg.Path
	if addr == "" {
		addr = filepath.Join(os.TempDir(), "hioload_unix_"+cfg.Name)
	}
	if len(addr) >= maxAddrLen {
		return api.NewConfigError("socket address %q exceeds %d bytes including the terminator",
			addr, maxAddrLen)
	}

	p.name = cfg.Name
	p.addr = addr
	p.pool = cfg.Pool
	p.log = cfg.NormalizedLogger()
	p.metricsReg = cfg.Metrics

	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_SEQPACKET|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return api.NewSysError("socket(AF_UNIX)", err)
	}

	// Non-abstract address: remove a stale socket file, if any.
	if addr[0] != '@' {
		_ = unix.Unlink(addr)
	}

	if err := unix.Bind(fd, &unix.SockaddrUnix{Name: addr}); err != nil {
		_ = unix.Close(fd)
		return api.NewSysError(fmt.Sprintf("bind(%s)", addr), err)
	}
	if err := unix.Listen(fd, 1); err != nil {
		_ = unix.Close(fd)
		return api.NewSysError("listen", err)
	}

	p.stats = transport.NewPortStats(DriverName, p.name)
	if err := p.stats.Register(cfg.Metrics); err != nil {
		_ = unix.Close(fd)
		return &api.Error{
			Code:    api.ErrCodeAlreadyExists,
			Message: "metrics registration failed",
			Cause:   err,
		}
	}

	workers, err := ants.NewPool(1, ants.WithNonblocking(true))
	if err != nil {
		p.stats.Unregister(cfg.Metrics)
		_ = unix.Close(fd)
		return fmt.Errorf("acceptor pool: %w", err)
	}
	p.accepters = workers
	p.listenFD.Store(int32(fd))

	p.spawnAcceptor()
	p.log.Info("unixsock port listening",
		zap.String("port", p.name), zap.String("addr", addr))
	return nil
}

// DeInit closes the listener and the active connection, if any. The
// retiring descriptor is deliberately abandoned to the OS: the port does
// not track whether a concurrent send still references it.
func (p *Port) DeInit() error {
	if p.closed.Swap(true) {
		return api.ErrPortClosed
	}

	if lfd := p.listenFD.Swap(notConnectedFD); lfd != notConnectedFD {
		_ = unix.Close(int(lfd))
	}
	if cfd := p.clientFD.Swap(notConnectedFD); cfd != notConnectedFD {
		_ = unix.Close(int(cfd))
	}

	if p.accepters != nil {
		p.accepters.Release()
	}
	if p.stats != nil {
		p.stats.Unregister(p.metricsReg)
	}
	p.log.Info("unixsock port closed", zap.String("port", p.name))
	return nil
}

// closeConnection retires the active descriptor and requests the next
// client. The underlying socket stays open: a send in progress may still
// be writing to this descriptor number, so it is closed only when the
// next promotion supersedes it via dup3.
func (p *Port) closeConnection() {
	p.oldClientFD.Store(p.clientFD.Load())
	p.clientFD.Store(notConnectedFD)
	p.spawnAcceptor()
	p.log.Debug("client disconnected", zap.String("port", p.name))
}
