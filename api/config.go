// File: api/config.go
// Author: momentics <momentics@gmail.com>
//
// Port configuration passed to Port.Init. Drivers validate the parts
// they understand and reject the rest before touching any OS resource.

package api

import (
	"github.com/momentics/hioload-port/pool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// PortConfig carries instance-level settings common to all port drivers.
type PortConfig struct {
	// Name identifies the port instance. Drivers derive defaults from it
	// (the unixsock driver uses it for the default socket path).
	Name string

	// Path is a driver-specific address. For unixsock it is the socket
	// filesystem path; a leading '@' marks an abstract address. Empty
	// means "derive a default from Name".
	Path string

	// NumQueues holds the requested queue count per direction,
	// indexed by DirInc/DirOut.
	NumQueues [NumDirs]int

	// Pool supplies packet buffers for the receive path and reclaims
	// transmitted packets. Required.
	Pool *pool.PacketPool

	// Logger receives lifecycle and accept-path events. Nil means no
	// logging.
	Logger *zap.Logger

	// Metrics optionally registers the port's counters. Nil disables
	// registration; counters are still maintained.
	Metrics prometheus.Registerer
}

// NormalizedLogger returns cfg.Logger or a nop logger.
func (cfg *PortConfig) NormalizedLogger() *zap.Logger {
	if cfg.Logger == nil {
		return zap.NewNop()
	}
	return cfg.Logger
}
