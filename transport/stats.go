// File: transport/stats.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-port packet counters exported as Prometheus metrics. Counters are
// plain atomic adds and are always maintained; registration against a
// Registerer is optional per port instance.

package transport

import "github.com/prometheus/client_golang/prometheus"

// PortStats aggregates the data-path counters of one port instance.
type PortStats struct {
	RxPackets prometheus.Counter
	RxBytes   prometheus.Counter
	TxPackets prometheus.Counter
	TxBytes   prometheus.Counter
	Accepts   prometheus.Counter
}

// NewPortStats creates the counter set for one port, labeled by driver
// and instance name.
func NewPortStats(driver, port string) *PortStats {
	labels := prometheus.Labels{"driver": driver, "port": port}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "hioload",
			Subsystem:   "port",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}
	return &PortStats{
		RxPackets: counter("rx_packets_total", "Packets received from the peer."),
		RxBytes:   counter("rx_bytes_total", "Payload bytes received from the peer."),
		TxPackets: counter("tx_packets_total", "Packets sent to the peer."),
		TxBytes:   counter("tx_bytes_total", "Payload bytes sent to the peer."),
		Accepts:   counter("accepted_connections_total", "Peer connections promoted to active."),
	}
}

// Register attaches the counters to reg. A nil reg is a no-op, keeping
// metrics optional per instance.
func (s *PortStats) Register(reg prometheus.Registerer) error {
	if reg == nil {
		return nil
	}
	for _, c := range s.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Unregister detaches the counters from reg. A nil reg is a no-op.
func (s *PortStats) Unregister(reg prometheus.Registerer) {
	if reg == nil {
		return
	}
	for _, c := range s.collectors() {
		reg.Unregister(c)
	}
}

func (s *PortStats) collectors() []prometheus.Collector {
	return []prometheus.Collector{s.RxPackets, s.RxBytes, s.TxPackets, s.TxBytes, s.Accepts}
}
