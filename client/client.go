// File: client/client.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Peer-process side of a unixsock port: a blocking seqpacket connection
// exchanging one datagram per message. Dialing retries with exponential
// backoff so a peer may start before the port is listening.

//go:build linux

package client

import (
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sys/unix"
)

// DefaultDialTimeout bounds the total time Dial keeps retrying.
const DefaultDialTimeout = 10 * time.Second

// Conn is a connected seqpacket endpoint. Unlike the port side, all
// operations block; the peer process is not under a scheduling budget.
type Conn struct {
	fd int
}

// DialOption adjusts dialing behavior.
type DialOption func(*dialConfig)

type dialConfig struct {
	timeout time.Duration
}

// WithDialTimeout overrides the total retry budget for Dial.
func WithDialTimeout(d time.Duration) DialOption {
	return func(c *dialConfig) { c.timeout = d }
}

// Dial connects to the port socket at addr, retrying with exponential
// backoff while the address does not exist or refuses connections. A
// leading '@' marks an abstract address.
func Dial(addr string, opts ...DialOption) (*Conn, error) {
	cfg := dialConfig{timeout: DefaultDialTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	var conn *Conn
	op := func() error {
		fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_SEQPACKET|unix.SOCK_CLOEXEC, 0)
		if err != nil {
			return backoff.Permanent(err)
		}
		if err := unix.Connect(fd, &unix.SockaddrUnix{Name: addr}); err != nil {
			_ = unix.Close(fd)
			// ENOENT / ECONNREFUSED: the port is not up yet.
			return err
		}
		conn = &Conn{fd: fd}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 5 * time.Millisecond
	bo.MaxElapsedTime = cfg.timeout
	if err := backoff.Retry(op, bo); err != nil {
		return nil, err
	}
	return conn, nil
}

// Send transmits b as a single datagram.
func (c *Conn) Send(b []byte) error {
	for {
		_, err := unix.Write(c.fd, b)
		if err == unix.EINTR {
			continue
		}
		return err
	}
}

// Recv blocks for one datagram and copies it into buf, returning its
// length. Datagrams longer than buf are truncated by the OS. A closed
// peer yields io.EOF.
func (c *Conn) Recv(buf []byte) (int, error) {
	for {
		n, err := unix.Read(c.fd, buf)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, io.EOF
		}
		return n, nil
	}
}

// Close shuts the connection down.
func (c *Conn) Close() error {
	return unix.Close(c.fd)
}
