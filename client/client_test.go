// File: client/client_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build linux

package client_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-port/client"
)

// echoListener is a minimal seqpacket acceptor echoing every datagram.
func echoListener(t *testing.T, addr string, delay time.Duration) {
	t.Helper()
	go func() {
		time.Sleep(delay)
		lfd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_SEQPACKET|unix.SOCK_CLOEXEC, 0)
		if err != nil {
			return
		}
		defer unix.Close(lfd)
		if err := unix.Bind(lfd, &unix.SockaddrUnix{Name: addr}); err != nil {
			return
		}
		if err := unix.Listen(lfd, 1); err != nil {
			return
		}
		cfd, _, err := unix.Accept4(lfd, unix.SOCK_CLOEXEC)
		if err != nil {
			return
		}
		defer unix.Close(cfd)
		buf := make([]byte, 4096)
		for {
			n, err := unix.Read(cfd, buf)
			if err != nil || n == 0 {
				return
			}
			if _, err := unix.Write(cfd, buf[:n]); err != nil {
				return
			}
		}
	}()
}

func testAddr(tag string) string {
	return fmt.Sprintf("@hioload-client-test-%d-%s", os.Getpid(), tag)
}

func TestDialTimesOutWithoutListener(t *testing.T) {
	start := time.Now()
	_, err := client.Dial(testAddr("absent"), client.WithDialTimeout(100*time.Millisecond))
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestDialRetriesUntilListenerAppears(t *testing.T) {
	addr := testAddr("late")
	// The listener shows up only after Dial has started retrying.
	echoListener(t, addr, 150*time.Millisecond)

	conn, err := client.Dial(addr, client.WithDialTimeout(5*time.Second))
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.Send([]byte("hi")))
	buf := make([]byte, 64)
	n, err := conn.Recv(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), buf[:n])
}

func TestRecvPreservesMessageBoundaries(t *testing.T) {
	addr := testAddr("bounds")
	echoListener(t, addr, 0)

	conn, err := client.Dial(addr, client.WithDialTimeout(5*time.Second))
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.Send([]byte("first")))
	require.NoError(t, conn.Send([]byte("second")))

	buf := make([]byte, 64)
	n, err := conn.Recv(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), buf[:n])

	n, err = conn.Recv(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), buf[:n])
}
