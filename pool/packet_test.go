// File: pool/packet_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-port/pool"
)

func TestPacketSetDataTruncates(t *testing.T) {
	pp := pool.NewPacketPool(1)
	pkt := pp.Alloc()
	require.NotNil(t, pkt)
	defer pp.Free(pkt)

	big := bytes.Repeat([]byte{0xab}, pool.PayloadCapacity+512)
	pkt.SetData(big)
	assert.Equal(t, pool.PayloadCapacity, pkt.Len())
	assert.Equal(t, big[:pool.PayloadCapacity], pkt.Data())
}

func TestPacketAppend(t *testing.T) {
	pp := pool.NewPacketPool(1)
	pkt := pp.Alloc()
	require.NotNil(t, pkt)
	defer pp.Free(pkt)

	copy(pkt.Buffer(), "hello")
	pkt.Append(5)
	copy(pkt.Buffer()[5:], " world")
	pkt.Append(6)
	assert.Equal(t, []byte("hello world"), pkt.Data())
}

func TestPacketSegments(t *testing.T) {
	pp := pool.NewPacketPool(2)
	head, tail := pp.Alloc(), pp.Alloc()
	require.NotNil(t, tail)

	assert.Equal(t, 1, head.Segments())
	head.Chain(tail)
	assert.Equal(t, 2, head.Segments())
	assert.Same(t, tail, head.Next())

	pp.Free(head)
}
