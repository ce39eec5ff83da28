// File: transport/unixsock/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package unixsock implements the "unix_port" driver: a bidirectional
// batch packet port backed by an AF_UNIX SOCK_SEQPACKET socket.
//
// The port serves one external client at a time. Each pipeline packet
// travels as exactly one datagram; message boundaries are preserved by
// the socket type. Receive and transmit never block the pipeline
// scheduling context; the only blocking call is the background accept,
// which runs off that path.
//
// Polling an idle socket is relatively expensive, so after an empty
// receive the port skips the next recvSkipTicks polls.
package unixsock
