// Copyright 2024 The DNS Lookup Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package transport provides the datagram connection abstractions the
// resolver sends queries through. The [PacketDialer] interface decouples
// the resolver from the operating system's UDP sockets, so callers can
// route queries through a custom network path and tests can substitute
// in-memory connections.
package transport

import (
	"context"
	"net"
)

// PacketDialer provides a way to dial a destination and establish datagram
// connections.
type PacketDialer interface {
	// DialPacket connects to `raddr`.
	// `raddr` has the form `host:port`, where `host` can be a domain name
	// or IP address.
	DialPacket(ctx context.Context, raddr string) (net.Conn, error)
}

// FuncPacketDialer is a [PacketDialer] that uses the given function to
// dial.
type FuncPacketDialer func(ctx context.Context, raddr string) (net.Conn, error)

// DialPacket implements the [PacketDialer] interface.
func (f FuncPacketDialer) DialPacket(ctx context.Context, raddr string) (net.Conn, error) {
	return f(ctx, raddr)
}

// UDPDialer is a [PacketDialer] that uses the standard [net.Dialer] to
// dial. It provides a connected socket: reads only accept datagrams from
// the dialed destination.
type UDPDialer struct {
	Dialer net.Dialer
}

var _ PacketDialer = (*UDPDialer)(nil)

// DialPacket implements [PacketDialer].DialPacket.
func (d *UDPDialer) DialPacket(ctx context.Context, raddr string) (net.Conn, error) {
	return d.Dialer.DialContext(ctx, "udp", raddr)
}
