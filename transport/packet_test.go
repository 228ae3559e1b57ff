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

package transport

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// echoUDPServer answers every datagram with its own payload.
func echoUDPServer(t *testing.T) net.Addr {
	t.Helper()
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { pc.Close() })
	go func() {
		buf := make([]byte, 1024)
		for {
			n, addr, err := pc.ReadFrom(buf)
			if err != nil {
				return
			}
			pc.WriteTo(buf[:n], addr)
		}
	}()
	return pc.LocalAddr()
}

func TestUDPDialerExchange(t *testing.T) {
	serverAddr := echoUDPServer(t)
	dialer := &UDPDialer{}
	conn, err := dialer.DialPacket(context.Background(), serverAddr.String())
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))

	_, err = conn.Write([]byte("ping"))
	require.NoError(t, err)
	buf := make([]byte, 16)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "ping", string(buf[:n]))
}

func TestPacketListenerDialerExchange(t *testing.T) {
	serverAddr := echoUDPServer(t)
	dialer := PacketListenerDialer{Listener: UDPPacketListener{Address: "127.0.0.1:0"}}
	conn, err := dialer.DialPacket(context.Background(), serverAddr.String())
	require.NoError(t, err)
	defer conn.Close()
	require.Equal(t, serverAddr.String(), conn.RemoteAddr().String())
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))

	_, err = conn.Write([]byte("ping"))
	require.NoError(t, err)
	buf := make([]byte, 16)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "ping", string(buf[:n]))
}

func TestPacketListenerDialerFiltersOtherPeers(t *testing.T) {
	serverAddr := echoUDPServer(t)
	dialer := PacketListenerDialer{Listener: UDPPacketListener{Address: "127.0.0.1:0"}}
	conn, err := dialer.DialPacket(context.Background(), serverAddr.String())
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))

	// A stranger sends to the bound connection's local address before the
	// real peer answers; the read must skip the stranger's datagram.
	stranger, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer stranger.Close()
	localAddr := conn.(*boundPacketConn).LocalAddr()
	_, err = stranger.WriteTo([]byte("noise"), localAddr)
	require.NoError(t, err)

	_, err = conn.Write([]byte("ping"))
	require.NoError(t, err)
	buf := make([]byte, 16)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "ping", string(buf[:n]))
}

func TestFuncPacketDialer(t *testing.T) {
	front, back := net.Pipe()
	defer front.Close()
	defer back.Close()
	var gotAddr string
	dialer := FuncPacketDialer(func(ctx context.Context, raddr string) (net.Conn, error) {
		gotAddr = raddr
		return front, nil
	})
	conn, err := dialer.DialPacket(context.Background(), "8.8.8.8:53")
	require.NoError(t, err)
	require.Same(t, front, conn)
	require.Equal(t, "8.8.8.8:53", gotAddr)
}
