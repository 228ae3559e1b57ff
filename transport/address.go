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
	"fmt"
	"net"
	"net/netip"
	"strconv"
)

type domainAddr struct {
	network string
	address string
}

var _ net.Addr = (*domainAddr)(nil)

func (a *domainAddr) Network() string { return a.network }
func (a *domainAddr) String() string  { return a.address }

// MakeNetAddr returns a [net.Addr] for the given network ("tcp" or "udp")
// and host:port address. IP hosts produce a [net.TCPAddr] or [net.UDPAddr];
// domain hosts produce an opaque address, with no name resolution
// performed.
func MakeNetAddr(network, address string) (net.Addr, error) {
	host, portText, err := net.SplitHostPort(address)
	if err != nil {
		return nil, err
	}
	port, err := strconv.ParseUint(portText, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", portText, err)
	}
	ip, err := netip.ParseAddr(host)
	if err != nil {
		// Not an IP; must be a domain name. Keep it unresolved.
		return &domainAddr{network: network, address: address}, nil
	}
	switch network {
	case "tcp":
		return &net.TCPAddr{IP: ip.AsSlice(), Port: int(port), Zone: ip.Zone()}, nil
	case "udp":
		return &net.UDPAddr{IP: ip.AsSlice(), Port: int(port), Zone: ip.Zone()}, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
