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

package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/yopem/dns-lookup/dnsmsg"
	"github.com/yopem/dns-lookup/transport"
)

// DefaultTimeout is the per-attempt timeout applied when [Config.Timeout]
// is zero.
const DefaultTimeout = 5 * time.Second

// DefaultServers returns the upstream servers used when [Config.Servers]
// is empty: Google public DNS, Cloudflare, and Google's secondary.
func DefaultServers() []string {
	return []string{"8.8.8.8:53", "1.1.1.1:53", "8.8.4.4:53"}
}

// Errors reported while exchanging a query with one server. They are
// handled internally by the server fallback and surface only wrapped in
// per-attempt diagnostics.
var (
	ErrDial    = errors.New("dial failed")
	ErrSend    = errors.New("send failed")
	ErrReceive = errors.New("receive failed")
)

// Config configures a [Resolver]. The zero value is usable and queries
// well-known public resolvers over plain UDP.
type Config struct {
	// Servers is the ordered fallback list of upstream DNS servers, as
	// host or host:port. Port 53 is assumed when absent.
	Servers []string
	// Timeout bounds each attempt against a single server.
	Timeout time.Duration
	// Dialer creates the datagram connection for each attempt.
	Dialer transport.PacketDialer
}

// Resolver resolves DNS queries against an ordered list of upstream
// servers. It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	servers []string
	timeout time.Duration
	dialer  transport.PacketDialer
}

// New creates a [Resolver] from cfg, applying defaults for unset fields.
// The server list is copied and fixed for the resolver's lifetime.
func New(cfg Config) *Resolver {
	r := &Resolver{
		timeout: cfg.Timeout,
		dialer:  cfg.Dialer,
	}
	if r.timeout <= 0 {
		r.timeout = DefaultTimeout
	}
	if r.dialer == nil {
		r.dialer = &transport.UDPDialer{}
	}
	servers := cfg.Servers
	if len(servers) == 0 {
		servers = DefaultServers()
	}
	r.servers = make([]string, len(servers))
	for i, server := range servers {
		r.servers[i] = ensurePort(server, "53")
	}
	return r
}

// Resolve queries the servers in order for one question and returns the
// outcome as a [LookupResult]. A non-nil error is returned only for
// invalid input ([dnsmsg.ErrInvalidName], [dnsmsg.ErrUnsupportedType]),
// before any packet is sent.
func (r *Resolver) Resolve(ctx context.Context, name string, qtype dnsmsg.Type) (LookupResult, error) {
	if _, err := dnsmsg.AppendQuery(nil, 0, name, qtype); err != nil {
		return LookupResult{}, err
	}

	var sawServerFailure, sawMalformed, sawOther bool
	for _, server := range r.servers {
		if ctx.Err() != nil {
			sawOther = true
			break
		}
		msg, err := r.exchange(ctx, server, name, qtype)
		if err != nil {
			// A reply that fails to parse counts the same as no reply:
			// fall through to the next server.
			if errors.Is(err, dnsmsg.ErrMalformedMessage) {
				sawMalformed = true
			} else {
				sawOther = true
			}
			continue
		}
		switch msg.RCode {
		case dnsmsg.RCodeNameError:
			// Authoritative negative answer; other servers would only
			// repeat it.
			return LookupResult{Status: StatusNameError}, nil
		case dnsmsg.RCodeSuccess:
			answers := answersFromMessage(msg, qtype)
			if len(answers) == 0 {
				return LookupResult{Status: StatusNoData}, nil
			}
			return LookupResult{Status: StatusSuccess, Answers: answers}, nil
		default:
			sawServerFailure = true
		}
	}

	status := StatusTimeout
	switch {
	case sawServerFailure:
		status = StatusServerFailure
	case sawMalformed && !sawOther:
		status = StatusMalformed
	}
	return LookupResult{Status: status}, nil
}

// maxResponseSize is the receive buffer for one reply datagram.
const maxResponseSize = 4096

// exchange performs a single query/response transaction with one server:
// fresh transaction ID, new connection, send, then read datagrams until
// one correlates or the attempt deadline passes. Stray datagrams with the
// wrong ID or question are skipped within the remaining budget rather than
// treated as errors.
func (r *Resolver) exchange(ctx context.Context, server, name string, qtype dnsmsg.Type) (*dnsmsg.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	id := dnsmsg.NewID()
	query, err := dnsmsg.AppendQuery(make([]byte, 0, 512), id, name, qtype)
	if err != nil {
		return nil, err
	}

	conn, err := r.dialer.DialPacket(ctx, server)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDial, err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if _, err := conn.Write(query); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSend, err)
	}

	buf := make([]byte, maxResponseSize)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReceive, err)
		}
		msg, err := dnsmsg.Unpack(buf[:n])
		if err != nil {
			return nil, err
		}
		if msg.ID != id || !msg.Response {
			continue
		}
		// https://datatracker.ietf.org/doc/html/rfc5452#section-4.2
		if len(msg.Questions) > 0 {
			q := msg.Questions[0]
			if q.Type != qtype || !dnsmsg.EqualNames(q.Name, name) {
				continue
			}
		}
		return msg, nil
	}
}

// ensurePort returns a host:port address, adding the default port when
// address has none.
func ensurePort(address, defaultPort string) string {
	if host, port, err := net.SplitHostPort(address); err == nil {
		if port == "" {
			return net.JoinHostPort(host, defaultPort)
		}
		return address
	}
	// No port. JoinHostPort adds brackets back for IPv6 literals.
	host := strings.TrimSuffix(strings.TrimPrefix(address, "["), "]")
	return net.JoinHostPort(host, defaultPort)
}
