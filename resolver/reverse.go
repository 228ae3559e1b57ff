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
	"net/netip"
	"strings"

	"github.com/yopem/dns-lookup/dnsmsg"
)

// ErrInvalidAddress is returned when a reverse lookup is given something
// that is not an IPv4 or IPv6 literal.
var ErrInvalidAddress = errors.New("invalid IP address")

const hexDigits = "0123456789abcdef"

// ReverseName derives the PTR query name for an IP address:
// d.c.b.a.in-addr.arpa for IPv4 a.b.c.d, and the 32 reversed nibbles under
// ip6.arpa for IPv6. IPv4-mapped IPv6 addresses use the IPv4 form.
func ReverseName(ip string) (string, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, ip)
	}
	if addr.Zone() != "" {
		return "", fmt.Errorf("%w: %q carries a zone", ErrInvalidAddress, ip)
	}
	addr = addr.Unmap()
	if addr.Is4() {
		o := addr.As4()
		return fmt.Sprintf("%d.%d.%d.%d.in-addr.arpa", o[3], o[2], o[1], o[0]), nil
	}
	raw := addr.As16()
	var sb strings.Builder
	sb.Grow(len(raw)*4 + len("ip6.arpa"))
	for i := len(raw) - 1; i >= 0; i-- {
		sb.WriteByte(hexDigits[raw[i]&0xF])
		sb.WriteByte('.')
		sb.WriteByte(hexDigits[raw[i]>>4])
		sb.WriteByte('.')
	}
	sb.WriteString("ip6.arpa")
	return sb.String(), nil
}

// ReverseLookup resolves the PTR records for an IP address through the
// normal server fallback path. It fails with [ErrInvalidAddress], before
// any network activity, if ip is not an address literal.
func (r *Resolver) ReverseLookup(ctx context.Context, ip string) (LookupResult, error) {
	name, err := ReverseName(ip)
	if err != nil {
		return LookupResult{}, err
	}
	return r.Resolve(ctx, name, dnsmsg.TypePTR)
}
