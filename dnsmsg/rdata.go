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

package dnsmsg

import (
	"encoding/binary"
	"fmt"
	"net/netip"
	"strings"
)

// RData is the decoded, type-specific payload of a resource record.
type RData interface {
	rdata()
}

// ARecord is an IPv4 host address.
type ARecord struct {
	Addr netip.Addr
}

// AAAARecord is an IPv6 host address.
type AAAARecord struct {
	Addr netip.Addr
}

// MXRecord is a mail exchange: a preference value and the exchange server
// name.
type MXRecord struct {
	Preference uint16
	Exchange   string
}

// NameRecord is an rdata consisting of a single domain name. It is used
// for NS, CNAME and PTR records.
type NameRecord struct {
	Name string
}

// TXTRecord is the concatenation of a TXT record's character strings.
type TXTRecord struct {
	Text string
}

// SOARecord describes a zone's start of authority.
type SOARecord struct {
	PrimaryNS string
	Mailbox   string
	Serial    uint32
	Refresh   uint32
	Retry     uint32
	Expire    uint32
	Minimum   uint32
}

func (*ARecord) rdata()    {}
func (*AAAARecord) rdata() {}
func (*MXRecord) rdata()   {}
func (*NameRecord) rdata() {}
func (*TXTRecord) rdata()  {}
func (*SOARecord) rdata()  {}

// decodeRData decodes the rdata of a supported record type. Names inside
// rdata may be compressed, so decoding needs the whole message buffer, not
// just the rdata slice. The decoded value must consume exactly length
// bytes; any disagreement with the declared rdlength is malformed.
// Unsupported types decode to nil without error and are carried as raw
// bytes only.
func decodeRData(buf []byte, off, length int, typ Type) (RData, error) {
	end := off + length
	switch typ {
	case TypeA:
		if length != 4 {
			return nil, fmt.Errorf("%w: %d bytes for an A record", ErrMalformedMessage, length)
		}
		return &ARecord{Addr: netip.AddrFrom4([4]byte(buf[off:end]))}, nil
	case TypeAAAA:
		if length != 16 {
			return nil, fmt.Errorf("%w: %d bytes for an AAAA record", ErrMalformedMessage, length)
		}
		return &AAAARecord{Addr: netip.AddrFrom16([16]byte(buf[off:end]))}, nil
	case TypeMX:
		if length < 3 {
			return nil, fmt.Errorf("%w: %d bytes for an MX record", ErrMalformedMessage, length)
		}
		preference := binary.BigEndian.Uint16(buf[off:])
		exchange, next, err := readName(buf, off+2)
		if err != nil {
			return nil, err
		}
		if next != end {
			return nil, rdLengthMismatch(next-off, length)
		}
		return &MXRecord{Preference: preference, Exchange: exchange}, nil
	case TypeNS, TypeCNAME, TypePTR:
		name, next, err := readName(buf, off)
		if err != nil {
			return nil, err
		}
		if next != end {
			return nil, rdLengthMismatch(next-off, length)
		}
		return &NameRecord{Name: name}, nil
	case TypeTXT:
		var sb strings.Builder
		pos := off
		for pos < end {
			strLen := int(buf[pos])
			if pos+1+strLen > end {
				return nil, fmt.Errorf("%w: character string runs past rdata end", ErrMalformedMessage)
			}
			sb.Write(buf[pos+1 : pos+1+strLen])
			pos += 1 + strLen
		}
		return &TXTRecord{Text: sb.String()}, nil
	case TypeSOA:
		primary, pos, err := readName(buf, off)
		if err != nil {
			return nil, err
		}
		mailbox, pos, err := readName(buf, pos)
		if err != nil {
			return nil, err
		}
		if pos+20 != end {
			return nil, rdLengthMismatch(pos+20-off, length)
		}
		return &SOARecord{
			PrimaryNS: primary,
			Mailbox:   mailbox,
			Serial:    binary.BigEndian.Uint32(buf[pos:]),
			Refresh:   binary.BigEndian.Uint32(buf[pos+4:]),
			Retry:     binary.BigEndian.Uint32(buf[pos+8:]),
			Expire:    binary.BigEndian.Uint32(buf[pos+12:]),
			Minimum:   binary.BigEndian.Uint32(buf[pos+16:]),
		}, nil
	}
	return nil, nil
}

func rdLengthMismatch(consumed, declared int) error {
	return fmt.Errorf("%w: %d bytes consumed, rdlength declares %d", ErrMalformedMessage, consumed, declared)
}
