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
	"errors"
	"fmt"
	"math/rand"
)

// Type identifies a DNS record type.
type Type uint16

// The record types supported by this module, with their RFC 1035/3596 values.
const (
	TypeA     Type = 1
	TypeNS    Type = 2
	TypeCNAME Type = 5
	TypeSOA   Type = 6
	TypePTR   Type = 12
	TypeMX    Type = 15
	TypeTXT   Type = 16
	TypeAAAA  Type = 28
)

var typeNames = map[Type]string{
	TypeA:     "A",
	TypeNS:    "NS",
	TypeCNAME: "CNAME",
	TypeSOA:   "SOA",
	TypePTR:   "PTR",
	TypeMX:    "MX",
	TypeTXT:   "TXT",
	TypeAAAA:  "AAAA",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TYPE%d", uint16(t))
}

// Supported reports whether t is one of the record types this module can
// query for and decode.
func (t Type) Supported() bool {
	_, ok := typeNames[t]
	return ok
}

// ClassINET is the Internet class. It is the only class this module uses.
const ClassINET uint16 = 1

// RCode is a DNS response code.
type RCode uint8

const (
	RCodeSuccess        RCode = 0
	RCodeFormatError    RCode = 1
	RCodeServerFailure  RCode = 2
	RCodeNameError      RCode = 3
	RCodeNotImplemented RCode = 4
	RCodeRefused        RCode = 5
)

// Header holds the fixed 12-byte DNS message header, with the section
// counts omitted: after decoding they are implied by the section slices.
type Header struct {
	ID                 uint16
	Response           bool
	Opcode             uint8
	Authoritative      bool
	Truncated          bool
	RecursionDesired   bool
	RecursionAvailable bool
	RCode              RCode
}

// Question is a single query in the question section.
type Question struct {
	Name  string
	Type  Type
	Class uint16
}

// Record is a decoded resource record. Data holds the raw rdata bytes as
// received; RData holds the typed value for supported record types and is
// nil for anything else (for example OPT records in the additional
// section).
type Record struct {
	Name  string
	Type  Type
	Class uint16
	TTL   uint32
	Data  []byte
	RData RData
}

// Message is a decoded DNS message.
type Message struct {
	Header
	Questions   []Question
	Answers     []Record
	Authorities []Record
	Additionals []Record
}

// Errors returned by the codec.
var (
	ErrInvalidName      = errors.New("invalid domain name")
	ErrUnsupportedType  = errors.New("unsupported record type")
	ErrMalformedMessage = errors.New("malformed DNS message")
)

const (
	headerLen = 12

	// flagRecursionDesired is the only flag set on outgoing queries:
	// a standard query (opcode 0) with recursion desired.
	flagRecursionDesired = 0x0100
)

// NewID returns a fresh random transaction ID.
// See https://datatracker.ietf.org/doc/html/rfc5452#section-4.3 for why
// queries must not reuse predictable IDs.
func NewID() uint16 {
	return uint16(rand.Uint32())
}

// AppendQuery appends a standard recursive query for name and qtype to buf
// and returns the extended buffer. The name may be given with or without a
// trailing root dot. It fails with [ErrInvalidName] if the name does not
// satisfy the RFC 1035 length rules and with [ErrUnsupportedType] for a
// record type outside the supported set.
func AppendQuery(buf []byte, id uint16, name string, qtype Type) ([]byte, error) {
	if !qtype.Supported() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedType, uint16(qtype))
	}
	buf = binary.BigEndian.AppendUint16(buf, id)
	buf = binary.BigEndian.AppendUint16(buf, flagRecursionDesired)
	buf = binary.BigEndian.AppendUint16(buf, 1) // QDCOUNT
	buf = binary.BigEndian.AppendUint16(buf, 0) // ANCOUNT
	buf = binary.BigEndian.AppendUint16(buf, 0) // NSCOUNT
	buf = binary.BigEndian.AppendUint16(buf, 0) // ARCOUNT
	buf, err := appendName(buf, name)
	if err != nil {
		return nil, err
	}
	buf = binary.BigEndian.AppendUint16(buf, uint16(qtype))
	buf = binary.BigEndian.AppendUint16(buf, ClassINET)
	return buf, nil
}

// Unpack parses a complete DNS message. It fails with a
// [ErrMalformedMessage]-wrapped error if any declared length runs past the
// end of the buffer, if a record's rdata does not decode to exactly its
// declared rdlength, or if a compression pointer does not point strictly
// backward.
func Unpack(buf []byte) (*Message, error) {
	if len(buf) < headerLen {
		return nil, fmt.Errorf("%w: %d byte header", ErrMalformedMessage, len(buf))
	}
	flags := binary.BigEndian.Uint16(buf[2:4])
	msg := &Message{
		Header: Header{
			ID:                 binary.BigEndian.Uint16(buf[0:2]),
			Response:           flags&0x8000 != 0,
			Opcode:             uint8(flags >> 11 & 0xF),
			Authoritative:      flags&0x0400 != 0,
			Truncated:          flags&0x0200 != 0,
			RecursionDesired:   flags&flagRecursionDesired != 0,
			RecursionAvailable: flags&0x0080 != 0,
			RCode:              RCode(flags & 0xF),
		},
	}
	qdCount := binary.BigEndian.Uint16(buf[4:6])
	anCount := binary.BigEndian.Uint16(buf[6:8])
	nsCount := binary.BigEndian.Uint16(buf[8:10])
	arCount := binary.BigEndian.Uint16(buf[10:12])

	d := &decoder{buf: buf, off: headerLen}
	for i := 0; i < int(qdCount); i++ {
		q, err := d.question()
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		msg.Questions = append(msg.Questions, q)
	}
	var err error
	if msg.Answers, err = d.records(int(anCount)); err != nil {
		return nil, fmt.Errorf("answer section: %w", err)
	}
	if msg.Authorities, err = d.records(int(nsCount)); err != nil {
		return nil, fmt.Errorf("authority section: %w", err)
	}
	if msg.Additionals, err = d.records(int(arCount)); err != nil {
		return nil, fmt.Errorf("additional section: %w", err)
	}
	return msg, nil
}

// decoder walks a raw message buffer. The offset only ever moves forward;
// compressed names are expanded by bounded backward reads that do not move
// the cursor.
type decoder struct {
	buf []byte
	off int
}

func (d *decoder) need(n int) error {
	if d.off+n > len(d.buf) {
		return fmt.Errorf("%w: need %d bytes at offset %d of %d", ErrMalformedMessage, n, d.off, len(d.buf))
	}
	return nil
}

func (d *decoder) uint16() (uint16, error) {
	if err := d.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(d.buf[d.off:])
	d.off += 2
	return v, nil
}

func (d *decoder) uint32() (uint32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(d.buf[d.off:])
	d.off += 4
	return v, nil
}

func (d *decoder) name() (string, error) {
	name, next, err := readName(d.buf, d.off)
	if err != nil {
		return "", err
	}
	d.off = next
	return name, nil
}

func (d *decoder) question() (Question, error) {
	var q Question
	name, err := d.name()
	if err != nil {
		return q, err
	}
	qtype, err := d.uint16()
	if err != nil {
		return q, err
	}
	class, err := d.uint16()
	if err != nil {
		return q, err
	}
	q.Name = name
	q.Type = Type(qtype)
	q.Class = class
	return q, nil
}

func (d *decoder) records(count int) ([]Record, error) {
	var rrs []Record
	for i := 0; i < count; i++ {
		rr, err := d.record()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rrs = append(rrs, rr)
	}
	return rrs, nil
}

func (d *decoder) record() (Record, error) {
	var rr Record
	name, err := d.name()
	if err != nil {
		return rr, err
	}
	rrType, err := d.uint16()
	if err != nil {
		return rr, err
	}
	class, err := d.uint16()
	if err != nil {
		return rr, err
	}
	ttl, err := d.uint32()
	if err != nil {
		return rr, err
	}
	rdLength, err := d.uint16()
	if err != nil {
		return rr, err
	}
	if err := d.need(int(rdLength)); err != nil {
		return rr, err
	}
	rr.Name = name
	rr.Type = Type(rrType)
	rr.Class = class
	rr.TTL = ttl
	rr.Data = append([]byte(nil), d.buf[d.off:d.off+int(rdLength)]...)
	rr.RData, err = decodeRData(d.buf, d.off, int(rdLength), rr.Type)
	if err != nil {
		return rr, fmt.Errorf("%s rdata: %w", rr.Type, err)
	}
	d.off += int(rdLength)
	return rr, nil
}
