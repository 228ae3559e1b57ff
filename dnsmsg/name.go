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
	"fmt"
	"strings"
)

const (
	maxLabelLen = 63
	// Maximum length of an encoded name, including length bytes and the
	// terminating root label. RFC 1035 section 2.3.4.
	maxNameLen = 255
)

// appendName appends the wire encoding of a domain name: each label
// prefixed by its length, terminated by the root label. A single trailing
// dot is accepted and ignored.
func appendName(buf []byte, name string) ([]byte, error) {
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	// Each label costs len+1 on the wire, plus the terminating zero byte.
	if len(name)+2 > maxNameLen {
		return nil, fmt.Errorf("%w: %q exceeds %d octets", ErrInvalidName, name, maxNameLen)
	}
	for _, label := range strings.Split(name, ".") {
		if label == "" {
			return nil, fmt.Errorf("%w: empty label in %q", ErrInvalidName, name)
		}
		if len(label) > maxLabelLen {
			return nil, fmt.Errorf("%w: label %q exceeds %d octets", ErrInvalidName, label, maxLabelLen)
		}
		for i := 0; i < len(label); i++ {
			if !isNameByte(label[i]) {
				return nil, fmt.Errorf("%w: character %q in %q", ErrInvalidName, label[i], name)
			}
		}
		buf = append(buf, byte(len(label)))
		buf = append(buf, label...)
	}
	return append(buf, 0), nil
}

func isNameByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}

// readName decodes the domain name starting at off, expanding compression
// pointers. It returns the name in FQDN form with a trailing root dot, and
// the offset of the first byte after the name's in-place encoding.
//
// Every compression pointer must target an offset strictly below the
// previous pointer target (or, for the first pointer, below the start of
// the name). Each hop therefore moves strictly backward through the
// message, so the walk terminates even on crafted input; a forward or
// self-referential pointer is rejected as malformed.
func readName(buf []byte, off int) (string, int, error) {
	var sb strings.Builder
	pos := off
	next := -1      // offset after the in-place encoding, set at the first pointer
	ceiling := off  // every pointer target must be below this
	encodedLen := 0 // length the expanded name would have if written flat
	for {
		if pos >= len(buf) {
			return "", 0, fmt.Errorf("%w: name runs past end of message", ErrMalformedMessage)
		}
		b := buf[pos]
		switch {
		case b == 0:
			if next == -1 {
				next = pos + 1
			}
			if sb.Len() == 0 {
				return ".", next, nil
			}
			return sb.String(), next, nil
		case b&0xC0 == 0xC0:
			if pos+1 >= len(buf) {
				return "", 0, fmt.Errorf("%w: truncated compression pointer", ErrMalformedMessage)
			}
			target := int(b&0x3F)<<8 | int(buf[pos+1])
			if target >= ceiling {
				return "", 0, fmt.Errorf("%w: compression pointer to offset %d does not point backward", ErrMalformedMessage, target)
			}
			if next == -1 {
				next = pos + 2
			}
			ceiling = target
			pos = target
		case b&0xC0 != 0:
			return "", 0, fmt.Errorf("%w: reserved label type %#x", ErrMalformedMessage, b&0xC0)
		default:
			if pos+1+int(b) > len(buf) {
				return "", 0, fmt.Errorf("%w: label runs past end of message", ErrMalformedMessage)
			}
			encodedLen += int(b) + 1
			if encodedLen+1 > maxNameLen {
				return "", 0, fmt.Errorf("%w: name exceeds %d octets", ErrMalformedMessage, maxNameLen)
			}
			sb.Write(buf[pos+1 : pos+1+int(b)])
			sb.WriteByte('.')
			pos += int(b) + 1
		}
	}
}

// EqualNames compares two dot-separated names case-insensitively, ignoring
// a single trailing root dot on either side. Only ASCII letters fold, as
// in DNS itself.
func EqualNames(x, y string) bool {
	x = strings.TrimSuffix(x, ".")
	y = strings.TrimSuffix(y, ".")
	if len(x) != len(y) {
		return false
	}
	for i := 0; i < len(x); i++ {
		if foldCase(x[i]) != foldCase(y[i]) {
			return false
		}
	}
	return true
}

func foldCase(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 0x20
	}
	return c
}
