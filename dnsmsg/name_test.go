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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendNameWire(t *testing.T) {
	buf, err := appendName(nil, "example.com")
	require.NoError(t, err)
	require.Equal(t, []byte("\x07example\x03com\x00"), buf)
}

func TestAppendNameMaxLabel(t *testing.T) {
	label := strings.Repeat("x", 63)
	buf, err := appendName(nil, label+".com")
	require.NoError(t, err)
	require.Equal(t, byte(63), buf[0])

	_, err = appendName(nil, label+"x.com")
	require.ErrorIs(t, err, ErrInvalidName)
}

func TestReadNameRoot(t *testing.T) {
	name, next, err := readName([]byte{0}, 0)
	require.NoError(t, err)
	require.Equal(t, ".", name)
	require.Equal(t, 1, next)
}

func TestReadNameReturnsResumeOffset(t *testing.T) {
	buf := []byte("\x03foo\x00\x03bar\x00")
	name, next, err := readName(buf, 5)
	require.NoError(t, err)
	require.Equal(t, "bar.", name)
	require.Equal(t, len(buf), next)
}

func TestReadNameResumeAfterPointer(t *testing.T) {
	// "bar." followed by "foo." that continues at the pointer. The resume
	// offset is right after the two pointer bytes, regardless of how far
	// the expansion walked.
	buf := []byte("\x03bar\x00\x03foo\xC0\x00\xFF")
	name, next, err := readName(buf, 5)
	require.NoError(t, err)
	require.Equal(t, "foo.bar.", name)
	require.Equal(t, len(buf)-1, next)
}

func TestReadNameReservedLabelType(t *testing.T) {
	_, _, err := readName([]byte{0x40, 0}, 0)
	require.ErrorIs(t, err, ErrMalformedMessage)
}

func TestReadNameTruncated(t *testing.T) {
	for _, buf := range [][]byte{
		{},
		{3, 'f', 'o'},
		{3, 'f', 'o', 'o'},
		{0xC0},
	} {
		_, _, err := readName(buf, 0)
		require.ErrorIs(t, err, ErrMalformedMessage)
	}
}

func TestReadNameTooLong(t *testing.T) {
	// Chain backward pointers so each expansion hop prepends another 63
	// byte label; the flattened name passes 255 octets while every pointer
	// is legal.
	label := append([]byte{63}, []byte(strings.Repeat("y", 63))...)
	buf := append([]byte{}, label...)
	buf = append(buf, 0)
	starts := []int{0}
	for i := 0; i < 3; i++ {
		prev := starts[len(starts)-1]
		starts = append(starts, len(buf))
		buf = append(buf, label...)
		buf = append(buf, 0xC0|byte(prev>>8), byte(prev))
	}
	// Three labels plus the root: 193 octets on the wire, still legal.
	name, _, err := readName(buf, starts[2])
	require.NoError(t, err)
	require.Equal(t, 192, len(name))
	// Four labels: 257 octets, over the limit.
	_, _, err = readName(buf, starts[3])
	require.ErrorIs(t, err, ErrMalformedMessage)
}

func TestEqualNames(t *testing.T) {
	require.True(t, EqualNames("My-Example.Com", "mY-eXAMPLE.cOM"))
	require.True(t, EqualNames("example.com.", "example.com"))
	require.False(t, EqualNames("example.com", "example.net"))
	require.False(t, EqualNames("example.com", "example.com.br"))
	require.False(t, EqualNames("example.com", "myexample.com"))
}

func Test_foldCase(t *testing.T) {
	require.Equal(t, byte('y'), foldCase('Y'))
	require.Equal(t, byte('y'), foldCase('y'))
	// Only ASCII folds.
	require.Equal(t, byte('-'), foldCase('-'))
	require.Equal(t, byte('7'), foldCase('7'))
}
