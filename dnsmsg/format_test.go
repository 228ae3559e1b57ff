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
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatRData(t *testing.T) {
	tests := []struct {
		name string
		rr   Record
		want string
	}{{
		name: "A",
		rr:   Record{Type: TypeA, RData: &ARecord{Addr: netip.MustParseAddr("93.184.216.34")}},
		want: "93.184.216.34",
	}, {
		name: "AAAA",
		rr:   Record{Type: TypeAAAA, RData: &AAAARecord{Addr: netip.MustParseAddr("2606:4700:4700::1111")}},
		want: "2606:4700:4700::1111",
	}, {
		// The exchange name keeps its trailing dot, unlike NS/CNAME/PTR.
		name: "MX",
		rr:   Record{Type: TypeMX, RData: &MXRecord{Preference: 10, Exchange: "smtp.example.com."}},
		want: "PRIORITY: 10, SERVER: smtp.example.com.",
	}, {
		name: "NS",
		rr:   Record{Type: TypeNS, RData: &NameRecord{Name: "ns1.example.com."}},
		want: "ns1.example.com",
	}, {
		name: "CNAME",
		rr:   Record{Type: TypeCNAME, RData: &NameRecord{Name: "www.example.net."}},
		want: "www.example.net",
	}, {
		name: "PTR",
		rr:   Record{Type: TypePTR, RData: &NameRecord{Name: "dns.google."}},
		want: "dns.google",
	}, {
		name: "TXTStripsQuotes",
		rr:   Record{Type: TypeTXT, RData: &TXTRecord{Text: `"v=spf1 include:_spf.example.com ~all"`}},
		want: "v=spf1 include:_spf.example.com ~all",
	}, {
		name: "SOA",
		rr: Record{Type: TypeSOA, RData: &SOARecord{
			PrimaryNS: "ns1.example.com.",
			Mailbox:   "hostmaster.example.com.",
			Serial:    2024010100,
			Refresh:   7200,
			Retry:     3600,
			Expire:    1209600,
			Minimum:   300,
		}},
		want: "PRIMARY NS: ns1.example.com., EMAIL: hostmaster.example.com., SERIAL: 2024010100",
	}, {
		name: "Undecoded",
		rr:   Record{Type: Type(41), Data: []byte{1, 2, 3}},
		want: "",
	}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, FormatRData(tc.rr))
		})
	}
}
