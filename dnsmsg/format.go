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

// FormatRData renders a decoded record in its canonical display form:
//
//   - A/AAAA: the address text.
//   - MX: "PRIORITY: <preference>, SERVER: <exchange>", exchange kept in
//     FQDN form.
//   - NS/CNAME/PTR: the name with the trailing root dot stripped.
//   - TXT: the concatenated text with quote characters removed.
//   - SOA: "PRIMARY NS: <ns>, EMAIL: <mailbox>, SERIAL: <serial>".
//
// Records without a decoded value render as an empty string.
func FormatRData(rr Record) string {
	switch rd := rr.RData.(type) {
	case *ARecord:
		return rd.Addr.String()
	case *AAAARecord:
		return rd.Addr.String()
	case *MXRecord:
		return fmt.Sprintf("PRIORITY: %d, SERVER: %s", rd.Preference, rd.Exchange)
	case *NameRecord:
		return strings.TrimSuffix(rd.Name, ".")
	case *TXTRecord:
		return strings.ReplaceAll(rd.Text, `"`, "")
	case *SOARecord:
		return fmt.Sprintf("PRIMARY NS: %s, EMAIL: %s, SERIAL: %d", rd.PrimaryNS, rd.Mailbox, rd.Serial)
	}
	return ""
}
