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

/*
Package dnsmsg implements encoding and decoding of the DNS wire format
described in [RFC 1035].

Use [AppendQuery] to build a standard recursive query for one of the
supported record types, and [Unpack] to parse a server response into a
[Message] with typed record data. Decoding expands [name compression]
with a strict backward-pointer rule: a compression pointer that does not
point to an earlier offset in the message is rejected as malformed, which
bounds the expansion of any reply, including crafted ones.

[FormatRData] renders a decoded record in the canonical display form used
by callers of the resolver.

[RFC 1035]: https://datatracker.ietf.org/doc/html/rfc1035
[name compression]: https://datatracker.ietf.org/doc/html/rfc1035#section-4.1.4
*/
package dnsmsg
