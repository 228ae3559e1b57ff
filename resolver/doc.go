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
Package resolver queries upstream DNS servers over UDP and returns typed,
formatted records.

A [Resolver] owns an ordered list of upstream servers. Each lookup sends a
query to the first server and waits for a reply whose transaction ID
matches, within a per-attempt timeout; on timeout, transport error or a
malformed reply it falls through to the next server in the list. Servers
are never contacted out of order within one lookup. A server-reported
NXDOMAIN is authoritative and stops the fallback.

[Resolver.Lookup] resolves one record type, [Resolver.LookupAll] resolves
all supported types concurrently, and [Resolver.ReverseLookup] maps an IP
address back to a name through the in-addr.arpa/ip6.arpa namespace. Every
outcome is reported as a [Status] in the [LookupResult]; the only errors
returned are rejections of invalid caller input, before any network
activity.
*/
package resolver
