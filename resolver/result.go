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
	"fmt"

	"github.com/yopem/dns-lookup/dnsmsg"
)

// Status is the outcome of one lookup.
type Status int

const (
	// StatusSuccess: at least one record of the requested type.
	StatusSuccess Status = iota
	// StatusNoData: a clean answer with no records of the requested type.
	// Distinct from StatusNameError; the name exists.
	StatusNoData
	// StatusNameError: the server reported NXDOMAIN.
	StatusNameError
	// StatusServerFailure: every reachable server reported a failure code
	// such as SERVFAIL.
	StatusServerFailure
	// StatusTimeout: the server list was exhausted without a usable reply.
	StatusTimeout
	// StatusMalformed: every attempted server answered, but with replies
	// that failed to parse.
	StatusMalformed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNoData:
		return "no data"
	case StatusNameError:
		return "name error"
	case StatusServerFailure:
		return "server failure"
	case StatusTimeout:
		return "timeout"
	case StatusMalformed:
		return "malformed response"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// OK reports whether the lookup reached a server and got a well-formed
// answer, including the empty and negative ones.
func (s Status) OK() bool {
	return s == StatusSuccess || s == StatusNoData || s == StatusNameError
}

// Answer is one resource record, formatted for display.
type Answer struct {
	Type dnsmsg.Type
	TTL  uint32
	Data string
}

// LookupResult is the outcome of one type query: a status and the
// formatted records, which are empty unless the status is
// [StatusSuccess].
type LookupResult struct {
	Status  Status
	Answers []Answer
}

// answersFromMessage formats the answer records matching the question
// type. Records of other types in the answer section (such as CNAMEs in
// front of address records) are skipped.
func answersFromMessage(msg *dnsmsg.Message, qtype dnsmsg.Type) []Answer {
	var answers []Answer
	for _, rr := range msg.Answers {
		if rr.Type != qtype || rr.Class != dnsmsg.ClassINET {
			continue
		}
		answers = append(answers, Answer{Type: rr.Type, TTL: rr.TTL, Data: dnsmsg.FormatRData(rr)})
	}
	return answers
}
