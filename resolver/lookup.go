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

	"golang.org/x/sync/errgroup"

	"github.com/yopem/dns-lookup/dnsmsg"
)

// AllTypes returns the record types queried by [Resolver.LookupAll].
// PTR is excluded; it only makes sense through [Resolver.ReverseLookup].
func AllTypes() []dnsmsg.Type {
	return []dnsmsg.Type{
		dnsmsg.TypeA,
		dnsmsg.TypeAAAA,
		dnsmsg.TypeMX,
		dnsmsg.TypeNS,
		dnsmsg.TypeCNAME,
		dnsmsg.TypeTXT,
		dnsmsg.TypeSOA,
	}
}

// Lookup resolves a single record type for name.
func (r *Resolver) Lookup(ctx context.Context, name string, qtype dnsmsg.Type) (LookupResult, error) {
	return r.Resolve(ctx, name, qtype)
}

// LookupAll resolves every type in [AllTypes] for name, concurrently. Each
// type gets its own server fallback and timeout budget, so one slow or
// unreachable path does not hold up the others. A deadline on ctx bounds
// the whole call; types still in flight when it expires report
// [StatusTimeout].
func (r *Resolver) LookupAll(ctx context.Context, name string) (map[dnsmsg.Type]LookupResult, error) {
	// Reject bad input once, before spawning anything.
	if _, err := dnsmsg.AppendQuery(nil, 0, name, dnsmsg.TypeA); err != nil {
		return nil, err
	}

	types := AllTypes()
	results := make([]LookupResult, len(types))
	g, ctx := errgroup.WithContext(ctx)
	for i, qtype := range types {
		i, qtype := i, qtype
		g.Go(func() error {
			res, err := r.Resolve(ctx, name, qtype)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byType := make(map[dnsmsg.Type]LookupResult, len(types))
	for i, qtype := range types {
		byType[qtype] = results[i]
	}
	return byType, nil
}
