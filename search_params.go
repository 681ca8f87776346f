/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package url

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// NewSearchParams builds an unbound container. init may be nil, a
// query string (an optional leading '?' is stripped), another
// *SearchParams (copied), a [][]string of name/value pairs (each inner
// slice must have exactly two elements), or a map[string]string (taken
// in sorted key order, the only stable order a Go map offers).
func NewSearchParams(init interface{}) (*SearchParams, error) {
	s := &SearchParams{}
	switch v := init.(type) {
	case nil:
	case string:
		s.pairs = parseURLEncoded(strings.TrimPrefix(toUSV(v), "?"))
	case *SearchParams:
		s.pairs = append([]pair(nil), v.pairs...)
	case [][]string:
		for _, p := range v {
			if len(p) != 2 {
				return nil, InvalidPairError(len(p))
			}
			s.pairs = append(s.pairs, pair{name: toUSV(p[0]), value: toUSV(p[1])})
		}
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.pairs = append(s.pairs, pair{name: toUSV(k), value: toUSV(v[k])})
		}
	default:
		return nil, errors.New("unsupported search params initializer")
	}
	return s, nil
}

// Append adds a pair at the end, keeping earlier pairs of the same
// name.
func (s *SearchParams) Append(name, value string) {
	s.pairs = append(s.pairs, pair{name: toUSV(name), value: toUSV(value)})
	s.update()
}

// Delete removes every pair with the given name.
func (s *SearchParams) Delete(name string) {
	name = toUSV(name)
	kept := s.pairs[:0]
	for _, p := range s.pairs {
		if p.name != name {
			kept = append(kept, p)
		}
	}
	s.pairs = kept
	s.update()
}

// Get returns the value of the first pair with the given name.
func (s *SearchParams) Get(name string) (string, bool) {
	name = toUSV(name)
	for _, p := range s.pairs {
		if p.name == name {
			return p.value, true
		}
	}
	return "", false
}

// GetAll returns the values of every pair with the given name, in
// order.
func (s *SearchParams) GetAll(name string) []string {
	name = toUSV(name)
	var values []string
	for _, p := range s.pairs {
		if p.name == name {
			values = append(values, p.value)
		}
	}
	return values
}

// Has reports whether a pair with the given name exists.
func (s *SearchParams) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Set overwrites the first pair with the given name and drops the
// rest; a missing name appends instead.
func (s *SearchParams) Set(name, value string) {
	name = toUSV(name)
	value = toUSV(value)
	found := false
	kept := s.pairs[:0]
	for _, p := range s.pairs {
		if p.name == name {
			if found {
				continue
			}
			p.value = value
			found = true
		}
		kept = append(kept, p)
	}
	s.pairs = kept
	if !found {
		s.pairs = append(s.pairs, pair{name: name, value: value})
	}
	s.update()
}

// Sort orders the pairs by name, comparing UTF-16 code units the way
// the web platform does. The sort is stable: pairs with equal names
// keep their relative order, and values take no part in the
// comparison.
func (s *SearchParams) Sort() {
	sort.SliceStable(s.pairs, func(i, j int) bool {
		return utf16Less(s.pairs[i].name, s.pairs[j].name)
	})
	s.update()
}

// Len returns the number of pairs.
func (s *SearchParams) Len() int {
	return len(s.pairs)
}

// String serializes the pairs as application/x-www-form-urlencoded.
func (s *SearchParams) String() string {
	return serializeURLEncoded(s.pairs)
}

// ForEach calls fn for each pair in order. The list is read live:
// mutations during iteration shift what fn sees next.
func (s *SearchParams) ForEach(fn func(name, value string)) {
	for i := 0; i < len(s.pairs); i++ {
		fn(s.pairs[i].name, s.pairs[i].value)
	}
}

// Entries returns an iterator over the pairs.
func (s *SearchParams) Entries() *PairIterator {
	return &PairIterator{params: s}
}

// Keys returns an iterator over the names.
func (s *SearchParams) Keys() *KeyIterator {
	return &KeyIterator{pairs: PairIterator{params: s}}
}

// Values returns an iterator over the values.
func (s *SearchParams) Values() *ValueIterator {
	return &ValueIterator{pairs: PairIterator{params: s}}
}

// update writes the serialized list through to the bound URL: an empty
// serialization clears the query, anything else replaces it.
func (s *SearchParams) update() {
	if s.url == nil {
		return
	}
	serialized := serializeURLEncoded(s.pairs)
	if serialized == "" {
		s.url.query = nil
		return
	}
	s.url.query = &serialized
}

// Next returns the pair under the cursor and advances it. The cursor
// indexes the live list, so concurrent mutation changes what remains
// to be seen.
func (it *PairIterator) Next() (name, value string, ok bool) {
	if it.index >= len(it.params.pairs) {
		return "", "", false
	}
	p := it.params.pairs[it.index]
	it.index++
	return p.name, p.value, true
}

// Next returns the name under the cursor and advances it.
func (it *KeyIterator) Next() (string, bool) {
	name, _, ok := it.pairs.Next()
	return name, ok
}

// Next returns the value under the cursor and advances it.
func (it *ValueIterator) Next() (string, bool) {
	_, value, ok := it.pairs.Next()
	return value, ok
}

// toUSV coerces a string to well-formed UTF-8, the byte-native
// equivalent of replacing lone surrogates with U+FFFD.
func toUSV(s string) string {
	return strings.ToValidUTF8(s, "�")
}

// utf16Less compares two strings by their UTF-16 code units.
// Supplementary-plane code points encode as surrogate pairs and thus
// order below U+E000..U+FFFF, which plain string comparison gets
// wrong.
func utf16Less(a, b string) bool {
	for {
		if len(b) == 0 {
			return false
		}
		if len(a) == 0 {
			return true
		}
		ra, sizeA := utf8.DecodeRuneInString(a)
		rb, sizeB := utf8.DecodeRuneInString(b)
		if ra != rb {
			ua := utf16.Encode([]rune{ra})
			ub := utf16.Encode([]rune{rb})
			for i := 0; i < len(ua) && i < len(ub); i++ {
				if ua[i] != ub[i] {
					return ua[i] < ub[i]
				}
			}
			return len(ua) < len(ub)
		}
		a = a[sizeA:]
		b = b[sizeB:]
	}
}
