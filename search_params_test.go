/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package url

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchParamsConstructors(t *testing.T) {
	s, err := NewSearchParams(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())

	s, err = NewSearchParams("?a=1&b=2")
	require.NoError(t, err)
	assert.Equal(t, "a=1&b=2", s.String())

	s, err = NewSearchParams("a=1&b=2")
	require.NoError(t, err)
	assert.Equal(t, "a=1&b=2", s.String())

	s2, err := NewSearchParams(s)
	require.NoError(t, err)
	s2.Append("c", "3")
	assert.Equal(t, "a=1&b=2", s.String(), "copy must not share storage")
	assert.Equal(t, "a=1&b=2&c=3", s2.String())

	s, err = NewSearchParams([][]string{{"k", "v"}, {"k", "v2"}})
	require.NoError(t, err)
	assert.Equal(t, "k=v&k=v2", s.String())

	_, err = NewSearchParams([][]string{{"k", "v", "extra"}})
	require.Error(t, err)
	assert.IsType(t, InvalidPairError(0), err)

	_, err = NewSearchParams([][]string{{"k"}})
	require.Error(t, err)

	s, err = NewSearchParams(map[string]string{"b": "2", "a": "1"})
	require.NoError(t, err)
	assert.Equal(t, "a=1&b=2", s.String())

	_, err = NewSearchParams(42)
	require.Error(t, err)
}

func TestSearchParamsOperations(t *testing.T) {
	s, err := NewSearchParams("a=1&b=2&a=3")
	require.NoError(t, err)

	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = s.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"1", "3"}, s.GetAll("a"))
	assert.True(t, s.Has("b"))
	assert.False(t, s.Has("c"))

	s.Append("b", "4")
	assert.Equal(t, "a=1&b=2&a=3&b=4", s.String())

	// Set overwrites the first occurrence and drops the rest
	s.Set("a", "9")
	assert.Equal(t, "a=9&b=2&b=4", s.String())

	s.Set("c", "5")
	assert.Equal(t, "a=9&b=2&b=4&c=5", s.String())

	s.Delete("b")
	assert.Equal(t, "a=9&c=5", s.String())

	s.Delete("missing")
	assert.Equal(t, "a=9&c=5", s.String())
}

func TestSearchParamsSet(t *testing.T) {
	s, err := NewSearchParams([][]string{{"k", "v"}, {"k", "v2"}})
	require.NoError(t, err)
	s.Set("k", "w")
	assert.Equal(t, "k=w", s.String())
}

func TestSearchParamsSortStable(t *testing.T) {
	s, err := NewSearchParams("b=1&a=1&b=2&a=2")
	require.NoError(t, err)
	s.Sort()
	assert.Equal(t, "a=1&a=2&b=1&b=2", s.String())
}

func TestSearchParamsSortCodeUnits(t *testing.T) {
	// U+1F308 encodes as a surrogate pair in UTF-16 and must sort
	// before U+FB03 even though its code point is larger.
	s, err := NewSearchParams([][]string{{"ﬃ", "a"}, {"\U0001F308", "b"}})
	require.NoError(t, err)
	s.Sort()
	it := s.Keys()
	first, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, "\U0001F308", first)
}

func TestSearchParamsIterators(t *testing.T) {
	s, err := NewSearchParams("a=1&b=2")
	require.NoError(t, err)

	var names, values []string
	s.ForEach(func(name, value string) {
		names = append(names, name)
		values = append(values, value)
	})
	assert.Equal(t, []string{"a", "b"}, names)
	assert.Equal(t, []string{"1", "2"}, values)

	entries := s.Entries()
	n, v, ok := entries.Next()
	require.True(t, ok)
	assert.Equal(t, "a", n)
	assert.Equal(t, "1", v)

	// the iterator reads the live list
	s.Append("c", "3")
	n, v, ok = entries.Next()
	require.True(t, ok)
	assert.Equal(t, "b", n)
	n, v, ok = entries.Next()
	require.True(t, ok)
	assert.Equal(t, "c", n)
	assert.Equal(t, "3", v)
	_, _, ok = entries.Next()
	assert.False(t, ok)

	keys := s.Keys()
	k, ok := keys.Next()
	require.True(t, ok)
	assert.Equal(t, "a", k)

	vals := s.Values()
	val, ok := vals.Next()
	require.True(t, ok)
	assert.Equal(t, "1", val)
}

func TestSearchParamsBinding(t *testing.T) {
	u := mustParse(t, "http://host/p?x=1&y=2#f")
	params := u.Query()
	assert.Equal(t, "x=1&y=2", params.String())

	params.Append("z", "3")
	assert.Equal(t, "?x=1&y=2&z=3", u.Search())
	assert.Equal(t, "http://host/p?x=1&y=2&z=3#f", u.Href())

	params.Delete("x")
	params.Delete("y")
	params.Delete("z")
	assert.Equal(t, "", u.Search(), "empty list clears the query")
	assert.Equal(t, "http://host/p#f", u.Href())

	params.Set("a", "b c")
	assert.Equal(t, "?a=b+c", u.Search())

	// writes through the URL rebuild the list
	u.SetSearch("?k=v&k2=v2")
	v, ok := params.Get("k2")
	assert.True(t, ok)
	assert.Equal(t, "v2", v)

	u.SetSearch("")
	assert.Equal(t, 0, params.Len())

	require.NoError(t, u.SetHref("http://other/?fresh=1"))
	v, ok = params.Get("fresh")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Same(t, params, u.Query(), "container survives href assignment")
}

func TestSearchParamsUSVCoercion(t *testing.T) {
	s, err := NewSearchParams(nil)
	require.NoError(t, err)
	s.Append("k\xff", "v")
	v, ok := s.Get("k�")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
