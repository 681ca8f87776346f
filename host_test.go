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

func TestParseHostDomains(t *testing.T) {
	var domainTests = []struct {
		in    string
		value string
	}{
		{"example.com", "example.com"},
		{"EXAMPLE.com", "example.com"},
		{"ex%41mple.com", "example.com"},
		{"bücher.de", "xn--bcher-kva.de"},
		{"1.2.3.4.5", "1.2.3.4.5"},
		{"foo_bar", "foo_bar"},
	}
	for _, tt := range domainTests {
		h, err := parseHost(tt.in, true)
		require.NoError(t, err, "parseHost(%q)", tt.in)
		assert.Equal(t, HostDomain, h.Type, "parseHost(%q)", tt.in)
		assert.Equal(t, tt.value, h.Value, "parseHost(%q)", tt.in)
	}
}

func TestParseHostForbidden(t *testing.T) {
	for _, in := range []string{
		"ex ample.com", "a#b", "a?b", "a@b", "a\\b", "a%25b",
		"a<b", "a>b", "a^b", "a|b",
	} {
		_, err := parseHost(in, true)
		assert.Error(t, err, "parseHost(%q)", in)
	}
}

func TestParseHostIPv4(t *testing.T) {
	var ipv4Tests = []struct {
		in    string
		value string
	}{
		{"192.168.0.1", "192.168.0.1"},
		{"0x7f.1", "127.0.0.1"},
		{"0300.0xff.255.1", "192.255.255.1"},
		{"4294967295", "255.255.255.255"},
		{"127.0.0.1.", "127.0.0.1"},
	}
	for _, tt := range ipv4Tests {
		h, err := parseHost(tt.in, true)
		require.NoError(t, err, "parseHost(%q)", tt.in)
		assert.Equal(t, HostIPv4, h.Type, "parseHost(%q)", tt.in)
		assert.Equal(t, tt.value, h.Value, "parseHost(%q)", tt.in)
	}

	for _, in := range []string{"4294967296", "0x100000000", "999.1.1.1", "1.2.3.256"} {
		_, err := parseHost(in, true)
		assert.Error(t, err, "parseHost(%q)", in)
	}
}

func TestParseHostIPv6(t *testing.T) {
	var ipv6Tests = []struct {
		in    string
		value string
	}{
		{"[::1]", "::1"},
		{"[0:0:0:0:0:0:0:1]", "::1"},
		{"[1:2:3:4:5:6:7:8]", "1:2:3:4:5:6:7:8"},
		{"[2001:DB8::1]", "2001:db8::1"},
		{"[1:0:0:0:0:0:0:1]", "1::1"},
		{"[1:2:3:4:5:6:0:0]", "1:2:3:4:5:6::"},
		{"[::ffff:192.168.0.1]", "::ffff:c0a8:1"},
		{"[1:2:3:4:5:6:7:0]", "1:2:3:4:5:6:7:0"},
	}
	for _, tt := range ipv6Tests {
		h, err := parseHost(tt.in, true)
		require.NoError(t, err, "parseHost(%q)", tt.in)
		assert.Equal(t, HostIPv6, h.Type, "parseHost(%q)", tt.in)
		assert.Equal(t, tt.value, h.Value, "parseHost(%q)", tt.in)
		assert.Equal(t, "["+tt.value+"]", serializeHost(h))
	}

	for _, in := range []string{
		"[::1",
		"[1:2]",
		"[::1::2]",
		"[12345::]",
		"[1:2:3:4:5:6:7:8:9]",
		"[1:2:3:4:5:6:7]",
		"[::ffff:1.2.3]",
		"[::ffff:1.2.3.4.5]",
		"[g::1]",
	} {
		_, err := parseHost(in, true)
		assert.Error(t, err, "parseHost(%q)", in)
	}
}

func TestParseHostOpaque(t *testing.T) {
	h, err := parseHost("ho st", false)
	require.NoError(t, err)
	assert.Equal(t, HostOpaque, h.Type)
	assert.Equal(t, "ho%20st", h.Value)

	h, err = parseHost("a%41", false)
	require.NoError(t, err)
	assert.Equal(t, "a%41", h.Value, "opaque hosts keep their escapes")

	h, err = parseHost("", false)
	require.NoError(t, err)
	assert.Equal(t, HostEmpty, h.Type)
	assert.Equal(t, "", serializeHost(h))
}
