/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package url

type (
	// Error reports an error and the operation and URL that caused it.
	Error struct {
		Op  string
		URL string
		Err error
	}

	encoding int

	state int

	InvalidHostError string

	// InvalidPairError reports a name/value pair of the wrong shape handed
	// to NewSearchParams.
	InvalidPairError int

	// HostType tags the variant stored in a Host.
	HostType int

	// A Host is the parsed host of a URL: absent, the empty host, a
	// domain, an IPv4 or IPv6 address, or an opaque (non-special) host.
	// Value always holds the serialized payload: the ASCII domain, the
	// dotted-decimal IPv4 form, the compressed IPv6 form without
	// brackets, or the percent-encoded opaque host.
	Host struct {
		Value string
		Type  HostType
	}

	// A URL represents a parsed URL record.
	//
	// The general form represented is:
	//
	//	scheme://[username[:password]@]host[:port]/path[?query][#fragment]
	//
	// All components are stored in their percent-encoded, serialized
	// form. The record is read and written through the attribute
	// methods (Href, SetHref, Protocol, SetProtocol, ...). The setters
	// re-run the parser over the affected component, except SetUsername
	// and SetPassword, which percent-encode the value with the userinfo
	// set and assign it directly.
	//
	// A URL whose path is a single opaque string (mailto:x@y and
	// friends) cannot be used as a base and refuses most component
	// mutations.
	URL struct {
		scheme           string
		username         string
		password         string
		host             Host
		port             *uint16
		path             []string
		query            *string
		fragment         *string
		cannotBeABase    bool
		searchParams     *SearchParams
		validationErrors []string
	}

	pair struct {
		name  string
		value string
	}

	// SearchParams is an ordered multimap of name/value pairs bound to
	// the query of a URL. Edits through either surface are reflected in
	// the other: every mutation re-serializes the list into the bound
	// URL's query, and every write to the URL's query rebuilds the list.
	SearchParams struct {
		pairs []pair
		url   *URL
	}

	// PairIterator walks the pairs of a SearchParams in order. The
	// iterator reads the live list: pairs appended or removed during
	// iteration are observed.
	PairIterator struct {
		params *SearchParams
		index  int
	}

	// KeyIterator walks the names of a SearchParams in order.
	KeyIterator struct {
		pairs PairIterator
	}

	// ValueIterator walks the values of a SearchParams in order.
	ValueIterator struct {
		pairs PairIterator
	}
)

const (
	HostNone HostType = iota // no host
	HostEmpty
	HostDomain
	HostIPv4
	HostIPv6
	HostOpaque
)

const (
	encodeC0 encoding = 1 + iota
	encodeDefault
	encodeUserinfo
	encodeQuery
	encodeForm
)

const (
	stateSchemeStart state = 1 + iota
	stateScheme
	stateNoScheme
	stateSpecialRelativeOrAuthority
	statePathOrAuthority
	stateRelative
	stateRelativeSlash
	stateSpecialAuthoritySlashes
	stateSpecialAuthorityIgnoreSlashes
	stateAuthority
	stateHost
	stateHostname
	statePort
	stateFile
	stateFileSlash
	stateFileHost
	statePathStart
	statePath
	stateCannotBeABasePath
	stateQuery
	stateFragment
)

// eof drives the terminal transitions of the state machine.
const eof rune = -1

var (
	// Default ports of the special schemes. A parsed port equal to its
	// scheme's default is stored as absent. "gopher" is carried for
	// compatibility even though the living standard dropped it.
	specialSchemes = map[string]uint16{
		"ftp":    21,
		"file":   0,
		"gopher": 70,
		"http":   80,
		"https":  443,
		"ws":     80,
		"wss":    443,
	}

	// Schemes whose origin is serialized as "null".
	opaqueOriginSchemes = map[string]bool{
		"data":       true,
		"file":       true,
		"javascript": true,
		"mailto":     true,
	}
)

func isSpecialScheme(scheme string) bool {
	_, ok := specialSchemes[scheme]
	return ok
}

func (u *URL) isSpecial() bool {
	return isSpecialScheme(u.scheme)
}

func defaultPort(scheme string) (uint16, bool) {
	p, ok := specialSchemes[scheme]
	return p, ok
}
