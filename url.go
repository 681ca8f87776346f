/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package url

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Href returns the canonical serialization of the whole URL.
func (u *URL) Href() string {
	return serializeURL(u, false)
}

// String reassembles the URL into a valid URL string; identical to Href.
func (u *URL) String() string {
	return u.Href()
}

// SetHref re-parses the whole URL from scratch. On failure the record
// is left untouched and an *Error is returned.
func (u *URL) SetHref(rawurl string) error {
	next, err := parseURL(rawurl, nil, nil, 0)
	if err != nil {
		return &Error{"parse", rawurl, err}
	}
	u.adoptRecord(next)
	u.syncSearchParams()
	return nil
}

// Origin returns the serialized origin: "null" for opaque-origin
// schemes, "" when there is no scheme or host to speak of, otherwise
// scheme://host[:port]. blob: URLs are not unwrapped.
func (u *URL) Origin() string {
	if opaqueOriginSchemes[u.scheme] {
		return "null"
	}
	if u.scheme == "" || u.host.Type == HostNone || u.host.Type == HostEmpty {
		return ""
	}
	origin := u.scheme + "://" + serializeHost(u.host)
	if u.port != nil {
		origin += ":" + strconv.Itoa(int(*u.port))
	}
	return origin
}

// Protocol returns the scheme followed by ':'.
func (u *URL) Protocol() string {
	return u.scheme + ":"
}

// SetProtocol re-parses value as a scheme. Switching between a special
// and a non-special scheme is refused; failures leave the record
// untouched.
func (u *URL) SetProtocol(value string) {
	parseURL(value+":", nil, u, stateSchemeStart)
}

func (u *URL) Username() string {
	return u.username
}

// SetUsername percent-encodes value with the userinfo set and assigns
// it. URLs that cannot carry credentials are left untouched.
func (u *URL) SetUsername(value string) {
	if u.cannotHaveCredentials() {
		return
	}
	u.username = escape(value, encodeUserinfo)
}

func (u *URL) Password() string {
	return u.password
}

// SetPassword percent-encodes value with the userinfo set and assigns
// it. URLs that cannot carry credentials are left untouched.
func (u *URL) SetPassword(value string) {
	if u.cannotHaveCredentials() {
		return
	}
	u.password = escape(value, encodeUserinfo)
}

// Host returns host[:port], or "" when the URL has no host.
func (u *URL) Host() string {
	if u.host.Type == HostNone {
		return ""
	}
	if u.port == nil {
		return serializeHost(u.host)
	}
	return serializeHost(u.host) + ":" + strconv.Itoa(int(*u.port))
}

// SetHost re-parses value as host[:port] into the record. A
// cannot-be-a-base URL is left untouched, as is the record when the host
// fails to parse. When the host parses but the port does not, the new
// host is kept and the port stays as it was.
func (u *URL) SetHost(value string) {
	if u.cannotBeABase {
		return
	}
	parseURL(value, nil, u, stateHost)
}

// Hostname returns the serialized host without the port.
func (u *URL) Hostname() string {
	if u.host.Type == HostNone {
		return ""
	}
	return serializeHost(u.host)
}

// SetHostname re-parses value as a host, leaving the port alone.
func (u *URL) SetHostname(value string) {
	if u.cannotBeABase {
		return
	}
	parseURL(value, nil, u, stateHostname)
}

// Port returns the decimal port, or "" when the port is absent or the
// scheme's default.
func (u *URL) Port() string {
	if u.port == nil {
		return ""
	}
	return strconv.Itoa(int(*u.port))
}

// SetPort parses value as a port; an empty value clears it. URLs that
// cannot carry a port are left untouched.
func (u *URL) SetPort(value string) {
	if u.cannotHaveCredentials() {
		return
	}
	if value == "" {
		u.port = nil
		return
	}
	parseURL(value, nil, u, statePort)
}

// Pathname returns the serialized path: the opaque path of a
// cannot-be-a-base URL, otherwise '/'-prefixed segments.
func (u *URL) Pathname() string {
	if u.cannotBeABase {
		return u.path[0]
	}
	var sb strings.Builder
	for _, segment := range u.path {
		sb.WriteByte('/')
		sb.WriteString(segment)
	}
	return sb.String()
}

// SetPathname clears the path and re-parses value into it.
func (u *URL) SetPathname(value string) {
	if u.cannotBeABase {
		return
	}
	u.path = nil
	parseURL(value, nil, u, statePathStart)
}

// Search returns "?" + query, or "" when the query is absent or empty.
func (u *URL) Search() string {
	if u.query == nil || *u.query == "" {
		return ""
	}
	return "?" + *u.query
}

// SetSearch replaces the query. An empty value removes it entirely and
// empties the bound container; otherwise an optional leading '?' is
// stripped and the rest re-parsed through the query state.
func (u *URL) SetSearch(value string) {
	if value == "" {
		u.query = nil
		if u.searchParams != nil {
			u.searchParams.pairs = u.searchParams.pairs[:0]
		}
		return
	}
	input := strings.TrimPrefix(value, "?")
	u.query = new(string)
	parseURL(input, nil, u, stateQuery)
	if u.searchParams != nil {
		u.searchParams.pairs = parseURLEncoded(input)
	}
}

// Query returns the search-params container bound to this URL,
// creating it from the current query on first use. The container and
// the URL share state: mutations on either side show up on the other.
func (u *URL) Query() *SearchParams {
	if u.searchParams == nil {
		u.searchParams = &SearchParams{url: u}
		if u.query != nil {
			u.searchParams.pairs = parseURLEncoded(*u.query)
		}
	}
	return u.searchParams
}

// Hash returns "#" + fragment, or "" when the fragment is absent or
// empty.
func (u *URL) Hash() string {
	if u.fragment == nil || *u.fragment == "" {
		return ""
	}
	return "#" + *u.fragment
}

// SetHash replaces the fragment. An empty value removes it; otherwise
// an optional leading '#' is stripped and the rest re-parsed.
func (u *URL) SetHash(value string) {
	if value == "" {
		u.fragment = nil
		return
	}
	input := strings.TrimPrefix(value, "#")
	u.fragment = new(string)
	parseURL(input, nil, u, stateFragment)
}

// ValidationErrors returns the non-fatal deviations collected while
// this record was parsed or mutated. The slice is owned by the URL.
func (u *URL) ValidationErrors() []string {
	return u.validationErrors
}

// Parse parses ref in the context of the receiver. The provided URL
// may be relative or absolute.
func (u *URL) Parse(ref string) (*URL, error) {
	parsed, err := parseURL(ref, u, nil, 0)
	if err != nil {
		return nil, &Error{"parse", ref, err}
	}
	return parsed, nil
}

func (u *URL) MarshalBinary() (text []byte, err error) {
	return []byte(u.Href()), nil
}

func (u *URL) UnmarshalBinary(text []byte) error {
	u1, err := Parse(string(text))
	if err != nil {
		return err
	}
	u.adoptRecord(u1)
	u.syncSearchParams()
	return nil
}

// MarshalJSON encodes the URL as its href, matching the JSON form of
// the web-platform URL object.
func (u *URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Href())
}

func (u *URL) UnmarshalJSON(data []byte) error {
	var rawurl string
	if err := json.Unmarshal(data, &rawurl); err != nil {
		return err
	}
	return u.UnmarshalBinary([]byte(rawurl))
}

// cannotHaveCredentials reports whether username, password and port
// mutations are inhibited: no host, an opaque path, or a file URL.
func (u *URL) cannotHaveCredentials() bool {
	return u.host.Type == HostNone || u.cannotBeABase || u.scheme == "file"
}

// adoptRecord copies the record fields of next into u, keeping u's
// container binding alive.
func (u *URL) adoptRecord(next *URL) {
	u.scheme = next.scheme
	u.username = next.username
	u.password = next.password
	u.host = next.host
	u.port = next.port
	u.path = next.path
	u.query = next.query
	u.fragment = next.fragment
	u.cannotBeABase = next.cannotBeABase
	u.validationErrors = next.validationErrors
}

// syncSearchParams rebuilds the bound container from the current query.
func (u *URL) syncSearchParams() {
	if u.searchParams == nil {
		return
	}
	if u.query == nil {
		u.searchParams.pairs = u.searchParams.pairs[:0]
		return
	}
	u.searchParams.pairs = parseURLEncoded(*u.query)
}
