/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package url

import (
	"strconv"
	"strings"
)

func isASCIIAlpha(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isASCIIDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isASCIIAlphanumeric(c rune) bool {
	return isASCIIAlpha(c) || isASCIIDigit(c)
}

// A Windows drive letter is an ASCII alpha followed by ':' or '|'; the
// normalized form requires ':'.
func isWindowsDriveLetter(s string) bool {
	return len(s) == 2 && isASCIIAlpha(rune(s[0])) && (s[1] == ':' || s[1] == '|')
}

func isNormalizedWindowsDriveLetter(s string) bool {
	return len(s) == 2 && isASCIIAlpha(rune(s[0])) && s[1] == ':'
}

// startsWithWindowsDriveLetter reports whether the input from position i
// begins with a Windows drive letter that is either the whole remainder
// or followed by '/', '\', '?' or '#'.
func startsWithWindowsDriveLetter(in []rune, i int) bool {
	if len(in)-i < 2 {
		return false
	}
	if !isASCIIAlpha(in[i]) || (in[i+1] != ':' && in[i+1] != '|') {
		return false
	}
	if len(in)-i == 2 {
		return true
	}
	switch in[i+2] {
	case '/', '\\', '?', '#':
		return true
	}
	return false
}

func isSingleDot(s string) bool {
	if s == "." {
		return true
	}
	return len(s) == 3 && s[0] == '%' && s[1] == '2' && (s[2] == 'e' || s[2] == 'E')
}

func isDoubleDot(s string) bool {
	switch len(s) {
	case 2:
		return s == ".."
	case 4:
		return (s[0] == '.' && isSingleDot(s[1:])) ||
			(isSingleDot(s[:3]) && s[3] == '.')
	case 6:
		return isSingleDot(s[:3]) && isSingleDot(s[3:])
	}
	return false
}

// shortenPath removes the last path segment, except that the drive
// letter of a file URL with a single-segment path is kept.
func shortenPath(u *URL) {
	if len(u.path) == 0 {
		return
	}
	if u.scheme == "file" && len(u.path) == 1 && isNormalizedWindowsDriveLetter(u.path[0]) {
		return
	}
	u.path = u.path[:len(u.path)-1]
}

func (u *URL) includesCredentials() bool {
	return u.username != "" || u.password != ""
}

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	s := *p
	return &s
}

func clonePort(p *uint16) *uint16 {
	if p == nil {
		return nil
	}
	n := *p
	return &n
}

func clonePath(path []string) []string {
	return append([]string(nil), path...)
}

// twoHexAhead reports whether the two code points after position i are
// hex digits.
func twoHexAhead(in []rune, i int) bool {
	return i+2 < len(in) &&
		in[i+1] < 0x80 && ishex(byte(in[i+1])) &&
		in[i+2] < 0x80 && ishex(byte(in[i+2]))
}

// parseURL is the basic URL parser: a single cursor over the input code
// points, switching on an explicit state. With url == nil a fresh
// record is built and the input is fully trimmed first; with url given
// the caller is a component setter, the record mutates in place and
// override selects the starting state. A nil error means the record is
// committed; early returns under an override leave the untouched
// remainder of the record as it was.
func parseURL(input string, base *URL, url *URL, override state) (*URL, error) {
	if url == nil {
		url = &URL{}
		trimmed := strings.TrimFunc(input, func(r rune) bool { return r <= 0x20 })
		if trimmed != input {
			url.validationErrors = append(url.validationErrors, "leading or trailing control or space")
			input = trimmed
		}
	}
	verr := func(msg string) {
		url.validationErrors = append(url.validationErrors, msg)
	}
	if strings.ContainsAny(input, "\t\n\r") {
		verr("tab or newline in input")
		input = strings.Map(func(r rune) rune {
			if r == '\t' || r == '\n' || r == '\r' {
				return -1
			}
			return r
		}, input)
	}

	in := []rune(input)
	st := override
	if st == 0 {
		st = stateSchemeStart
	}
	var buffer []rune
	atFlag := false
	bracketFlag := false
	passwordTokenSeen := false
	pointer := 0

	for {
		c := eof
		if pointer >= 0 && pointer < len(in) {
			c = in[pointer]
		}

		switch st {
		case stateSchemeStart:
			if isASCIIAlpha(c) {
				buffer = append(buffer, lower(c))
				st = stateScheme
			} else if override == 0 {
				st = stateNoScheme
				pointer--
			} else {
				verr("scheme start expected an ASCII alpha")
				return nil, errInvalidScheme
			}

		case stateScheme:
			if isASCIIAlphanumeric(c) || c == '+' || c == '-' || c == '.' {
				buffer = append(buffer, lower(c))
			} else if c == ':' {
				scheme := string(buffer)
				if override != 0 {
					if isSpecialScheme(url.scheme) != isSpecialScheme(scheme) {
						return url, nil
					}
					if scheme == "file" && (url.includesCredentials() || url.port != nil) {
						return url, nil
					}
					if url.scheme == "file" && url.host.Type == HostEmpty {
						return url, nil
					}
					url.scheme = scheme
					if d, ok := defaultPort(url.scheme); ok && url.port != nil && *url.port == d {
						url.port = nil
					}
					return url, nil
				}
				url.scheme = scheme
				buffer = buffer[:0]
				if url.scheme == "file" {
					if !remainingStartsWith(in, pointer, "//") {
						verr("expected // after file:")
					}
					st = stateFile
				} else if url.isSpecial() && base != nil && base.scheme == url.scheme {
					st = stateSpecialRelativeOrAuthority
				} else if url.isSpecial() {
					st = stateSpecialAuthoritySlashes
				} else if remainingStartsWith(in, pointer, "/") {
					st = statePathOrAuthority
					pointer++
				} else {
					url.cannotBeABase = true
					url.path = append(url.path, "")
					st = stateCannotBeABasePath
				}
			} else if override == 0 {
				buffer = buffer[:0]
				st = stateNoScheme
				pointer = -1
			} else {
				verr("invalid code point in scheme")
				return nil, errInvalidScheme
			}

		case stateNoScheme:
			if base == nil || (base.cannotBeABase && c != '#') {
				verr("missing scheme and no usable base")
				return nil, errNoBase
			} else if base.cannotBeABase && c == '#' {
				url.scheme = base.scheme
				url.path = clonePath(base.path)
				url.query = cloneStr(base.query)
				url.fragment = new(string)
				url.cannotBeABase = true
				st = stateFragment
			} else if base.scheme != "file" {
				st = stateRelative
				pointer--
			} else {
				st = stateFile
				pointer--
			}

		case stateSpecialRelativeOrAuthority:
			if c == '/' && remainingStartsWith(in, pointer, "/") {
				st = stateSpecialAuthorityIgnoreSlashes
				pointer++
			} else {
				verr("expected // after special scheme")
				st = stateRelative
				pointer--
			}

		case statePathOrAuthority:
			if c == '/' {
				st = stateAuthority
			} else {
				st = statePath
				pointer--
			}

		case stateRelative:
			url.scheme = base.scheme
			switch c {
			case eof:
				url.username = base.username
				url.password = base.password
				url.host = base.host
				url.port = clonePort(base.port)
				url.path = clonePath(base.path)
				url.query = cloneStr(base.query)
			case '/':
				st = stateRelativeSlash
			case '?':
				url.username = base.username
				url.password = base.password
				url.host = base.host
				url.port = clonePort(base.port)
				url.path = clonePath(base.path)
				url.query = new(string)
				st = stateQuery
			case '#':
				url.username = base.username
				url.password = base.password
				url.host = base.host
				url.port = clonePort(base.port)
				url.path = clonePath(base.path)
				url.query = cloneStr(base.query)
				url.fragment = new(string)
				st = stateFragment
			default:
				if url.isSpecial() && c == '\\' {
					verr(`'\' treated as '/'`)
					st = stateRelativeSlash
				} else {
					url.username = base.username
					url.password = base.password
					url.host = base.host
					url.port = clonePort(base.port)
					url.path = clonePath(base.path)
					shortenPath(url)
					st = statePath
					pointer--
				}
			}

		case stateRelativeSlash:
			if url.isSpecial() && (c == '/' || c == '\\') {
				if c == '\\' {
					verr(`'\' treated as '/'`)
				}
				st = stateSpecialAuthorityIgnoreSlashes
			} else if c == '/' {
				st = stateAuthority
			} else {
				url.username = base.username
				url.password = base.password
				url.host = base.host
				url.port = clonePort(base.port)
				st = statePath
				pointer--
			}

		case stateSpecialAuthoritySlashes:
			if c == '/' && remainingStartsWith(in, pointer, "/") {
				st = stateSpecialAuthorityIgnoreSlashes
				pointer++
			} else {
				verr("expected //")
				st = stateSpecialAuthorityIgnoreSlashes
				pointer--
			}

		case stateSpecialAuthorityIgnoreSlashes:
			if c != '/' && c != '\\' {
				st = stateAuthority
				pointer--
			} else {
				verr("extra slash before authority")
			}

		case stateAuthority:
			if c == '@' {
				verr("'@' in authority")
				if atFlag {
					buffer = append([]rune("%40"), buffer...)
				}
				atFlag = true
				for _, bc := range buffer {
					if bc == ':' && !passwordTokenSeen {
						passwordTokenSeen = true
						continue
					}
					encoded := escapeRune(bc, encodeUserinfo)
					if passwordTokenSeen {
						url.password += encoded
					} else {
						url.username += encoded
					}
				}
				buffer = buffer[:0]
			} else if c == eof || c == '/' || c == '?' || c == '#' ||
				(url.isSpecial() && c == '\\') {
				if atFlag && len(buffer) == 0 {
					verr("credentials followed by empty host")
					return nil, errCredentialsHost
				}
				pointer -= len(buffer) + 1
				buffer = buffer[:0]
				st = stateHost
			} else {
				buffer = append(buffer, c)
			}

		case stateHost, stateHostname:
			if override != 0 && url.scheme == "file" {
				pointer--
				st = stateFileHost
			} else if c == ':' && !bracketFlag {
				if len(buffer) == 0 {
					verr("empty host before port")
					return nil, errEmptyHost
				}
				host, err := parseHost(string(buffer), url.isSpecial())
				if err != nil {
					return nil, err
				}
				url.host = host
				buffer = buffer[:0]
				st = statePort
				if override == stateHostname {
					return url, nil
				}
			} else if c == eof || c == '/' || c == '?' || c == '#' ||
				(url.isSpecial() && c == '\\') {
				pointer--
				if url.isSpecial() && len(buffer) == 0 {
					verr("empty host for special scheme")
					return nil, errEmptyHost
				}
				if override != 0 && len(buffer) == 0 &&
					(url.includesCredentials() || url.port != nil) {
					verr("cannot clear host while credentials or port are set")
					return url, nil
				}
				host, err := parseHost(string(buffer), url.isSpecial())
				if err != nil {
					return nil, err
				}
				url.host = host
				buffer = buffer[:0]
				st = statePathStart
				if override != 0 {
					return url, nil
				}
			} else {
				if c == '[' {
					bracketFlag = true
				}
				if c == ']' {
					bracketFlag = false
				}
				buffer = append(buffer, c)
			}

		case statePort:
			if isASCIIDigit(c) {
				buffer = append(buffer, c)
			} else if c == eof || c == '/' || c == '?' || c == '#' ||
				(url.isSpecial() && c == '\\') || override != 0 {
				if len(buffer) > 0 {
					n, err := strconv.Atoi(string(buffer))
					if err != nil || n > 65535 {
						verr("port out of range")
						return nil, errPortOutOfRange
					}
					port := uint16(n)
					if d, ok := defaultPort(url.scheme); ok && d == port {
						url.port = nil
					} else {
						url.port = &port
					}
					buffer = buffer[:0]
				}
				if override != 0 {
					return url, nil
				}
				st = statePathStart
				pointer--
			} else {
				verr("invalid code point in port")
				return nil, errInvalidPort
			}

		case stateFile:
			url.scheme = "file"
			if c == '/' || c == '\\' {
				if c == '\\' {
					verr(`'\' treated as '/'`)
				}
				st = stateFileSlash
			} else if base != nil && base.scheme == "file" {
				switch c {
				case eof:
					url.host = base.host
					url.path = clonePath(base.path)
					url.query = cloneStr(base.query)
				case '?':
					url.host = base.host
					url.path = clonePath(base.path)
					url.query = new(string)
					st = stateQuery
				case '#':
					url.host = base.host
					url.path = clonePath(base.path)
					url.query = cloneStr(base.query)
					url.fragment = new(string)
					st = stateFragment
				default:
					if !startsWithWindowsDriveLetter(in, pointer) {
						url.host = base.host
						url.path = clonePath(base.path)
						shortenPath(url)
					} else {
						verr("unexpected Windows drive letter")
					}
					st = statePath
					pointer--
				}
			} else {
				st = statePath
				pointer--
			}

		case stateFileSlash:
			if c == '/' || c == '\\' {
				if c == '\\' {
					verr(`'\' treated as '/'`)
				}
				st = stateFileHost
			} else {
				if base != nil && base.scheme == "file" &&
					!startsWithWindowsDriveLetter(in, pointer) {
					if len(base.path) > 0 && isNormalizedWindowsDriveLetter(base.path[0]) {
						// Windows drive letters are relative to the
						// drive, not the whole base path.
						url.path = append(url.path, base.path[0])
					} else {
						url.host = base.host
					}
				}
				st = statePath
				pointer--
			}

		case stateFileHost:
			if c == eof || c == '/' || c == '\\' || c == '?' || c == '#' {
				pointer--
				if override == 0 && isWindowsDriveLetter(string(buffer)) {
					verr("Windows drive letter is not a host")
					st = statePath
				} else if len(buffer) == 0 {
					url.host = Host{Type: HostEmpty}
					if override != 0 {
						return url, nil
					}
					st = statePathStart
				} else {
					host, err := parseHost(string(buffer), url.isSpecial())
					if err != nil {
						return nil, err
					}
					if host.Type == HostDomain && host.Value == "localhost" {
						host = Host{Type: HostEmpty}
					}
					url.host = host
					if override != 0 {
						return url, nil
					}
					buffer = buffer[:0]
					st = statePathStart
				}
			} else {
				buffer = append(buffer, c)
			}

		case statePathStart:
			if url.isSpecial() {
				if c == '\\' {
					verr(`'\' treated as '/'`)
				}
				st = statePath
				if c != '/' && c != '\\' {
					pointer--
				}
			} else if override == 0 && c == '?' {
				url.query = new(string)
				st = stateQuery
			} else if override == 0 && c == '#' {
				url.fragment = new(string)
				st = stateFragment
			} else if c != eof {
				st = statePath
				if c != '/' {
					pointer--
				}
			}

		case statePath:
			if c == eof || c == '/' || (url.isSpecial() && c == '\\') ||
				(override == 0 && (c == '?' || c == '#')) {
				if url.isSpecial() && c == '\\' {
					verr(`'\' treated as '/'`)
				}
				segment := string(buffer)
				slash := c == '/' || (url.isSpecial() && c == '\\')
				switch {
				case isDoubleDot(segment):
					shortenPath(url)
					if !slash {
						url.path = append(url.path, "")
					}
				case isSingleDot(segment):
					if !slash {
						url.path = append(url.path, "")
					}
				default:
					if url.scheme == "file" && len(url.path) == 0 &&
						isWindowsDriveLetter(segment) {
						if url.host.Type != HostEmpty && url.host.Type != HostNone {
							verr("host dropped for Windows drive letter")
							url.host = Host{Type: HostEmpty}
						}
						segment = segment[:1] + ":"
					}
					url.path = append(url.path, segment)
				}
				buffer = buffer[:0]
				if url.scheme == "file" && (c == eof || c == '?' || c == '#') {
					for len(url.path) > 1 && url.path[0] == "" {
						verr("empty leading path segment in file URL")
						url.path = url.path[1:]
					}
				}
				if c == '?' {
					url.query = new(string)
					st = stateQuery
				}
				if c == '#' {
					url.fragment = new(string)
					st = stateFragment
				}
			} else {
				if !isURLCodePoint(c) && c != '%' {
					verr("code point not allowed in URL")
				}
				if c == '%' && !twoHexAhead(in, pointer) {
					verr("'%' not followed by two hex digits")
				}
				buffer = append(buffer, []rune(escapeRune(c, encodeDefault))...)
			}

		case stateCannotBeABasePath:
			if c == '?' {
				url.query = new(string)
				st = stateQuery
			} else if c == '#' {
				url.fragment = new(string)
				st = stateFragment
			} else {
				if c != eof && !isURLCodePoint(c) && c != '%' {
					verr("code point not allowed in URL")
				}
				if c == '%' && !twoHexAhead(in, pointer) {
					verr("'%' not followed by two hex digits")
				}
				if c != eof {
					url.path[0] += escapeRune(c, encodeC0)
				}
			}

		case stateQuery:
			if c == eof || (override == 0 && c == '#') {
				if c == '#' {
					url.fragment = new(string)
					st = stateFragment
				}
			} else {
				if !isURLCodePoint(c) && c != '%' {
					verr("code point not allowed in URL")
				}
				if c == '%' && !twoHexAhead(in, pointer) {
					verr("'%' not followed by two hex digits")
				}
				if url.query == nil {
					url.query = new(string)
				}
				*url.query += escapeRune(c, encodeQuery)
			}

		case stateFragment:
			switch c {
			case eof:
				// done
			case 0x0000:
				verr("NUL in fragment")
			default:
				if !isURLCodePoint(c) && c != '%' {
					verr("code point not allowed in URL")
				}
				if c == '%' && !twoHexAhead(in, pointer) {
					verr("'%' not followed by two hex digits")
				}
				if url.fragment == nil {
					url.fragment = new(string)
				}
				*url.fragment += escapeRune(c, encodeC0)
			}
		}

		if pointer >= len(in) {
			break
		}
		pointer++
	}
	return url, nil
}

func lower(c rune) rune {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// remainingStartsWith reports whether the code points after position i
// begin with the ASCII string s.
func remainingStartsWith(in []rune, i int, s string) bool {
	if i+1+len(s) > len(in) {
		return false
	}
	for j := 0; j < len(s); j++ {
		if in[i+1+j] != rune(s[j]) {
			return false
		}
	}
	return true
}
