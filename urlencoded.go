/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package url

import (
	"strings"

	"github.com/valyala/bytebufferpool"
)

// Bytes an application/x-www-form-urlencoded serializer emits verbatim:
// ASCII alphanumerics and '*', '-', '.', '_'. Space turns into '+',
// everything else into %HH.
//
//	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, A, B, C, D, E, F
var formNoEscape = [128]byte{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x00 - 0x0F
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x10 - 0x1F
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, // 0x20 - 0x2F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, // 0x30 - 0x3F
	0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x40 - 0x4F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 1, // 0x50 - 0x5F
	0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x60 - 0x6F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, // 0x70 - 0x7F
}

// parseURLEncoded splits an application/x-www-form-urlencoded string
// into its ordered name/value pairs. Empty segments between '&' are
// dropped; a segment without '=' is a name with an empty value; '+'
// reads as space and percent-escapes are decoded in both halves.
func parseURLEncoded(input string) []pair {
	if input == "" {
		return nil
	}
	var pairs []pair
	for _, segment := range strings.Split(input, "&") {
		if segment == "" {
			continue
		}
		name, value, _ := strings.Cut(segment, "=")
		pairs = append(pairs, pair{
			name:  percentDecode(strings.ReplaceAll(name, "+", " ")),
			value: percentDecode(strings.ReplaceAll(value, "+", " ")),
		})
	}
	return pairs
}

// serializeURLEncoded joins pairs as name=value with '&', applying the
// byte policy of formNoEscape.
func serializeURLEncoded(pairs []pair) string {
	if len(pairs) == 0 {
		return ""
	}
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)
	for i := range pairs {
		if i > 0 {
			bb.WriteByte('&')
		}
		appendFormEncoded(bb, pairs[i].name)
		bb.WriteByte('=')
		appendFormEncoded(bb, pairs[i].value)
	}
	return bb.String()
}

func appendFormEncoded(bb *bytebufferpool.ByteBuffer, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ':
			bb.WriteByte('+')
		case c < 0x80 && formNoEscape[c] == 1:
			bb.WriteByte(c)
		default:
			bb.WriteByte('%')
			bb.WriteByte(upperhex[c>>4])
			bb.WriteByte(upperhex[c&15])
		}
	}
}

// QueryEscape escapes the string so it can be safely placed inside a
// urlencoded query component: space becomes '+', unsafe bytes %HH.
func QueryEscape(s string) string {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)
	appendFormEncoded(bb, s)
	return bb.String()
}

// QueryUnescape does the inverse transformation of QueryEscape,
// converting '+' into space and decoding %HH escapes. Malformed
// escapes pass through untouched.
func QueryUnescape(s string) string {
	return percentDecode(strings.ReplaceAll(s, "+", " "))
}
