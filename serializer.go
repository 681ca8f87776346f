/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package url

import (
	"strconv"

	"github.com/valyala/bytebufferpool"
)

// serializeURL reassembles the record into its canonical textual form.
// The output round-trips: feeding it back to the parser rebuilds the
// record field by field.
func serializeURL(u *URL, excludeFragment bool) string {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)

	bb.WriteString(u.scheme)
	bb.WriteByte(':')
	if u.host.Type != HostNone {
		bb.WriteString("//")
		if u.includesCredentials() {
			bb.WriteString(u.username)
			if u.password != "" {
				bb.WriteByte(':')
				bb.WriteString(u.password)
			}
			bb.WriteByte('@')
		}
		bb.WriteString(serializeHost(u.host))
		if u.port != nil {
			bb.WriteByte(':')
			bb.WriteString(strconv.Itoa(int(*u.port)))
		}
	} else if u.scheme == "file" {
		bb.WriteString("//")
	}
	if u.cannotBeABase {
		bb.WriteString(u.path[0])
	} else {
		if u.host.Type == HostNone && u.scheme != "file" && len(u.path) > 1 && u.path[0] == "" {
			// A leading empty segment would otherwise read back as "//host".
			bb.WriteString("/.")
		}
		for _, segment := range u.path {
			bb.WriteByte('/')
			bb.WriteString(segment)
		}
	}
	if u.query != nil {
		bb.WriteByte('?')
		bb.WriteString(*u.query)
	}
	if !excludeFragment && u.fragment != nil {
		bb.WriteByte('#')
		bb.WriteString(*u.fragment)
	}
	return bb.String()
}
