/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package url

import (
	"errors"
	"strconv"
)

func (e *Error) Error() string { return e.Op + " " + e.URL + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

func (e InvalidHostError) Error() string {
	return "invalid character " + strconv.Quote(string(e)) + " in host name"
}

func (e InvalidPairError) Error() string {
	return "pair of length " + strconv.Itoa(int(e)) + " where 2 is required"
}

// Hard parse failures. The basic parser reports these; the public
// surface wraps them in *Error, component setters swallow them. A
// component the parser committed before failing stays committed (the
// host of a host:port value whose port is rejected).
var (
	errNoBase          = errors.New("relative URL without a base")
	errInvalidScheme   = errors.New("invalid scheme")
	errEmptyHost       = errors.New("empty host")
	errCredentialsHost = errors.New("credentials with empty host")
	errInvalidPort     = errors.New("invalid port")
	errPortOutOfRange  = errors.New("port out of range")
	errUnclosedIPv6    = errors.New("unclosed IPv6 address")
	errInvalidIPv6     = errors.New("invalid IPv6 address")
	errInvalidIPv4     = errors.New("invalid IPv4 address")
)
