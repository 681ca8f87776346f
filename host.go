/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package url

import (
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

// Code points that may not appear in a domain host once decoded.
const forbiddenHostChars = "\x00\t\n\r #%/:<>?@[\\]^|"

// parseHost turns the host buffer accumulated by the state machine into
// a tagged Host value. Hosts of special schemes go through
// percent-decoding, domain-to-ASCII and the IPv4 parser; hosts of
// non-special schemes stay opaque and are only percent-encoded.
func parseHost(input string, special bool) (Host, error) {
	if input == "" {
		return Host{Type: HostEmpty}, nil
	}
	if strings.HasPrefix(input, "[") {
		if !strings.HasSuffix(input, "]") {
			return Host{}, errUnclosedIPv6
		}
		return parseIPv6(input[1 : len(input)-1])
	}
	if !special {
		return Host{Type: HostOpaque, Value: escape(input, encodeDefault)}, nil
	}
	domain, err := domainToASCII(percentDecode(input))
	if err != nil {
		return Host{}, err
	}
	if i := strings.IndexAny(domain, forbiddenHostChars); i >= 0 {
		return Host{}, InvalidHostError(domain[i : i+1])
	}
	if addr, ok, err := parseIPv4(domain); err != nil {
		return Host{}, err
	} else if ok {
		return Host{Type: HostIPv4, Value: serializeIPv4(addr)}, nil
	}
	return Host{Type: HostDomain, Value: domain}, nil
}

// domainToASCII maps a domain to its ASCII form. ASCII input is only
// lowercased; everything else goes through IDNA processing.
func domainToASCII(domain string) (string, error) {
	ascii := true
	for i := 0; i < len(domain); i++ {
		if domain[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return strings.ToLower(domain), nil
	}
	out, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return "", InvalidHostError(domain)
	}
	return out, nil
}

// serializeHost emits the textual form of a host: the stored payload,
// bracketed for IPv6, empty for the empty host.
func serializeHost(h Host) string {
	if h.Type == HostIPv6 {
		return "[" + h.Value + "]"
	}
	return h.Value
}

// parseIPv4Number parses one dot-separated part with WHATWG radix
// detection: 0x/0X selects hex, a remaining leading zero selects octal.
// The bool result distinguishes "not a number" (the whole host stays a
// domain) from a numeric overflow, which the caller turns into failure.
func parseIPv4Number(part string) (uint64, bool) {
	radix := 10
	if len(part) >= 2 && (strings.HasPrefix(part, "0x") || strings.HasPrefix(part, "0X")) {
		part = part[2:]
		radix = 16
	} else if len(part) >= 2 && part[0] == '0' {
		part = part[1:]
		radix = 8
	}
	if part == "" {
		return 0, true
	}
	n, err := strconv.ParseUint(part, radix, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			// Numeric but too large: still an IPv4 candidate.
			return 1 << 32, true
		}
		return 0, false
	}
	return n, true
}

// parseIPv4 attempts to read domain as an IPv4 address. ok reports
// whether the input was numeric at all; a numeric input whose value
// does not fit returns an error instead.
func parseIPv4(domain string) (uint32, bool, error) {
	parts := strings.Split(domain, ".")
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) > 4 {
		return 0, false, nil
	}
	numbers := make([]uint64, 0, 4)
	for _, part := range parts {
		if part == "" {
			return 0, false, nil
		}
		n, ok := parseIPv4Number(part)
		if !ok {
			return 0, false, nil
		}
		numbers = append(numbers, n)
	}
	last := numbers[len(numbers)-1]
	for _, n := range numbers[:len(numbers)-1] {
		if n > 255 {
			return 0, false, errInvalidIPv4
		}
	}
	if last >= 1<<(8*uint(5-len(numbers))) {
		return 0, false, errInvalidIPv4
	}
	addr := uint32(last)
	for i, n := range numbers[:len(numbers)-1] {
		addr += uint32(n) << (8 * uint(3-i))
	}
	return addr, true, nil
}

func serializeIPv4(addr uint32) string {
	var sb strings.Builder
	for i := 3; i >= 0; i-- {
		sb.WriteString(strconv.FormatUint(uint64(addr>>(8*uint(i)))&0xFF, 10))
		if i > 0 {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// parseIPv6 reads the textual form between the brackets, handling '::'
// compression and an embedded dotted IPv4 tail.
func parseIPv6(input string) (Host, error) {
	var address [8]uint16
	pieceIndex := 0
	compress := -1
	in := []rune(input)
	pointer := 0

	cur := func() rune {
		if pointer < len(in) {
			return in[pointer]
		}
		return eof
	}

	if cur() == ':' {
		if pointer+1 >= len(in) || in[pointer+1] != ':' {
			return Host{}, errInvalidIPv6
		}
		pointer += 2
		pieceIndex++
		compress = pieceIndex
	}
	for cur() != eof {
		if pieceIndex == 8 {
			return Host{}, errInvalidIPv6
		}
		if cur() == ':' {
			if compress >= 0 {
				return Host{}, errInvalidIPv6
			}
			pointer++
			pieceIndex++
			compress = pieceIndex
			continue
		}
		value, length := 0, 0
		for length < 4 && cur() != eof && ishex(byte(cur())) && cur() < 0x80 {
			value = value*0x10 + int(unhex(byte(cur())))
			pointer++
			length++
		}
		if cur() == '.' {
			if length == 0 {
				return Host{}, errInvalidIPv6
			}
			pointer -= length
			if pieceIndex > 6 {
				return Host{}, errInvalidIPv6
			}
			numbersSeen := 0
			for cur() != eof {
				ipv4Piece := -1
				if numbersSeen > 0 {
					if cur() == '.' && numbersSeen < 4 {
						pointer++
					} else {
						return Host{}, errInvalidIPv6
					}
				}
				if cur() < '0' || cur() > '9' {
					return Host{}, errInvalidIPv6
				}
				for cur() >= '0' && cur() <= '9' {
					number := int(cur() - '0')
					switch {
					case ipv4Piece < 0:
						ipv4Piece = number
					case ipv4Piece == 0:
						return Host{}, errInvalidIPv6
					default:
						ipv4Piece = ipv4Piece*10 + number
					}
					if ipv4Piece > 255 {
						return Host{}, errInvalidIPv6
					}
					pointer++
				}
				address[pieceIndex] = address[pieceIndex]*0x100 + uint16(ipv4Piece)
				numbersSeen++
				if numbersSeen == 2 || numbersSeen == 4 {
					pieceIndex++
				}
			}
			if numbersSeen != 4 {
				return Host{}, errInvalidIPv6
			}
			break
		}
		if cur() == ':' {
			pointer++
			if cur() == eof {
				return Host{}, errInvalidIPv6
			}
		} else if cur() != eof {
			return Host{}, errInvalidIPv6
		}
		address[pieceIndex] = uint16(value)
		pieceIndex++
	}
	if compress >= 0 {
		swaps := pieceIndex - compress
		pieceIndex = 7
		for pieceIndex != 0 && swaps > 0 {
			address[pieceIndex], address[compress+swaps-1] = address[compress+swaps-1], address[pieceIndex]
			pieceIndex--
			swaps--
		}
	} else if pieceIndex != 8 {
		return Host{}, errInvalidIPv6
	}
	return Host{Type: HostIPv6, Value: serializeIPv6(address)}, nil
}

// serializeIPv6 emits the canonical compressed form: the longest run of
// two or more zero pieces collapses to '::'.
func serializeIPv6(address [8]uint16) string {
	compress, compressLen := -1, 1
	for i := 0; i < 8; i++ {
		if address[i] != 0 {
			continue
		}
		length := 0
		for j := i; j < 8 && address[j] == 0; j++ {
			length++
		}
		if length > compressLen {
			compress, compressLen = i, length
		}
	}
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		if i == compress {
			if i == 0 {
				sb.WriteByte(':')
			}
			sb.WriteByte(':')
			i += compressLen - 1
			continue
		}
		sb.WriteString(strconv.FormatUint(uint64(address[i]), 16))
		if i < 7 {
			sb.WriteByte(':')
		}
	}
	return sb.String()
}
