// MIT License
//
// Copyright (c) 2022-2026 Arsene Tochemey Gandote
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package codec translates between logical route identities (routespec,
// target URL) and the flat key paths stored in the KV backend.
//
// Routespecs and targets may contain the key separator, so they are
// percent-escaped before being embedded as key-path segments. The escaping
// scheme is part of the on-disk format shared by every process cooperating
// on the same store and must not change without versioning the key space.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	rkerrors "github.com/tochemey/routekv/errors"
)

// Separator joins the segments of a key path.
const Separator = "/"

const upperhex = "0123456789ABCDEF"

// safe reports whether c may appear verbatim inside an escaped key-path
// segment. The set is the URL "unreserved" characters; everything else,
// the separator and the escape character included, is percent-encoded.
func safe(c byte) bool {
	return 'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z' ||
		'0' <= c && c <= '9' ||
		c == '-' || c == '.' || c == '_' || c == '~'
}

// Escape encodes an arbitrary string into a key-path-safe segment.
// Escape is injective and Unescape is its exact inverse.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if safe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0F])
	}
	return b.String()
}

// Unescape decodes a segment produced by Escape. It fails when the segment
// contains an invalid escape sequence or a byte outside the safe set, which
// indicates data corruption or a writer/reader schema mismatch.
func Unescape(segment string) (string, error) {
	var b strings.Builder
	b.Grow(len(segment))
	for i := 0; i < len(segment); {
		c := segment[i]
		switch {
		case c == '%':
			if i+2 >= len(segment) {
				return "", fmt.Errorf("%w: truncated escape sequence in segment %q", rkerrors.ErrDecode, segment)
			}
			hi, ok1 := unhex(segment[i+1])
			lo, ok2 := unhex(segment[i+2])
			if !ok1 || !ok2 {
				return "", fmt.Errorf("%w: invalid escape sequence %q in segment %q", rkerrors.ErrDecode, segment[i:i+3], segment)
			}
			b.WriteByte(hi<<4 | lo)
			i += 3
		case safe(c):
			b.WriteByte(c)
			i++
		default:
			return "", fmt.Errorf("%w: unescaped byte %q in segment %q", rkerrors.ErrDecode, string(c), segment)
		}
	}
	return b.String(), nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// RouteKey returns the key holding the target of the given routespec.
func RouteKey(jupyterhubPrefix, routespec string) string {
	return strings.Join([]string{jupyterhubPrefix, "routes", Escape(routespec)}, Separator)
}

// TargetKey returns the key holding the opaque data blob of the given target.
func TargetKey(jupyterhubPrefix, target string) string {
	return strings.Join([]string{jupyterhubPrefix, "targets", Escape(target)}, Separator)
}

// RoutesPrefix returns the key prefix covering every route key, used for
// range listing.
func RoutesPrefix(jupyterhubPrefix string) string {
	return strings.Join([]string{jupyterhubPrefix, "routes"}, Separator) + Separator
}

// DecodeRouteKey strips the routes prefix from a raw key read back from the
// store and unescapes the remainder to recover the routespec.
func DecodeRouteKey(jupyterhubPrefix, rawKey string) (string, error) {
	prefix := RoutesPrefix(jupyterhubPrefix)
	segment, found := strings.CutPrefix(rawKey, prefix)
	if !found {
		return "", fmt.Errorf("%w: key %q is not under %q", rkerrors.ErrDecode, rawKey, prefix)
	}
	return Unescape(segment)
}

// Flatten flattens a nested configuration object into the flat key/value
// pairs the proxy's KV provider reads. Nested maps extend the key path,
// slices contribute numeric segments, and leaves are rendered as strings.
// Nil leaves are dropped.
func Flatten(prefix string, config map[string]any) map[string]string {
	flat := make(map[string]string)
	flatten(prefix, config, flat)
	return flat
}

func flatten(prefix string, value any, flat map[string]string) {
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			flatten(prefix+Separator+key, item, flat)
		}
	case map[string]string:
		for key, item := range v {
			flat[prefix+Separator+key] = item
		}
	case []any:
		for i, item := range v {
			flatten(prefix+Separator+strconv.Itoa(i), item, flat)
		}
	case []string:
		for i, item := range v {
			flat[prefix+Separator+strconv.Itoa(i)] = item
		}
	case nil:
	case string:
		flat[prefix] = v
	case bool:
		flat[prefix] = strconv.FormatBool(v)
	case int:
		flat[prefix] = strconv.Itoa(v)
	case int64:
		flat[prefix] = strconv.FormatInt(v, 10)
	case float64:
		flat[prefix] = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		flat[prefix] = fmt.Sprintf("%v", v)
	}
}
