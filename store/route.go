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

package store

import (
	"strings"

	"github.com/tochemey/routekv/internal/validation"
)

// RouteKeys carries the proxy-facing descriptor key paths written and
// deleted alongside a route. Their layout is defined by the proxy's
// dynamic-config schema; the store writes them verbatim inside the same
// transaction as the route bookkeeping keys.
type RouteKeys struct {
	// ServiceAlias is the internal service alias of the target.
	ServiceAlias string
	// ServiceURLPath is the key binding the service alias to the target URL.
	ServiceURLPath string
	// RouterAlias is the internal router alias (informational).
	RouterAlias string
	// RouterServicePath is the key binding the router alias to the service alias.
	RouterServicePath string
	// RouterRulePath is the key holding the router's match rule.
	RouterRulePath string
}

var _ validation.Validator = (*RouteKeys)(nil)

// Validate implements validation.Validator.
func (k *RouteKeys) Validate() error {
	return validation.New(validation.FailFast()).
		AddValidator(validation.NewEmptyStringValidator("ServiceAlias", k.ServiceAlias)).
		AddValidator(validation.NewEmptyStringValidator("ServiceURLPath", k.ServiceURLPath)).
		AddValidator(validation.NewEmptyStringValidator("RouterServicePath", k.RouterServicePath)).
		AddValidator(validation.NewEmptyStringValidator("RouterRulePath", k.RouterRulePath)).
		Validate()
}

// RouteEntry is the logical unit stored per route.
type RouteEntry struct {
	// Routespec is the URL prefix the route applies to.
	Routespec string
	// Target is the backend URL traffic for the routespec is forwarded to.
	Target string
	// Data is the opaque metadata blob associated with the target. Routes
	// sharing a target share this blob.
	Data []byte
}

// NormalizeRoutespec normalizes a routespec to its canonical form by
// ensuring a trailing slash. Specs starting with a slash are path-only;
// anything else is host-based (host.tld/path/).
func NormalizeRoutespec(routespec string) string {
	if routespec == "" {
		return "/"
	}
	if !strings.HasSuffix(routespec, "/") {
		routespec += "/"
	}
	return routespec
}
