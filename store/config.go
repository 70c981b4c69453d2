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

	"github.com/tochemey/routekv/backend"
	"github.com/tochemey/routekv/internal/codec"
	"github.com/tochemey/routekv/internal/validation"
	"github.com/tochemey/routekv/log"
)

const (
	defaultJupyterHubPrefix = "/jupyterhub"
	defaultTraefikPrefix    = "/traefik"
)

// Config holds configuration for the route store.
type Config struct {
	// Client is the transactional KV backend holding the routing table.
	// The store owns the client for its whole lifetime and closes it during
	// Close.
	Client backend.Client
	// JupyterHubPrefix namespaces the route bookkeeping keys.
	// Defaults to /jupyterhub.
	JupyterHubPrefix string
	// TraefikPrefix namespaces the proxy-facing dynamic configuration keys.
	// Defaults to /traefik.
	TraefikPrefix string
	// Logger is the logger used by the store. Defaults to log.DefaultLogger.
	Logger log.Logger
}

var _ validation.Validator = (*Config)(nil)

// Validate implements validation.Validator.
func (c *Config) Validate() error {
	return validation.New(validation.FailFast()).
		AddAssertion(c.Client != nil, "Client is required").
		AddAssertion(c.JupyterHubPrefix != c.TraefikPrefix, "JupyterHubPrefix and TraefikPrefix must differ").
		Validate()
}

// Sanitize fills in defaults for unset optional fields and strips trailing
// separators from the prefixes so key joins stay canonical.
func (c *Config) Sanitize() {
	if strings.TrimSpace(c.JupyterHubPrefix) == "" {
		c.JupyterHubPrefix = defaultJupyterHubPrefix
	}

	if strings.TrimSpace(c.TraefikPrefix) == "" {
		c.TraefikPrefix = defaultTraefikPrefix
	}

	c.JupyterHubPrefix = trimPrefix(c.JupyterHubPrefix)
	c.TraefikPrefix = trimPrefix(c.TraefikPrefix)

	if c.Logger == nil {
		c.Logger = log.DefaultLogger
	}
}

func trimPrefix(prefix string) string {
	trimmed := strings.TrimRight(prefix, codec.Separator)
	if trimmed == "" {
		return prefix
	}
	return trimmed
}
