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

package etcd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/routekv/log"
)

func TestConfigSanitize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := &Config{Endpoints: []string{"http://127.0.0.1:2379"}}
		config.Sanitize()
		assert.Equal(t, context.Background(), config.Context)
		assert.Equal(t, 5*time.Second, config.DialTimeout)
		assert.Equal(t, 5*time.Second, config.Timeout)
		assert.Equal(t, log.DefaultLogger, config.Logger)
	})

	t.Run("explicit values kept", func(t *testing.T) {
		ctx := context.TODO()
		config := &Config{
			Context:     ctx,
			Endpoints:   []string{"http://127.0.0.1:2379"},
			DialTimeout: time.Second,
			Timeout:     2 * time.Second,
			Logger:      log.DiscardLogger,
		}
		config.Sanitize()
		assert.Equal(t, ctx, config.Context)
		assert.Equal(t, time.Second, config.DialTimeout)
		assert.Equal(t, 2*time.Second, config.Timeout)
		assert.Equal(t, log.DiscardLogger, config.Logger)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		config := &Config{Endpoints: []string{"http://127.0.0.1:2379"}}
		config.Sanitize()
		require.NoError(t, config.Validate())
	})

	t.Run("missing endpoints", func(t *testing.T) {
		config := &Config{}
		config.Sanitize()
		require.Error(t, config.Validate())
	})

	t.Run("non-positive timeouts", func(t *testing.T) {
		config := &Config{
			Endpoints:   []string{"http://127.0.0.1:2379"},
			DialTimeout: -time.Second,
			Timeout:     -time.Second,
		}
		require.Error(t, config.Validate())
	})
}
