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

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	t.Run("no violations", func(t *testing.T) {
		err := New().
			AddAssertion(true, "should not fail").
			AddValidator(NewEmptyStringValidator("field", "value")).
			Validate()
		require.NoError(t, err)
	})

	t.Run("accumulates all errors", func(t *testing.T) {
		err := New(AllErrors()).
			AddAssertion(false, "first violation").
			AddAssertion(false, "second violation").
			Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "first violation")
		assert.Contains(t, err.Error(), "second violation")
	})

	t.Run("fail fast stops on first error", func(t *testing.T) {
		err := New(FailFast()).
			AddAssertion(false, "first violation").
			AddAssertion(false, "second violation").
			Validate()
		require.Error(t, err)
		assert.EqualError(t, err, "first violation")
	})
}

func TestBooleanValidator(t *testing.T) {
	require.NoError(t, NewBooleanValidator(true, "boom").Validate())
	assert.EqualError(t, NewBooleanValidator(false, "boom").Validate(), "boom")
}

func TestEmptyStringValidator(t *testing.T) {
	require.NoError(t, NewEmptyStringValidator("field", "set").Validate())
	assert.EqualError(t, NewEmptyStringValidator("field", "  ").Validate(), "the [field] is required")
}
