package cpbridge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgumentError(t *testing.T) {
	err := NewArgumentError("parameter %q out of range", "count")
	assert.Equal(t, `invalid tool input: parameter "count" out of range`, err.Error())
	assert.True(t, IsArgumentError(err))
	assert.ErrorIs(t, err, ErrInvalidArguments)
}

func TestHandlerError_Display(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	he := &HandlerError{Err: cause}
	assert.Equal(t, "internal error during tool execution", he.Error())
	assert.ErrorIs(t, he, cause)

	he = &HandlerError{Detail: "codeforces: handle not found", Err: cause}
	assert.Equal(t, "tool execution failed: codeforces: handle not found", he.Error())
	// The cause must never leak into the display text.
	assert.NotContains(t, he.Error(), "dial tcp")
}

func TestWrapHandlerError(t *testing.T) {
	assert.NoError(t, wrapHandlerError(nil))

	// Argument and handler errors pass through untouched.
	ae := NewArgumentError("bad input")
	assert.Same(t, error(ae), wrapHandlerError(ae))
	he := &HandlerError{Detail: "upstream said no"}
	assert.Same(t, error(he), wrapHandlerError(he))

	// Everything else becomes an opaque handler error.
	wrapped := wrapHandlerError(errors.New("disk full"))
	require.True(t, IsHandlerError(wrapped))
	assert.Equal(t, "internal error during tool execution", wrapped.Error())
}
