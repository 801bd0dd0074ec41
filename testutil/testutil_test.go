package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/cpbridge/cpbridge"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStaticTool(t *testing.T) {
	d, h := StaticTool("ping", "pong")
	assert.Equal(t, "ping", d.Name)
	res, err := h(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, cpbridge.TextPart{Text: "pong"}, res.Parts[0])
}

func TestNewTestRegistry(t *testing.T) {
	reg := NewTestRegistry(cpbridge.WithDefaultHandle("tourist"))
	require.NotNil(t, reg)
	reg.MustRegister(StaticTool("ping", "pong"))

	res, err := reg.Dispatch(context.Background(), cpbridge.Call{ID: "1", Name: "ping"})
	require.NoError(t, err)
	assert.False(t, res.Empty())
}
