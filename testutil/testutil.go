// Package testutil provides test helpers for cpbridge (e.g. StaticTool).
package testutil

import (
	"context"
	"time"

	"github.com/cpbridge/cpbridge"
)

// StaticTool returns a descriptor/handler pair that answers every call with
// the given text.
func StaticTool(name, text string) (cpbridge.Descriptor, cpbridge.Handler) {
	d := cpbridge.Descriptor{Name: name, Description: "static test tool"}
	h := func(_ context.Context, _ cpbridge.Args) (*cpbridge.Result, error) {
		return cpbridge.Text(text), nil
	}
	return d, h
}

// NewTestRegistry returns a Registry with a long timeout and panic recovery
// enabled, suitable for tests.
func NewTestRegistry(opts ...cpbridge.RegistryOption) *cpbridge.Registry {
	base := []cpbridge.RegistryOption{
		cpbridge.WithDispatchTimeout(30 * time.Second),
		cpbridge.WithRecoverPanics(true),
	}
	return cpbridge.NewRegistry(append(base, opts...)...)
}
