// Package cpbridge bridges an orchestrating agent's function calls to a set of
// registered competitive-programming tools.
//
// # Overview
//
// An orchestrator (an LLM runtime, an HTTP client) produces tool calls as a tool
// name plus a mapping of argument values. This package turns that call into a
// concrete handler invocation: resolve → coerce and validate arguments (against
// the same JSON Schema exported to the orchestrator) → execute → wrap the result
// into a transport-agnostic envelope of text and image parts.
//
// Pipeline: Descriptor + Handler → Register (schema compile) → Registry →
// Dispatch (coerce, default, validate, call) → Result.
//
// # Key concepts
//
//   - Single Source of Truth: one declarative parameter list drives both the
//     schema shown to the orchestrator and the validation of incoming calls.
//   - Opaque media: image parts carry bytes plus a MIME type; the bridge never
//     inspects them.
//   - Safe errors: ArgumentError carries display-safe text back to the caller;
//     HandlerError hides internal detail behind a generic message.
//
// See Descriptor, Call, Result for the core types, and NewRegistry / Register
// for setup.
//
// # Example
//
//	desc := cpbridge.Descriptor{
//	    Name:        "echo",
//	    Description: "Echo a message",
//	    Params: []cpbridge.Param{
//	        {Name: "message", Type: cpbridge.TypeString, Required: true},
//	    },
//	}
//	reg := cpbridge.NewRegistry()
//	err := reg.Register(desc, func(_ context.Context, args cpbridge.Args) (*cpbridge.Result, error) {
//	    return cpbridge.Text(args.String("message")), nil
//	})
//	if err != nil { ... }
//	res, err := reg.Dispatch(ctx, cpbridge.Call{Name: "echo", Arguments: map[string]any{"message": "hi"}})
package cpbridge
