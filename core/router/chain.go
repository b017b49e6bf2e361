package router

import "github.com/dmitrymomot/waypoint/core/handler"

// Position selects the list a middleware stage is registered in.
type Position uint8

const (
	// Before stages run ahead of route lookup.
	Before Position = iota
	// After stages run once the handler has produced a response.
	After
)

// chain holds the ordered before and after stages.
type chain[C handler.Context] struct {
	before []handler.Middleware[C]
	after  []handler.Middleware[C]
}

// register appends stages to the list for pos and returns its new length.
func (c *chain[C]) register(pos Position, mws ...handler.Middleware[C]) int {
	if pos == After {
		c.after = append(c.after, mws...)
		return len(c.after)
	}
	c.before = append(c.before, mws...)
	return len(c.before)
}

func (c *chain[C]) runBefore(ctx C) (C, error) {
	return runStages(c.before, ctx)
}

func (c *chain[C]) runAfter(ctx C) (C, error) {
	return runStages(c.after, ctx)
}

// runStages calls each stage in order. The lock is checked before every
// call, so a stage that halts (or calls ForceSend) ends the loop.
func runStages[C handler.Context](stages []handler.Middleware[C], ctx C) (C, error) {
	for _, mw := range stages {
		if ctx.Locked() {
			break
		}

		res, err := mw(ctx)
		if err != nil {
			return ctx, err
		}
		ctx = applyResult(ctx, res)
	}
	return ctx, nil
}

// applyResult adopts the context carried by res and, for a halt, attaches
// its response and locks.
func applyResult[C handler.Context](ctx C, res handler.Result[C]) C {
	if res.IsZero() {
		return ctx
	}
	ctx = res.Context()
	if res.Halted() {
		ctx.SetResponse(res.Response())
		ctx.ForceSend()
	}
	return ctx
}
