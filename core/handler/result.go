package handler

// Result is the outcome of a middleware stage: either continue with a
// context, or halt the pipeline with a response.
type Result[C Context] struct {
	ctx      C
	response Response
	halted   bool
	set      bool
}

// Continue passes ctx to the next stage. The returned context replaces the
// one the stage received.
func Continue[C Context](ctx C) Result[C] {
	return Result[C]{ctx: ctx, set: true}
}

// Halt stops the pipeline and sends resp. ctx is locked when the router
// applies the result.
func Halt[C Context](ctx C, resp Response) Result[C] {
	return Result[C]{ctx: ctx, response: resp, halted: true, set: true}
}

// Context returns the context carried by the result.
func (r Result[C]) Context() C {
	return r.ctx
}

// Response returns the halting response, or nil for Continue.
func (r Result[C]) Response() Response {
	return r.response
}

// Halted reports whether the result stops the pipeline.
func (r Result[C]) Halted() bool {
	return r.halted
}

// IsZero reports whether the result was built without Continue or Halt.
// The router treats a zero result like Continue with the unchanged context.
func (r Result[C]) IsZero() bool {
	return !r.set
}
