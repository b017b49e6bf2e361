package handler

// Key is a typed key for request-scoped values. Two keys are distinct even
// when created with the same name, so packages cannot collide.
type Key[T any] struct {
	name *string
}

// NewKey creates a key for values of type T. The name is used only for debugging.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: &name}
}

// String returns the debug name of the key.
func (k Key[T]) String() string {
	if k.name == nil {
		return ""
	}
	return *k.name
}

// Set stores val under key in the request context.
func Set[T any](ctx Context, key Key[T], val T) {
	ctx.SetValue(key, val)
}

// Get returns the value stored under key and whether it was present.
func Get[T any](ctx Context, key Key[T]) (T, bool) {
	val, ok := ctx.Value(key).(T)
	return val, ok
}

// MustGet returns the value stored under key or panics when it is missing.
func MustGet[T any](ctx Context, key Key[T]) T {
	val, ok := Get(ctx, key)
	if !ok {
		panic("handler: missing value for key " + key.String())
	}
	return val
}
