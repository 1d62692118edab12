package notify

import "fmt"

type fieldState uint8

const (
	fieldUnspecified fieldState = iota
	fieldClear
	fieldSet
)

// Field is an optional notification attribute. The zero value is
// unspecified, which leaves the current attribute untouched on Edit.
// Clear explicitly removes the attribute and Set replaces it.
type Field[T any] struct {
	state fieldState
	value T
}

// Set returns a field that replaces the attribute with v.
func Set[T any](v T) Field[T] {
	return Field[T]{state: fieldSet, value: v}
}

// Clear returns a field that explicitly removes the attribute.
func Clear[T any]() Field[T] {
	return Field[T]{state: fieldClear}
}

func (f Field[T]) IsUnspecified() bool { return f.state == fieldUnspecified }
func (f Field[T]) IsClear() bool       { return f.state == fieldClear }
func (f Field[T]) IsSet() bool         { return f.state == fieldSet }

// Get returns the value and true when the field is set.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.state == fieldSet
}

// ValueOr returns the set value, or def when the field is unspecified or cleared.
func (f Field[T]) ValueOr(def T) T {
	if f.state == fieldSet {
		return f.value
	}
	return def
}

func (f Field[T]) String() string {
	switch f.state {
	case fieldSet:
		return fmt.Sprintf("set(%v)", f.value)
	case fieldClear:
		return "clear"
	default:
		return "unspecified"
	}
}
