// Package model holds the data types shared between the native collaborator
// and the UI: enum mirrors of native integer codes, selectable list items,
// and the records those lists display.
package model

// codeTable decodes native integer codes for one closed enum. Unknown codes
// decode to the fallback variant; decoding never fails.
type codeTable[T ~int32] struct {
	fallback T
	known    []T
}

func newCodeTable[T ~int32](fallback T, known ...T) codeTable[T] {
	return codeTable[T]{fallback: fallback, known: known}
}

func (t codeTable[T]) decode(code int) T {
	for _, v := range t.known {
		if int(v) == code {
			return v
		}
	}
	return t.fallback
}

func (t codeTable[T]) values() []T {
	dup := make([]T, len(t.known))
	copy(dup, t.known)
	return dup
}
