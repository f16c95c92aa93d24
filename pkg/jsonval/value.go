// Package jsonval models decoded upstream JSON as a closed set of variants.
//
// Aggregator payloads wrap values in {type, properKey, value} envelopes at
// arbitrary depth. Those envelopes decode into *Wrapper so callers can
// pattern-match on them and collapse them with Unwrap, instead of probing
// map[string]any for a "value" key at every step.
package jsonval

import (
	"iter"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

// Value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindWrapper
)

// Value is one node of a decoded JSON tree.
// The concrete types are Null, Bool, Number, String, Array, *Object and *Wrapper.
// A nil Value means "absent".
type Value interface {
	Kind() Kind
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number kept as its literal text.
type Number string

// String is a JSON string.
type String string

// Array is a JSON array.
type Array []Value

// Wrapper is a generic value envelope: any object carrying a "value" key.
// Sibling keys other than type and properKey are dropped when decoding.
type Wrapper struct {
	Inner     Value
	Type      string
	ProperKey string
}

// Object is a JSON object that remembers key insertion order.
type Object struct {
	fields map[string]Value
	keys   []string
}

func (Null) Kind() Kind     { return KindNull }
func (Bool) Kind() Kind     { return KindBool }
func (Number) Kind() Kind   { return KindNumber }
func (String) Kind() Kind   { return KindString }
func (Array) Kind() Kind    { return KindArray }
func (*Object) Kind() Kind  { return KindObject }
func (*Wrapper) Kind() Kind { return KindWrapper }

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{fields: make(map[string]Value)}
}

// Set stores v under key. A repeated key keeps its original position.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// Get returns the value stored under exactly key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.fields[key]
	return v, ok
}

// Lookup returns the value under key, falling back to a case-insensitive
// match in insertion order. It returns nil when nothing matches.
func (o *Object) Lookup(key string) Value {
	if o == nil {
		return nil
	}
	if v, ok := o.fields[key]; ok {
		return v
	}
	for _, k := range o.keys {
		if strings.EqualFold(k, key) {
			return o.fields[k]
		}
	}
	return nil
}

// Has reports whether key is present (exact match).
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// All iterates over key/value pairs in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.fields[k]) {
				return
			}
		}
	}
}

// Equal reports whether a and b are structurally identical, including key order.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Array:
		y, ok := b.(Array)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Object:
		y, ok := b.(*Object)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i, k := range x.keys {
			if y.keys[i] != k || !Equal(x.fields[k], y.fields[k]) {
				return false
			}
		}
		return true
	case *Wrapper:
		y, ok := b.(*Wrapper)
		return ok && x.Type == y.Type && x.ProperKey == y.ProperKey && Equal(x.Inner, y.Inner)
	default:
		return false
	}
}
