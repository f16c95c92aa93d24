package jsonval

import (
	"math"
	"strconv"
	"strings"
)

// Unwrap collapses every *Wrapper in v to its inner value, at any depth.
// The input is never mutated; objects and arrays are copied.
// Unwrap(Unwrap(v)) is structurally equal to Unwrap(v).
func Unwrap(v Value) Value {
	switch t := v.(type) {
	case *Wrapper:
		if t == nil {
			return nil
		}
		return Unwrap(t.Inner)
	case Array:
		out := make(Array, len(t))
		for i, e := range t {
			out[i] = Unwrap(e)
		}
		return out
	case *Object:
		if t == nil {
			return t
		}
		out := NewObject()
		for k, e := range t.All() {
			out.Set(k, Unwrap(e))
		}
		return out
	default:
		return v
	}
}

// IsNull reports whether v is absent or the null literal.
func IsNull(v Value) bool {
	switch t := v.(type) {
	case nil, Null:
		return true
	case *Wrapper:
		return t == nil || IsNull(t.Inner)
	case *Object:
		return t == nil
	default:
		return false
	}
}

// Text returns the scalar text of v. Strings are returned as-is, numbers
// as their literal and booleans as "true"/"false".
func Text(v Value) (string, bool) {
	switch t := v.(type) {
	case String:
		return string(t), true
	case Number:
		return string(t), true
	case Bool:
		return strconv.FormatBool(bool(t)), true
	case *Wrapper:
		if t == nil {
			return "", false
		}
		return Text(t.Inner)
	default:
		return "", false
	}
}

// Truthy interprets v as a boolean. It accepts JSON booleans, 0/1 numbers
// and the strings true/false/yes/no/1/0. ok is false for anything else.
func Truthy(v Value) (b, ok bool) {
	switch t := v.(type) {
	case Bool:
		return bool(t), true
	case Number:
		switch string(t) {
		case "1":
			return true, true
		case "0":
			return false, true
		}
	case String:
		switch strings.ToLower(strings.TrimSpace(string(t))) {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0":
			return false, true
		}
	case *Wrapper:
		if t != nil {
			return Truthy(t.Inner)
		}
	}
	return false, false
}

// Int interprets v as an integer. Strings may carry thousands separators
// ("1,234"). Fractions are truncated.
func Int(v Value) (int64, bool) {
	s, ok := Text(v)
	if !ok {
		return 0, false
	}
	if _, isBool := v.(Bool); isBool {
		return 0, false
	}
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}

// List returns the elements of an array. Absent or null values yield nil;
// any other value yields a single-element slice.
func List(v Value) []Value {
	switch t := v.(type) {
	case nil, Null:
		return nil
	case Array:
		return t
	case *Wrapper:
		if t == nil {
			return nil
		}
		return List(t.Inner)
	default:
		return []Value{v}
	}
}

// AsObject returns v as an object, looking through wrappers.
func AsObject(v Value) (*Object, bool) {
	switch t := v.(type) {
	case *Object:
		return t, t != nil
	case *Wrapper:
		if t == nil {
			return nil, false
		}
		return AsObject(t.Inner)
	default:
		return nil, false
	}
}

// Lookup follows path through nested objects using case-insensitive key
// matching and returns nil if any segment is missing.
func Lookup(v Value, path ...string) Value {
	for _, seg := range path {
		obj, ok := AsObject(v)
		if !ok {
			return nil
		}
		v = obj.Lookup(seg)
		if v == nil {
			return nil
		}
	}
	return v
}

// LookupText returns the trimmed text at path, or "" when missing or not a scalar.
func LookupText(v Value, path ...string) string {
	s, _ := Text(Lookup(v, path...))
	return strings.TrimSpace(s)
}

// First returns the first non-blank scalar text found under any of keys.
func First(v Value, keys ...string) string {
	obj, ok := AsObject(v)
	if !ok {
		return ""
	}
	for _, k := range keys {
		if s, ok := Text(obj.Lookup(k)); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

// Strings returns the non-blank scalar texts of v. Arrays yield their
// elements and strings are split on commas and semicolons.
func Strings(v Value) []string {
	var out []string
	for _, e := range List(v) {
		s, ok := Text(e)
		if !ok {
			continue
		}
		if _, isString := Unwrap(e).(String); isString {
			for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
