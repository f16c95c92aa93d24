package jsonval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// Parse decodes one JSON document. Object key order is preserved and every
// object carrying a "value" key becomes a *Wrapper.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decode(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON document")
	}
	return v, nil
}

func decode(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", kt)
				}
				v, err := decode(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return wrap(obj), nil
		case '[':
			arr := Array{}
			for dec.More() {
				v, err := decode(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case nil:
		return Null{}, nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// wrap turns an object with a "value" key into a *Wrapper.
func wrap(obj *Object) Value {
	inner, ok := obj.Get("value")
	if !ok {
		return obj
	}
	w := &Wrapper{Inner: inner}
	if t, ok := obj.Get("type"); ok {
		w.Type, _ = Text(t)
	}
	if k, ok := obj.Get("properKey"); ok {
		w.ProperKey, _ = Text(k)
	} else if k, ok := obj.Get("key"); ok {
		w.ProperKey, _ = Text(k)
	}
	return w
}

// FromAny converts Go values (as produced by encoding/json or written in
// tests) into a Value. Map keys are sorted so the result is deterministic.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case json.Number:
		return Number(t)
	case float64:
		return Number(strconv.FormatFloat(t, 'f', -1, 64))
	case int:
		return Number(strconv.Itoa(t))
	case int64:
		return Number(strconv.FormatInt(t, 10))
	case []string:
		arr := make(Array, len(t))
		for i, s := range t {
			arr[i] = String(s)
		}
		return arr
	case []any:
		arr := make(Array, len(t))
		for i, e := range t {
			arr[i] = FromAny(e)
		}
		return arr
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, FromAny(t[k]))
		}
		return wrap(obj)
	default:
		return String(fmt.Sprint(t))
	}
}

// ToAny converts v into plain Go values suitable for encoding/json.
// Wrappers are collapsed on the way out.
func ToAny(v Value) any {
	switch t := v.(type) {
	case Bool:
		return bool(t)
	case Number:
		return json.Number(t)
	case String:
		return string(t)
	case Array:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = ToAny(e)
		}
		return out
	case *Object:
		out := make(map[string]any, t.Len())
		for k, e := range t.All() {
			out[k] = ToAny(e)
		}
		return out
	case *Wrapper:
		return ToAny(Unwrap(t))
	default:
		return nil
	}
}
