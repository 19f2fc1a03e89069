package search

import (
	"fmt"
	"reflect"
	"strings"
)

// Uniform field access over the two shapes the decoder sees: a raw parsed-JSON
// mapping, or an already-constructed struct. Struct fields are matched by
// their json tag, falling back to the Go field name.

// HasField reports whether obj carries the named field.
func HasField(obj any, name string) bool {
	if m, ok := obj.(map[string]any); ok {
		_, present := m[name]
		return present
	}
	_, ok := structField(obj, name)
	return ok
}

// GetField returns the value of the named field, or ErrMissingField.
func GetField(obj any, name string) (any, error) {
	if m, ok := obj.(map[string]any); ok {
		v, present := m[name]
		if !present {
			return nil, fmt.Errorf("%w: %q", ErrMissingField, name)
		}
		return v, nil
	}
	fv, ok := structField(obj, name)
	if !ok {
		return nil, fmt.Errorf("%w: %q on %T", ErrMissingField, name, obj)
	}
	return fv.Interface(), nil
}

// SetField assigns the named field and returns its previous value, or nil if
// the field was absent. Struct targets must be addressable (a pointer).
func SetField(obj any, name string, val any) (any, error) {
	if m, ok := obj.(map[string]any); ok {
		old := m[name]
		m[name] = val
		return old, nil
	}
	fv, ok := structField(obj, name)
	if !ok {
		return nil, fmt.Errorf("%w: %q on %T", ErrMissingField, name, obj)
	}
	if !fv.CanSet() {
		return nil, fmt.Errorf("search: field %q on %T is not settable", name, obj)
	}
	old := fv.Interface()
	nv := reflect.ValueOf(val)
	if !nv.IsValid() {
		fv.Set(reflect.Zero(fv.Type()))
		return old, nil
	}
	if !nv.Type().AssignableTo(fv.Type()) {
		return nil, fmt.Errorf("search: cannot assign %T to field %q of %T", val, name, obj)
	}
	fv.Set(nv)
	return old, nil
}

func structField(obj any, name string) (reflect.Value, bool) {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tag == name || (tag == "" && f.Name == name) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}
