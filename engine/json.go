package engine

import (
	"math"
	"reflect"
	"strings"
)

// JSONValue returns the report as plain maps and slices, with the NaN
// sentinels of insufficient data turned into nulls so it can be encoded.
func (r *Report) JSONValue() interface{} {
	return plain(reflect.ValueOf(r))
}

func plain(v reflect.Value) interface{} {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return plain(v.Elem())
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return []interface{}{}
		}
		s := make([]interface{}, v.Len())
		for i := range s {
			s[i] = plain(v.Index(i))
		}
		return s
	case reflect.Struct:
		m := make(map[string]interface{}, v.NumField())
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				continue
			}
			if name == "" {
				name = f.Name
			}
			m[name] = plain(v.Field(i))
		}
		return m
	default:
		if !v.IsValid() {
			return nil
		}
		return v.Interface()
	}
}
