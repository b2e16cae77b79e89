package toml

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Unmarshal parses data and stores the result in the value pointed to by v.
// Struct fields are matched by `toml:"name"` tag, then by exact field name.
// Keys without a matching field are ignored.
func Unmarshal(data []byte, v any) error {
	tree, err := Parse(data)
	if err != nil {
		return err
	}
	return Decode(tree, v)
}

// Decode maps a parsed tree onto v, which must be a non-nil pointer
func Decode(tree map[string]any, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("toml: decode target must be a non-nil pointer, got %T", v)
	}
	return decodeInto(tree, rv.Elem(), "")
}

func decodeInto(data any, rv reflect.Value, path string) error {
	if data == nil {
		return nil
	}

	switch rv.Kind() {
	case reflect.Ptr:
		elem := reflect.New(rv.Type().Elem())
		if err := decodeInto(data, elem.Elem(), path); err != nil {
			return err
		}
		rv.Set(elem)

	case reflect.Struct:
		m, ok := data.(map[string]any)
		if !ok {
			return mismatch(path, "table", data)
		}
		return decodeStruct(m, rv, path)

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("toml: %s: map keys must be strings", path)
		}
		m, ok := data.(map[string]any)
		if !ok {
			return mismatch(path, "table", data)
		}
		out := reflect.MakeMapWithSize(rv.Type(), len(m))
		for k, item := range m {
			elem := reflect.New(rv.Type().Elem()).Elem()
			if err := decodeInto(item, elem, join(path, k)); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()), elem)
		}
		rv.Set(out)

	case reflect.Slice:
		items, err := asList(data)
		if err != nil {
			return mismatch(path, "array", data)
		}
		out := reflect.MakeSlice(rv.Type(), len(items), len(items))
		for i, item := range items {
			if err := decodeInto(item, out.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		rv.Set(out)

	case reflect.Interface:
		rv.Set(reflect.ValueOf(data))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := asInt(data)
		if !ok {
			return mismatch(path, "integer", data)
		}
		if rv.OverflowInt(n) {
			return fmt.Errorf("toml: %s: %d overflows %s", path, n, rv.Type())
		}
		rv.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := asInt(data)
		if !ok || n < 0 {
			return mismatch(path, "non-negative integer", data)
		}
		if rv.OverflowUint(uint64(n)) {
			return fmt.Errorf("toml: %s: %d overflows %s", path, n, rv.Type())
		}
		rv.SetUint(uint64(n))

	case reflect.Float32, reflect.Float64:
		switch f := data.(type) {
		case float64:
			rv.SetFloat(f)
		case int64:
			rv.SetFloat(float64(f))
		default:
			return mismatch(path, "float", data)
		}

	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return mismatch(path, "string", data)
		}
		rv.SetString(s)

	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return mismatch(path, "boolean", data)
		}
		rv.SetBool(b)

	default:
		return fmt.Errorf("toml: %s: unsupported kind %s", path, rv.Kind())
	}
	return nil
}

func decodeStruct(m map[string]any, rv reflect.Value, path string) error {
	typ := rv.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _ := fieldKey(field)
		if name == "-" {
			continue
		}
		if item, ok := m[name]; ok {
			if err := decodeInto(item, rv.Field(i), join(path, name)); err != nil {
				return err
			}
		}
	}
	return nil
}

// fieldKey returns the TOML key for a struct field and whether omitempty is set
func fieldKey(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("toml")
	if tag == "" {
		return f.Name, false
	}
	parts := strings.Split(tag, ",")
	name := parts[0]
	if name == "" {
		name = f.Name
	}
	omit := false
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omit = true
		}
	}
	return name, omit
}

func asList(data any) ([]any, error) {
	switch v := data.(type) {
	case []any:
		return v, nil
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out, nil
	}
	return nil, fmt.Errorf("not a list")
}

func asInt(data any) (int64, bool) {
	switch v := data.(type) {
	case int64:
		return v, true
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt64 && v <= math.MaxInt64 {
			return int64(v), true
		}
	}
	return 0, false
}

func mismatch(path, want string, got any) error {
	if path == "" {
		path = "root"
	}
	return fmt.Errorf("toml: %s: expected %s, got %T", path, want, got)
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
