package toml

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Marshal encodes a struct or string-keyed map as TOML.
//
// Scalars and arrays of scalars are written before sub-tables so every key lands
// in the right table. Struct fields keep declaration order, map keys are sorted.
// Nil pointers and unexported fields are skipped; `omitempty` skips zero values.
func Marshal(v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, fmt.Errorf("toml: cannot marshal nil pointer")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct && rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("toml: root must be a struct or map, got %s", rv.Kind())
	}

	var buf bytes.Buffer
	if err := writeTable(&buf, rv, ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type entry struct {
	key string
	val reflect.Value
}

func entries(rv reflect.Value) ([]entry, error) {
	var out []entry
	switch rv.Kind() {
	case reflect.Struct:
		typ := rv.Type()
		for i := 0; i < typ.NumField(); i++ {
			f := typ.Field(i)
			if !f.IsExported() {
				continue
			}
			name, omit := fieldKey(f)
			if name == "-" {
				continue
			}
			fv := rv.Field(i)
			if omit && fv.IsZero() {
				continue
			}
			out = append(out, entry{name, fv})
		}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("toml: map keys must be strings")
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, k := range keys {
			out = append(out, entry{k.String(), rv.MapIndex(k)})
		}
	}
	return out, nil
}

func writeTable(buf *bytes.Buffer, rv reflect.Value, prefix string) error {
	list, err := entries(rv)
	if err != nil {
		return err
	}

	var tables []entry
	for _, e := range list {
		val := indirect(e.val)
		if !val.IsValid() {
			continue
		}
		if isTable(val) || isTableArray(val) {
			tables = append(tables, entry{e.key, val})
			continue
		}
		buf.WriteString(formatKey(e.key))
		buf.WriteString(" = ")
		if err := writeValue(buf, val); err != nil {
			return fmt.Errorf("toml: key %s: %w", join(prefix, e.key), err)
		}
		buf.WriteByte('\n')
	}

	for _, e := range tables {
		full := join(prefix, formatKey(e.key))
		if isTable(e.val) {
			fmt.Fprintf(buf, "\n[%s]\n", full)
			if err := writeTable(buf, e.val, full); err != nil {
				return err
			}
			continue
		}
		for i := 0; i < e.val.Len(); i++ {
			elem := indirect(e.val.Index(i))
			if !elem.IsValid() {
				continue
			}
			fmt.Fprintf(buf, "\n[[%s]]\n", full)
			if err := writeTable(buf, elem, full); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeValue(buf *bytes.Buffer, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.String:
		buf.WriteString(strconv.Quote(rv.String()))
	case reflect.Bool:
		buf.WriteString(strconv.FormatBool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		buf.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		s := strconv.FormatFloat(rv.Float(), 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		buf.WriteString(s)
	case reflect.Slice, reflect.Array:
		buf.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := writeValue(buf, indirect(rv.Index(i))); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case reflect.Interface:
		return writeValue(buf, rv.Elem())
	default:
		return fmt.Errorf("unsupported kind %s", rv.Kind())
	}
	return nil
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func isTable(rv reflect.Value) bool {
	return rv.Kind() == reflect.Struct || rv.Kind() == reflect.Map
}

// isTableArray reports a non-empty slice whose elements are tables
func isTableArray(rv reflect.Value) bool {
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	elem := rv.Type().Elem()
	for elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	return elem.Kind() == reflect.Struct || (elem.Kind() == reflect.Map && rv.Len() > 0)
}

func formatKey(k string) string {
	if k == "" {
		return `""`
	}
	for i := 0; i < len(k); i++ {
		if !isBareChar(k[i]) {
			return strconv.Quote(k)
		}
	}
	return k
}
