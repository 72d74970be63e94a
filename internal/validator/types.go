package validator

import (
	"reflect"
	"strings"
	"time"

	"github.com/thoreinstein/fmcheck/internal/errors"
)

// FieldType is the expected kind of a field value.
type FieldType string

// Supported field types. TypeNone disables the type check.
const (
	TypeNone     FieldType = ""
	TypeString   FieldType = "string"
	TypeInteger  FieldType = "integer"
	TypeBoolean  FieldType = "boolean"
	TypeList     FieldType = "list"
	TypeMap      FieldType = "map"
	TypeDatetime FieldType = "datetime"
)

// ErrUnknownType indicates a type tag that is not one of the supported types.
var ErrUnknownType = errors.New("unknown type")

// typeAliases maps accepted configuration spellings to canonical types.
var typeAliases = map[string]FieldType{
	"string":   TypeString,
	"str":      TypeString,
	"integer":  TypeInteger,
	"int":      TypeInteger,
	"boolean":  TypeBoolean,
	"bool":     TypeBoolean,
	"list":     TypeList,
	"map":      TypeMap,
	"dict":     TypeMap,
	"datetime": TypeDatetime,
}

// ParseFieldType converts a configuration string to a FieldType.
// The empty string yields TypeNone.
func ParseFieldType(s string) (FieldType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TypeNone, nil
	}
	if t, ok := typeAliases[s]; ok {
		return t, nil
	}
	return TypeNone, errors.Wrapf(ErrUnknownType,
		"%q (valid: string, integer, boolean, list, map, datetime)", s)
}

// Matches reports whether the runtime kind of v satisfies the type.
// TypeNone matches every value. A nil value never matches a concrete type.
func (t FieldType) Matches(v any) bool {
	if t == TypeNone {
		return true
	}
	if v == nil {
		return false
	}

	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeDatetime:
		_, ok := v.(time.Time)
		return ok
	}

	kind := reflect.TypeOf(v).Kind()
	switch t {
	case TypeInteger:
		switch kind {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return true
		}
		return false
	case TypeList:
		return kind == reflect.Slice || kind == reflect.Array
	case TypeMap:
		return kind == reflect.Map
	default:
		return false
	}
}
