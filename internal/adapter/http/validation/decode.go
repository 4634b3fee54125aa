package validation

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strings"

	"taskmanager/pkg/apierrors"
)

// decodeObject decodes body field by field into dst, a pointer to a struct
// with json tags. Unknown keys and type mismatches become field errors; the
// raw map is returned for presence and null checks.
func decodeObject(body []byte, dst any, lang string) (map[string]json.RawMessage, Errors) {
	raw := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
			return nil, Errors{apierrors.NewFieldError("body", apierrors.MsgBodyMalformed, lang, nil)}
		}
	}

	var errs Errors
	known := map[string]bool{}

	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		name, _, _ := strings.Cut(rt.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		known[name] = true

		value, ok := raw[name]
		if !ok {
			continue
		}

		target := rv.Field(i).Addr().Interface()
		if err := json.Unmarshal(value, target); err != nil {
			errs = append(errs, apierrors.NewFieldError(name, apierrors.MsgFieldType, lang, map[string]any{
				"Type": jsonTypeName(rt.Field(i).Type),
			}))
		}
	}

	unknown := make([]string, 0)
	for key := range raw {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		errs = append(errs, apierrors.NewFieldError(key, apierrors.MsgFieldNotAllowed, lang, nil))
	}

	return raw, errs
}

func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	}
	return t.Kind().String()
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

func trimString(value *string) {
	if value != nil {
		*value = strings.TrimSpace(*value)
	}
}
