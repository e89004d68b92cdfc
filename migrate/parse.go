package migrate

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Raw is one legacy record of unknown shape, as decoded from JSON with
// json.Number preserved.
type Raw map[string]any

// lookup returns the value of the first alias that is present. A key holding
// null or an empty string counts as absent.
func (r Raw) lookup(keys ...string) (any, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// str returns the first alias that converts to a non-empty string, or def.
func (r Raw) str(def string, keys ...string) string {
	for _, k := range keys {
		v, ok := r.lookup(k)
		if !ok {
			continue
		}
		if s, ok := toString(v); ok && s != "" {
			return s
		}
	}
	return def
}

// floatOr parses the first present alias, falling back to def when every
// alias is absent or the present one does not parse.
func (r Raw) floatOr(def float64, keys ...string) float64 {
	if f := r.floatOrNil(keys...); f != nil {
		return *f
	}
	return def
}

// floatOrNil is floatOr for fields where "unknown" must stay distinct from zero.
func (r Raw) floatOrNil(keys ...string) *float64 {
	v, ok := r.lookup(keys...)
	if !ok {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		return nil
	}
	return &f
}

// idOrNil returns the first present alias as an integer identity. Values
// that are not whole numbers yield nil.
func (r Raw) idOrNil(keys ...string) *int64 {
	v, ok := r.lookup(keys...)
	if !ok {
		return nil
	}
	id, ok := toInt(v)
	if !ok {
		return nil
	}
	return &id
}

func toString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x), true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case map[string]any, []any:
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}

func toFloat(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch x := v.(type) {
	case bool, map[string]any, []any:
		return 0, false
	case json.Number:
		f, err = strconv.ParseFloat(x.String(), 64)
	case string:
		// Legacy data entered under a French locale uses a decimal comma.
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", ".")
		f, err = cast.ToFloat64E(s)
	default:
		f, err = cast.ToFloat64E(v)
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toInt(v any) (int64, bool) {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	}
	if s, ok := v.(string); ok {
		if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return i, true
		}
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func toBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	}
	b, err := cast.ToBoolE(v)
	return err == nil && b
}

// toList accepts either a JSON array or a string holding a serialized JSON
// array, as found in rows exported from the SQLite store itself.
func toList(v any) []any {
	switch x := v.(type) {
	case []any:
		return x
	case string:
		var out []any
		dec := json.NewDecoder(strings.NewReader(x))
		dec.UseNumber()
		if err := dec.Decode(&out); err != nil {
			return nil
		}
		return out
	}
	return nil
}
