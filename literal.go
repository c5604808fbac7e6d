package typedkv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/arloliu/typedkv/errs"
	"github.com/arloliu/typedkv/format"
	"github.com/arloliu/typedkv/value"
)

// EncodeLiteral parses literal as logical type t and writes it at key.
//
// Literal syntax:
//   - Int, Long: decimal integer ("42", "-9223372036854775808")
//   - Float: decimal or exponent float ("1.5", "-2e3")
//   - Bool: anything strconv.ParseBool accepts ("true", "0", "F")
//   - String: the literal itself, unparsed
//   - Vector2, Vector3, Quaternion, Color: comma separated components,
//     optionally wrapped in brackets or parentheses ("1,0,0,1", "[0,0,0,1]")
//   - arrays: a JSON array; vector arrays nest one array per element
//     ("[1,2,3]", `["a","b"]`, "[[1,2],[3,4]]")
//
// Returns:
//   - error: errs.ErrInvalidLiteral when literal does not parse, or any
//     error Encode returns
func (c *Codec) EncodeLiteral(key string, t format.LogicalType, literal string) error {
	v, err := ParseLiteral(t, literal)
	if err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}

	return c.Encode(key, t, v)
}

// ParseLiteral converts literal into the Go value Encode expects for t.
func ParseLiteral(t format.LogicalType, literal string) (any, error) {
	text := strings.TrimSpace(literal)

	switch t {
	case format.TypeInt:
		n, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, invalidLiteral(t, literal, err)
		}

		return int32(n), nil

	case format.TypeLong:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, invalidLiteral(t, literal, err)
		}

		return n, nil

	case format.TypeFloat:
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return nil, invalidLiteral(t, literal, err)
		}

		return float32(f), nil

	case format.TypeBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, invalidLiteral(t, literal, err)
		}

		return b, nil

	case format.TypeString:
		return literal, nil

	case format.TypeVector2, format.TypeVector3, format.TypeQuaternion, format.TypeColor:
		comps, err := parseComponents(text, vectorWidth[t])
		if err != nil {
			return nil, invalidLiteral(t, literal, err)
		}

		return vectorFromComponents(t, comps), nil
	}

	if !t.IsArray() {
		return nil, fmt.Errorf("literal for type %d: %w", t, errs.ErrUnknownType)
	}

	arr, err := parseArrayLiteral(t, text)
	if err != nil {
		return nil, invalidLiteral(t, literal, err)
	}

	return arr, nil
}

func invalidLiteral(t format.LogicalType, literal string, err error) error {
	return fmt.Errorf("%w: %s %q: %w", errs.ErrInvalidLiteral, t, literal, err)
}

func parseComponents(text string, n int) ([]float32, error) {
	text = strings.TrimPrefix(strings.TrimPrefix(text, "["), "(")
	text = strings.TrimSuffix(strings.TrimSuffix(text, "]"), ")")

	parts := strings.Split(text, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d components, got %d", n, len(parts))
	}

	comps := make([]float32, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, err
		}
		comps[i] = float32(f)
	}

	return comps, nil
}

func vectorFromComponents(t format.LogicalType, c []float32) any {
	switch t {
	case format.TypeVector2:
		return value.Vector2{X: c[0], Y: c[1]}
	case format.TypeVector3:
		return value.Vector3{X: c[0], Y: c[1], Z: c[2]}
	case format.TypeQuaternion:
		return value.Quaternion{X: c[0], Y: c[1], Z: c[2], W: c[3]}
	default:
		return value.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
	}
}

func parseArrayLiteral(t format.LogicalType, text string) (value.Array, error) {
	switch t {
	case format.TypeIntArray:
		var v []int32
		if err := json.Unmarshal([]byte(text), &v); err != nil {
			return nil, err
		}

		return value.IntArray(v), nil

	case format.TypeFloatArray:
		var v []float32
		if err := json.Unmarshal([]byte(text), &v); err != nil {
			return nil, err
		}

		return value.FloatArray(v), nil

	case format.TypeBoolArray:
		var v []bool
		if err := json.Unmarshal([]byte(text), &v); err != nil {
			return nil, err
		}

		return value.BoolArray(v), nil

	case format.TypeStringArray:
		var v []string
		if err := json.Unmarshal([]byte(text), &v); err != nil {
			return nil, err
		}

		return value.StringArray(v), nil
	}

	// vector arrays
	var groups [][]float32
	if err := json.Unmarshal([]byte(text), &groups); err != nil {
		return nil, err
	}

	scalar := map[format.LogicalType]format.LogicalType{
		format.TypeVector2Array:    format.TypeVector2,
		format.TypeVector3Array:    format.TypeVector3,
		format.TypeQuaternionArray: format.TypeQuaternion,
		format.TypeColorArray:      format.TypeColor,
	}[t]
	width := vectorWidth[scalar]

	for i, g := range groups {
		if len(g) != width {
			return nil, fmt.Errorf("element %d: want %d components, got %d", i, width, len(g))
		}
	}

	switch t {
	case format.TypeVector2Array:
		out := make(value.Vector2Array, len(groups))
		for i, g := range groups {
			out[i] = value.Vector2{X: g[0], Y: g[1]}
		}

		return out, nil
	case format.TypeVector3Array:
		out := make(value.Vector3Array, len(groups))
		for i, g := range groups {
			out[i] = value.Vector3{X: g[0], Y: g[1], Z: g[2]}
		}

		return out, nil
	case format.TypeQuaternionArray:
		out := make(value.QuaternionArray, len(groups))
		for i, g := range groups {
			out[i] = value.Quaternion{X: g[0], Y: g[1], Z: g[2], W: g[3]}
		}

		return out, nil
	default:
		out := make(value.ColorArray, len(groups))
		for i, g := range groups {
			out[i] = value.Color{R: g[0], G: g[1], B: g[2], A: g[3]}
		}

		return out, nil
	}
}

// FormatValue renders a decoded value in the literal syntax ParseLiteral accepts.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	case value.Vector2:
		return formatComponents(x.Components())
	case value.Vector3:
		return formatComponents(x.Components())
	case value.Quaternion:
		return formatComponents(x.Components())
	case value.Color:
		return formatComponents(x.Components())
	case value.Vector2Array:
		return formatGroups(x, value.Vector2.Components)
	case value.Vector3Array:
		return formatGroups(x, value.Vector3.Components)
	case value.QuaternionArray:
		return formatGroups(x, value.Quaternion.Components)
	case value.ColorArray:
		return formatGroups(x, value.Color.Components)
	case value.Array:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}

		return string(b)
	}

	return fmt.Sprint(v)
}

func formatComponents(comps []float32) string {
	parts := make([]string, len(comps))
	for i, f := range comps {
		parts[i] = strconv.FormatFloat(float64(f), 'g', -1, 32)
	}

	return "[" + strings.Join(parts, ",") + "]"
}

func formatGroups[E any](items []E, components func(E) []float32) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = formatComponents(components(item))
	}

	return "[" + strings.Join(parts, ",") + "]"
}
