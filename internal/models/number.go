package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Number is a numeric record value that may be missing.
// Missing values decode from JSON null (or any non-numeric value) and
// encode back as null.
type Number struct {
	Value float64
	Valid bool
}

// Num returns a valid Number. NaN and infinities have no JSON form and
// are Missing.
func Num(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing
	}
	return Number{Value: v, Valid: true}
}

// Missing is the zero Number
var Missing = Number{}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid || math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.Value, 'f', -1, 64)), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = numberFromRaw(data)
	return nil
}

func numberFromRaw(data []byte) Number {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Missing
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return Missing
	}
	return Num(v)
}

// NumberFrom converts a loosely typed value (decoded JSON or a database
// column) into a Number.
func NumberFrom(v interface{}) Number {
	switch t := v.(type) {
	case Number:
		return t
	case float64:
		return Num(t)
	case float32:
		return Num(float64(t))
	case int:
		return Num(float64(t))
	case int32:
		return Num(float64(t))
	case int64:
		return Num(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Missing
		}
		return Num(f)
	case []byte:
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return Missing
		}
		return Num(f)
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return Missing
		}
		return Num(f)
	}
	return Missing
}
