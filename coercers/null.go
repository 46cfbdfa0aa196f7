package coercers

import (
	"time"

	"github.com/Station-Manager/errors"
	"github.com/aarondl/null/v8"
)

// Constructors bridging script primitives into nullable wrapper types. These
// are meant to be registered via Registry.RegisterConstructor so that script
// values populate null.* properties naturally.

// NullStringOf maps the empty string to the null value.
func NullStringOf(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

// NullFloatOf wraps a number.
func NullFloatOf(f float64) null.Float64 { return null.Float64From(f) }

// NullIntOf wraps a number, truncating towards zero.
func NullIntOf(f float64) null.Int64 { return null.Int64From(int64(f)) }

// NullBoolOf wraps a boolean.
func NullBoolOf(b bool) null.Bool { return null.BoolFrom(b) }

// StringOfNull unwraps a null.String, mapping null to the empty string.
func StringOfNull(ns null.String) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

// TimeConstructor returns a constructor parsing strings with the given
// layout into null.Time. Unparsable strings yield the null value.
func TimeConstructor(layout string) func(string) null.Time {
	return func(s string) null.Time {
		t, err := parseTime(layout, s)
		if err != nil {
			return null.Time{}
		}
		return null.TimeFrom(t)
	}
}

func parseTime(layout, s string) (time.Time, error) {
	const op errors.Op = "coercers.parseTime"
	if s == "" {
		return time.Time{}, errors.New(op).Msg(ErrMsgParamEmpty)
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, errors.New(op).Msg(ErrMsgBadDateFormat)
	}
	return t, nil
}
