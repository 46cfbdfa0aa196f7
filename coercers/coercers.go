// Package coercers provides stock building blocks for fallback factories and
// constructors: checked script value accessors and adapters for common
// source shapes.
package coercers

import (
	"github.com/Station-Manager/errors"
)

// CheckString asserts that src is a non-empty string.
func CheckString(op errors.Op, src any) (string, error) {
	srcVal, ok := src.(string)
	if !ok {
		return "", errors.New(op).Errorf("Given parameter not a string, got %T", src)
	}
	if srcVal == "" {
		return "", errors.New(op).Msg(ErrMsgParamEmpty)
	}
	return srcVal, nil
}

// CheckFloat64 asserts that src is a float64.
func CheckFloat64(op errors.Op, src any) (float64, error) {
	srcVal, ok := src.(float64)
	if !ok {
		return 0, errors.New(op).Errorf("Given parameter not a float64, got %T", src)
	}
	return srcVal, nil
}

// CheckInt64 asserts that src is an int64.
func CheckInt64(op errors.Op, src any) (int64, error) {
	srcVal, ok := src.(int64)
	if !ok {
		return -1, errors.New(op).Errorf("Given parameter not a int64, got %T", src)
	}
	return srcVal, nil
}

// CheckBool asserts that src is a bool.
func CheckBool(op errors.Op, src any) (bool, error) {
	srcVal, ok := src.(bool)
	if !ok {
		return false, errors.New(op).Errorf("Given parameter not a bool, got %T", src)
	}
	return srcVal, nil
}
