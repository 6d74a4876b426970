package utils

import (
	"errors"
	"math"
)

func SafeInt64ToInt(i int64) (int, error) {
	if i < math.MinInt || i > math.MaxInt {
		return 0, errors.New("integer overflow: value out of int range")
	}

	return int(i), nil
}

func SafeIntToInt32(i int) (int32, error) {
	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, errors.New("integer overflow: value out of int32 range")
	}

	return int32(i), nil
}
