package utils_test

import (
	"math"
	"testing"

	"github.com/litebase/blockfs/internal/utils"
)

func TestSafeInt64ToInt(t *testing.T) {
	n, err := utils.SafeInt64ToInt(4096)

	if err != nil || n != 4096 {
		t.Errorf("SafeInt64ToInt(4096) = %d, %v", n, err)
	}
}

func TestSafeIntToInt32(t *testing.T) {
	if _, err := utils.SafeIntToInt32(math.MaxInt32); err != nil {
		t.Errorf("SafeIntToInt32(MaxInt32) returned an error: %v", err)
	}

	if math.MaxInt > math.MaxInt32 {
		if _, err := utils.SafeIntToInt32(math.MaxInt32 + 1); err == nil {
			t.Error("SafeIntToInt32(MaxInt32+1) returned no error")
		}
	}
}
