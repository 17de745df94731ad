package timefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformed = errors.New("timefmt: expected MM:SS:DDD")

// MsToTime renders milliseconds as MM:SS:DDD.
func MsToTime(ms int) string {
	if ms < 0 {
		ms = 0
	}
	seconds, millis := ms/1000, ms%1000
	minutes, seconds := seconds/60, seconds%60
	return fmt.Sprintf("%02d:%02d:%03d", minutes, seconds, millis)
}

// TimeToMs parses MM:SS:DDD. Fields are not range-checked beyond being non-negative integers.
func TimeToMs(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || p == "" || p[0] == '+' {
			return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
		}
		v[i] = n
	}
	return v[0]*60000 + v[1]*1000 + v[2], nil
}
