package achievement

import (
	"errors"
	"math"
	"strconv"
)

// ParseThreshold extracts the first run of decimal digits from a tier
// requirement ("128 stars" => 128, "Close in < 5m" => 5). Requirements with
// no digits yield 0; a number too large for int saturates to math.MaxInt so
// the tier stays out of reach.
func ParseThreshold(requirement string) int {
	start := -1
	for i := 0; i < len(requirement); i++ {
		isDigit := requirement[i] >= '0' && requirement[i] <= '9'
		switch {
		case isDigit && start < 0:
			start = i
		case !isDigit && start >= 0:
			return atoi(requirement[start:i])
		}
	}
	if start >= 0 {
		return atoi(requirement[start:])
	}
	return 0
}

func atoi(digits string) int {
	n, err := strconv.Atoi(digits)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt
	}
	if err != nil {
		return 0
	}
	return n
}
