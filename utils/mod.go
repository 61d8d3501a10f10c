package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIndexOutOfRange = errors.New("index out of range")
)

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// CheckArgument panics with an ErrInvalidArgument when cond does not hold.
func CheckArgument(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...)))
	}
}

// CheckIndex panics with an ErrIndexOutOfRange unless 0 <= index < size.
func CheckIndex(index, size int) int {
	if index < 0 || index >= size {
		panic(fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, size))
	}
	return index
}

// CheckRange panics with an ErrIndexOutOfRange unless 0 <= n <= size.
func CheckRange(n, size int) int {
	if n < 0 || n > size {
		panic(fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, n, size))
	}
	return n
}
