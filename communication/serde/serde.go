package serde

import (
	"fmt"
	"railway/bag"
	"railway/communication"
	"railway/utils"
	"strconv"
	"strings"
)

// Serde turns values into protocol text and back.
type Serde[T any] struct {
	serialize   func(T) string
	deserialize func(string) (T, error)
}

func Of[T any](serialize func(T) string, deserialize func(string) (T, error)) Serde[T] {
	return Serde[T]{serialize: serialize, deserialize: deserialize}
}

func (s Serde[T]) Serialize(v T) string {
	return s.serialize(v)
}

func (s Serde[T]) Deserialize(text string) (T, error) {
	return s.deserialize(text)
}

func protocolError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", communication.ErrProtocol, fmt.Sprintf(format, args...))
}

// OneOf encodes a value by its index in values.
func OneOf[T comparable](values []T) Serde[T] {
	return Of(
		func(v T) string {
			index := utils.FindIndex(values, v)
			utils.CheckArgument(index >= 0, "value %v is not serializable", v)
			return strconv.Itoa(index)
		},
		func(text string) (T, error) {
			var zero T
			index, err := strconv.Atoi(text)
			if err != nil {
				return zero, protocolError("invalid index %q", text)
			}
			if index < 0 || index >= len(values) {
				return zero, protocolError("index %d out of range [0, %d)", index, len(values))
			}
			return values[index], nil
		},
	)
}

// ListOf joins elements with sep. The empty list is the empty string.
func ListOf[T any](s Serde[T], sep string) Serde[[]T] {
	return Of(
		func(values []T) string {
			parts := make([]string, len(values))
			for i, v := range values {
				parts[i] = s.Serialize(v)
			}
			return strings.Join(parts, sep)
		},
		func(text string) ([]T, error) {
			if text == "" {
				return []T{}, nil
			}
			parts := strings.Split(text, sep)
			values := make([]T, len(parts))
			for i, part := range parts {
				v, err := s.Deserialize(part)
				if err != nil {
					return nil, err
				}
				values[i] = v
			}
			return values, nil
		},
	)
}

// BagOf serializes a bag as the list of its sorted elements.
func BagOf[T bag.Element[T]](s Serde[T], sep string) Serde[bag.Bag[T]] {
	list := ListOf(s, sep)
	return Of(
		func(b bag.Bag[T]) string {
			return list.Serialize(b.ToSlice())
		},
		func(text string) (bag.Bag[T], error) {
			values, err := list.Deserialize(text)
			if err != nil {
				return bag.Bag[T]{}, err
			}
			return bag.Of(values...), nil
		},
	)
}

// split cuts text into exactly n fields.
func split(text, sep string, n int) ([]string, error) {
	parts := strings.Split(text, sep)
	if len(parts) != n {
		return nil, protocolError("expected %d fields separated by %q, got %d", n, sep, len(parts))
	}
	return parts, nil
}
