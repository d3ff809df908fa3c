package configs

import (
	"errors"
	"fmt"
)

// Lookup decodes the value at path from the first config file that sets it.
// ok is false when no file does.
func Lookup[T any](loader Loader, path string) (value T, ok bool, err error) {
	err = loader.AssignFirst(path, &value)
	if errors.Is(err, ErrValueNotFound) {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("config %s: %w", path, err)
	}
	return value, true, nil
}

// First is Lookup for providers, returning the zero value when unset. A value
// that fails to decode panics, the schema is expected to reject it earlier.
func First[T any](loader Loader, path string) T {
	value, _, err := Lookup[T](loader, path)
	if err != nil {
		panic(err)
	}
	return value
}
