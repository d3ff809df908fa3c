package vars

// Origin names the layer a setting was resolved from.
type Origin string

const (
	FromFlag    Origin = "flag"
	FromConfig  Origin = "config"
	FromDefault Origin = "default"
)

// Layered resolves a setting from its command line flag, then the config
// files, then the built-in default. A zero value means the layer is unset.
func Layered[T comparable](flag, config, fallback T) (T, Origin) {
	var zero T
	if flag != zero {
		return flag, FromFlag
	}
	if config != zero {
		return config, FromConfig
	}
	return fallback, FromDefault
}

// FirstNonZero returns the first value that is not zero.
func FirstNonZero[T comparable](values ...T) T {
	var zero T
	for _, value := range values {
		if value != zero {
			return value
		}
	}
	return zero
}
