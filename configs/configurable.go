package configs

import "reflect"

// Configurable marks a type whose value is resolved from flags, config files and defaults.
type Configurable interface {
	ConfigExpr() string
}

var configurableType = reflect.TypeFor[Configurable]()
