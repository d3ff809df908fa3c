package configs

import (
	"fmt"
	"reflect"

	"github.com/reusee/dscope"
)

// Override forks scope with fixed values for declared Configurable types.
func Override(scope dscope.Scope, values ...Configurable) (ret dscope.Scope, err error) {
	configTypes := make(map[reflect.Type]bool)
	for t := range scope.AllTypes() {
		if t.Implements(configurableType) {
			configTypes[t] = true
		}
	}
	var defs []any
	seen := make(map[reflect.Type]bool)
	// later values win
	for i := len(values) - 1; i >= 0; i-- {
		v := values[i]
		if v == nil {
			continue
		}
		t := reflect.TypeOf(v)
		if !configTypes[t] {
			return scope, fmt.Errorf("%s (%v) is not configurable in this scope", v.ConfigExpr(), t)
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		// a pointer to the concrete type defines that type, not Configurable
		ptr := reflect.New(t)
		ptr.Elem().Set(reflect.ValueOf(v))
		defs = append(defs, ptr.Interface())
	}
	if len(defs) == 0 {
		return scope, nil
	}
	return scope.Fork(defs...), nil
}
