package cmds

import (
	"fmt"
	"reflect"
)

// Command is either a function consuming the arguments that follow its name,
// or a set of sub commands that become available after it.
type Command struct {
	Func        reflect.Value
	Subs        map[string]*Command
	Description string
	Aliases     []string
	// ArgNames label Func's parameters in usage, in order.
	ArgNames []string
	// Hidden commands are accepted but left out of usage.
	Hidden bool
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

// Args names the parameters of a function command.
func (c *Command) Args(names ...string) *Command {
	if c.Func.IsValid() && len(names) > c.Func.Type().NumIn() {
		panic(fmt.Errorf("%d names for %d arguments", len(names), c.Func.Type().NumIn()))
	}
	c.ArgNames = names
	return c
}

func (c *Command) Hide() *Command {
	c.Hidden = true
	return c
}

// Func wraps fn as a command. fn returns nothing or an error, and each
// parameter consumes one argument; pointer parameters are optional.
func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)
	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("must be function, got %T", fn))
	}

	fnType := fnValue.Type()
	switch fnType.NumOut() {
	case 0:
	case 1:
		if fnType.Out(0) != errorType {
			panic(fmt.Errorf("must return error, got %v", fnType.Out(0)))
		}
	default:
		panic(fmt.Errorf("must return 0 or 1 value, got %d", fnType.NumOut()))
	}

	optional := false
	for i := range fnType.NumIn() {
		if fnType.In(i).Kind() == reflect.Pointer {
			optional = true
		} else if optional {
			panic(fmt.Errorf("required argument %d follows an optional one", i))
		}
	}

	return &Command{
		Func: fnValue,
	}
}

func Sub(subs map[string]*Command) *Command {
	return &Command{
		Subs: subs,
	}
}

func (c *Command) argLabel(i int) string {
	t := c.Func.Type().In(i)
	optional := t.Kind() == reflect.Pointer
	if optional {
		t = t.Elem()
	}
	label := t.String()
	if i < len(c.ArgNames) {
		label = c.ArgNames[i]
	}
	if optional {
		return "[" + label + "]"
	}
	return "<" + label + ">"
}
