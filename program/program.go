package program

import "strings"

type Program struct {
	Instructions []Instruction `json:"instructions"`
	// Aliases holds the distinct alias names in order of discovery.
	Aliases []string `json:"aliases,omitempty"`
}

func (p Program) String() string {
	var b strings.Builder
	for n, inst := range p.Instructions {
		if n > 0 {
			b.WriteString(" ")
		}
		inst.write(&b)
	}
	return b.String()
}

func (p Program) Equal(other Program) bool {
	return Equal(p.Instructions, other.Instructions)
}

func Equal(a, b []Instruction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Walk calls fn for every instruction in depth-first source order.
// Loop bodies are visited after the loop itself.
func Walk(insts []Instruction, fn func(Instruction) bool) bool {
	for _, inst := range insts {
		if !fn(inst) {
			return false
		}
		if inst.Kind == KindLoop {
			if !Walk(inst.Body, fn) {
				return false
			}
		}
	}
	return true
}

// Stats counts the leaf instructions and the loops of a tree.
type Stats struct {
	Leaves int
	Loops  int
	Depth  int
}

func Measure(insts []Instruction) (stats Stats) {
	type level struct {
		insts []Instruction
		depth int
	}
	stack := []level{{insts: insts, depth: 1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(top.insts) > 0 {
			stats.Depth = max(stats.Depth, top.depth)
		}
		for _, inst := range top.insts {
			if inst.Kind == KindLoop {
				stats.Loops++
				stack = append(stack, level{insts: inst.Body, depth: top.depth + 1})
				continue
			}
			stats.Leaves++
		}
	}
	return
}
