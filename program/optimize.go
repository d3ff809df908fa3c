package program

import "math"

// Optimize merges runs of adjacent arithmetic and movement instructions of the
// same kind into single counted instructions. Loop bodies are optimized
// recursively; structural instructions are copied unchanged.
func Optimize(insts []Instruction) []Instruction {
	if len(insts) == 0 {
		return nil
	}
	ret := make([]Instruction, 0, len(insts))
	for i := 0; i < len(insts); {
		inst := insts[i]

		if inst.Kind.Structural() {
			if inst.Kind == KindLoop {
				inst.Body = Optimize(inst.Body)
			}
			ret = append(ret, inst)
			i++
			continue
		}

		merged := inst
		j := i + 1
		for ; j < len(insts); j++ {
			next := insts[j]
			if next.Kind != merged.Kind {
				break
			}
			if merged.Count > math.MaxUint64-next.Count {
				// start a new instruction instead of wrapping
				break
			}
			merged.Count += next.Count
			merged.Span = merged.Span.Cover(next.Span)
		}
		ret = append(ret, merged)
		i = j
	}
	return ret
}

func (p Program) Optimize() Program {
	return Program{
		Instructions: Optimize(p.Instructions),
		Aliases:      p.Aliases,
	}
}
