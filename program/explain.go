package program

// Annotation labels a leaf instruction's source span.
type Annotation struct {
	Span        Span   `json:"span"`
	Description string `json:"description"`
}

// Explain returns one annotation per leaf instruction in source order.
// Loops contribute the annotations of their bodies but none of their own.
func Explain(insts []Instruction) []Annotation {
	var ret []Annotation
	Walk(insts, func(inst Instruction) bool {
		if inst.Kind == KindLoop {
			return true
		}
		ret = append(ret, Annotation{
			Span:        inst.Span,
			Description: inst.Describe(),
		})
		return true
	})
	return ret
}
