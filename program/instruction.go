package program

import (
	"fmt"
	"strings"
)

type Kind uint8

const (
	KindInvalid Kind = iota
	KindAdd
	KindSubtract
	KindMoveLeft
	KindMoveRight
	KindInput
	KindOutput
	KindLoop
	KindGoto
)

var kindNames = map[Kind]string{
	KindAdd:       "add",
	KindSubtract:  "subtract",
	KindMoveLeft:  "move_left",
	KindMoveRight: "move_right",
	KindInput:     "input",
	KindOutput:    "output",
	KindLoop:      "loop",
	KindGoto:      "goto",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("invalid instruction kind: %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown instruction kind: %s", text)
}

// Structural instructions are never merged by Optimize.
func (k Kind) Structural() bool {
	switch k {
	case KindAdd, KindSubtract, KindMoveLeft, KindMoveRight:
		return false
	}
	return true
}

type Instruction struct {
	Kind  Kind          `json:"kind"`
	Count uint64        `json:"count,omitempty"`
	Name  string        `json:"name,omitempty"`
	Body  []Instruction `json:"body,omitempty"`
	Span  Span          `json:"span"`
}

func Add(count uint64, span Span) Instruction {
	return Instruction{Kind: KindAdd, Count: count, Span: span}
}

func Subtract(count uint64, span Span) Instruction {
	return Instruction{Kind: KindSubtract, Count: count, Span: span}
}

func MoveLeft(count uint64, span Span) Instruction {
	return Instruction{Kind: KindMoveLeft, Count: count, Span: span}
}

func MoveRight(count uint64, span Span) Instruction {
	return Instruction{Kind: KindMoveRight, Count: count, Span: span}
}

func Input(span Span) Instruction {
	return Instruction{Kind: KindInput, Span: span}
}

func Output(span Span) Instruction {
	return Instruction{Kind: KindOutput, Span: span}
}

func Loop(body []Instruction, span Span) Instruction {
	return Instruction{Kind: KindLoop, Body: body, Span: span}
}

func Goto(name string, span Span) Instruction {
	return Instruction{Kind: KindGoto, Name: name, Span: span}
}

// Describe returns a human readable description of a single instruction.
func (i Instruction) Describe() string {
	switch i.Kind {
	case KindAdd:
		return fmt.Sprintf("Add %d", i.Count)
	case KindSubtract:
		return fmt.Sprintf("Subtract %d", i.Count)
	case KindMoveLeft:
		return fmt.Sprintf("Move left %d %s", i.Count, plural(i.Count, "space", "spaces"))
	case KindMoveRight:
		return fmt.Sprintf("Move right %d %s", i.Count, plural(i.Count, "space", "spaces"))
	case KindInput:
		return "Take input"
	case KindOutput:
		return "Write output"
	case KindLoop:
		return fmt.Sprintf("Loop over %d %s", len(i.Body), plural(uint64(len(i.Body)), "instruction", "instructions"))
	case KindGoto:
		return fmt.Sprintf("Go to alias %s", i.Name)
	}
	return i.Kind.String()
}

func plural(n uint64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func (i Instruction) String() string {
	var b strings.Builder
	i.write(&b)
	return b.String()
}

func (i Instruction) write(b *strings.Builder) {
	switch i.Kind {
	case KindAdd, KindSubtract, KindMoveLeft, KindMoveRight:
		fmt.Fprintf(b, "%s(%d)", i.Kind, i.Count)
	case KindGoto:
		fmt.Fprintf(b, "%s(%q)", i.Kind, i.Name)
	case KindLoop:
		b.WriteString("loop[")
		for n, child := range i.Body {
			if n > 0 {
				b.WriteString(" ")
			}
			child.write(b)
		}
		b.WriteString("]")
	default:
		b.WriteString(i.Kind.String())
	}
}

// Equal reports whether two instructions are identical, spans included.
func (i Instruction) Equal(other Instruction) bool {
	if i.Kind != other.Kind ||
		i.Count != other.Count ||
		i.Name != other.Name ||
		i.Span != other.Span ||
		len(i.Body) != len(other.Body) {
		return false
	}
	for n := range i.Body {
		if !i.Body[n].Equal(other.Body[n]) {
			return false
		}
	}
	return true
}
