package devices

import "bytes"

// Memory is an in-memory device.
type Memory struct {
	Input  []byte
	Output bytes.Buffer
	// Stall makes each Poll report "not yet" this many times before yielding a byte.
	Stall int
	// Polls counts Poll calls.
	Polls int

	stalled int
}

var _ Device = new(Memory)

func NewMemory(input string) *Memory {
	return &Memory{
		Input: []byte(input),
	}
}

func (m *Memory) Poll() (byte, bool, error) {
	m.Polls++
	if m.stalled < m.Stall {
		m.stalled++
		return 0, false, nil
	}
	m.stalled = 0
	if len(m.Input) == 0 {
		return 0, false, ErrEndOfInput
	}
	b := m.Input[0]
	m.Input = m.Input[1:]
	return b, true, nil
}

func (m *Memory) WriteByte(b byte) error {
	return m.Output.WriteByte(b)
}
