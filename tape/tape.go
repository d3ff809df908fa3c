package tape

import (
	"fmt"
	"slices"
)

const DefaultSize = 30000

// MaxSize bounds growth under the append policy.
const MaxSize = 1 << 31

type Tape struct {
	cells      []byte
	pointer    uint64
	origin     uint64
	cellPolicy CellPolicy
	tapePolicy TapePolicy
}

func New(size uint64, cellPolicy CellPolicy, tapePolicy TapePolicy) (*Tape, error) {
	if size == 0 {
		return nil, fmt.Errorf("tape size must be positive")
	}
	if size > MaxSize {
		return nil, fmt.Errorf("tape size %d exceeds %d", size, uint64(MaxSize))
	}
	if !cellPolicy.Valid() {
		return nil, fmt.Errorf("invalid cell policy: %q", cellPolicy)
	}
	if !tapePolicy.Valid() {
		return nil, fmt.Errorf("invalid tape policy: %q", tapePolicy)
	}
	return &Tape{
		cells:      make([]byte, size),
		cellPolicy: cellPolicy,
		tapePolicy: tapePolicy,
	}, nil
}

func (t *Tape) CellPolicy() CellPolicy {
	return t.cellPolicy
}

func (t *Tape) TapePolicy() TapePolicy {
	return t.tapePolicy
}

func (t *Tape) Size() uint64 {
	return uint64(len(t.cells))
}

func (t *Tape) Pointer() uint64 {
	return t.pointer
}

// Origin is the number of cells prepended since the last Clear.
func (t *Tape) Origin() uint64 {
	return t.origin
}

// Cells returns a copy of the cell contents.
func (t *Tape) Cells() []byte {
	return slices.Clone(t.cells)
}

func (t *Tape) Value() byte {
	return t.cells[t.pointer]
}

func (t *Tape) SetValue(v byte) {
	t.cells[t.pointer] = v
}

func (t *Tape) ValueAt(addr uint64) (byte, error) {
	if addr >= t.Size() {
		return 0, t.jumpError(addr)
	}
	return t.cells[addr], nil
}

func (t *Tape) SetValueAt(addr uint64, v byte) error {
	if addr >= t.Size() {
		return t.jumpError(addr)
	}
	t.cells[addr] = v
	return nil
}

func (t *Tape) MoveTo(addr uint64) error {
	if addr >= t.Size() {
		return t.jumpError(addr)
	}
	t.pointer = addr
	return nil
}

func (t *Tape) jumpError(addr uint64) error {
	return &PointerRangeError{
		Limit:     t.Size() - 1,
		Distance:  addr,
		Pointer:   t.pointer,
		Direction: DirectionJump,
	}
}

// Clear zeroes every cell. The size is unchanged.
func (t *Tape) Clear() {
	clear(t.cells)
	t.origin = 0
}

func (t *Tape) Realign() {
	t.pointer = 0
}

func (t *Tape) Add(n uint64) error {
	value := t.cells[t.pointer]
	headroom := uint64(255 - value)
	switch t.cellPolicy {
	case CellClamp:
		if n > headroom {
			t.cells[t.pointer] = 255
			return nil
		}
	case CellFail:
		if n > headroom {
			return &CellRangeError{
				Address: t.pointer,
				Value:   value,
				Delta:   n,
				Op:      OpAdd,
			}
		}
	}
	t.cells[t.pointer] = value + byte(n%256)
	return nil
}

func (t *Tape) Sub(n uint64) error {
	value := t.cells[t.pointer]
	switch t.cellPolicy {
	case CellClamp:
		if n > uint64(value) {
			t.cells[t.pointer] = 0
			return nil
		}
	case CellFail:
		if n > uint64(value) {
			return &CellRangeError{
				Address: t.pointer,
				Value:   value,
				Delta:   n,
				Op:      OpSub,
			}
		}
	}
	t.cells[t.pointer] = value - byte(n%256)
	return nil
}

func (t *Tape) MoveRight(n uint64) error {
	size := t.Size()
	room := size - 1 - t.pointer
	if n <= room {
		t.pointer += n
		return nil
	}

	switch t.tapePolicy {

	case TapeCircular:
		t.pointer = (t.pointer + n%size) % size
		return nil

	case TapeAppend:
		// grows by the overshoot, not by n, so the pointer lands on the new
		// last cell as n single steps would leave it
		grow := n - room
		if grow > MaxSize-size {
			return &PointerRangeError{
				Limit:     MaxSize - 1,
				Distance:  n,
				Pointer:   t.pointer,
				Direction: DirectionRight,
			}
		}
		t.cells = append(t.cells, make([]byte, grow)...)
		t.pointer = t.Size() - 1
		return nil

	}

	return &PointerRangeError{
		Limit:     size - 1,
		Distance:  n,
		Pointer:   t.pointer,
		Direction: DirectionRight,
	}
}

func (t *Tape) MoveLeft(n uint64) error {
	if n <= t.pointer {
		t.pointer -= n
		return nil
	}
	size := t.Size()

	switch t.tapePolicy {

	case TapeCircular:
		t.pointer = (t.pointer + size - n%size) % size
		return nil

	case TapeAppend:
		// grows by the overshoot, as MoveRight does
		grow := n - t.pointer
		if grow > MaxSize-size {
			return &PointerRangeError{
				Limit:     0,
				Distance:  n,
				Pointer:   t.pointer,
				Direction: DirectionLeft,
			}
		}
		t.cells = append(make([]byte, grow, grow+size), t.cells...)
		t.origin += grow
		t.pointer = 0
		return nil

	}

	return &PointerRangeError{
		Limit:     0,
		Distance:  n,
		Pointer:   t.pointer,
		Direction: DirectionLeft,
	}
}
