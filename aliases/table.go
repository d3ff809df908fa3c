package aliases

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

var (
	ErrTapeFull  = errors.New("no free cell for alias")
	ErrConflict  = errors.New("address already bound")
	ErrInvariant = errors.New("alias resolution invariant violation")
)

// Cells is the view of the tape the allocator needs.
type Cells interface {
	Size() uint64
	ValueAt(addr uint64) (byte, error)
}

// Table binds alias names to tape addresses in both directions.
type Table struct {
	known     []string
	addresses map[string]uint64
	names     map[uint64]string
}

func NewTable(known []string) *Table {
	return &Table{
		known:     lo.Uniq(known),
		addresses: make(map[string]uint64),
		names:     make(map[uint64]string),
	}
}

// Known returns the names discovered by the parser.
func (t *Table) Known() []string {
	return slices.Clone(t.known)
}

func (t *Table) Len() int {
	return len(t.addresses)
}

// Reset drops every binding. Known names are kept.
func (t *Table) Reset() {
	clear(t.addresses)
	clear(t.names)
}

// bind is the only place both maps are written.
func (t *Table) bind(name string, addr uint64) error {
	if other, ok := t.names[addr]; ok && other != name {
		return fmt.Errorf("%w: %d is %s, not %s", ErrConflict, addr, other, name)
	}
	if prev, ok := t.addresses[name]; ok {
		delete(t.names, prev)
	}
	t.addresses[name] = addr
	t.names[addr] = name
	return nil
}

// Assign binds name to the highest address whose cell is zero and which no other
// name owns.
func (t *Table) Assign(name string, cells Cells) (uint64, error) {
	for addr := cells.Size(); addr > 0; addr-- {
		index := addr - 1
		if owner, ok := t.names[index]; ok && owner != name {
			continue
		}
		value, err := cells.ValueAt(index)
		if err != nil {
			return 0, err
		}
		if value != 0 {
			continue
		}
		if err := t.bind(name, index); err != nil {
			return 0, err
		}
		return index, nil
	}
	return 0, &AllocationError{
		Name: name,
		Size: cells.Size(),
	}
}

// Preallocate assigns every known name in discovery order.
func (t *Table) Preallocate(cells Cells) error {
	for _, name := range t.known {
		if _, ok := t.addresses[name]; ok {
			continue
		}
		if _, err := t.Assign(name, cells); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) Resolve(name string) (uint64, bool) {
	addr, ok := t.addresses[name]
	return addr, ok
}

func (t *Table) NameAt(addr uint64) (string, bool) {
	name, ok := t.names[addr]
	return name, ok
}

// Shift moves every binding up by n addresses, following cells prepended to the
// tape.
func (t *Table) Shift(n uint64) {
	if n == 0 {
		return
	}
	names := make(map[uint64]string, len(t.names))
	for name, addr := range t.addresses {
		addr += n
		t.addresses[name] = addr
		names[addr] = name
	}
	t.names = names
}

// Bindings returns a copy of the name to address mapping.
func (t *Table) Bindings() map[string]uint64 {
	ret := make(map[string]uint64, len(t.addresses))
	for name, addr := range t.addresses {
		ret[name] = addr
	}
	return ret
}

// Names returns the bound names sorted by address, highest first.
func (t *Table) Names() []string {
	names := lo.Keys(t.addresses)
	slices.SortFunc(names, func(a, b string) int {
		x, y := t.addresses[a], t.addresses[b]
		switch {
		case x > y:
			return -1
		case x < y:
			return 1
		}
		return 0
	})
	return names
}

// InvariantError reports a name that pre-allocation should have bound.
type InvariantError struct {
	Name string
}

func (i *InvariantError) Error() string {
	return fmt.Sprintf("alias %s was not found and pre-allocation was not disabled; the parser and the allocator disagree", i.Name)
}

func (i *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}

// AllocationError reports a tape with no free cell left for a name.
type AllocationError struct {
	Name string
	Size uint64
}

func (a *AllocationError) Error() string {
	return fmt.Sprintf("no free cell for alias %s: all %d cells are in use or nonzero", a.Name, a.Size)
}

func (a *AllocationError) Is(target error) bool {
	return target == ErrTapeFull
}
