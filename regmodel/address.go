package regmodel

import (
	"fmt"
	"iter"
	"slices"
)

// Placement is the address declaration of an addressable node.
type Placement struct {
	// Offset is the address of the first element relative to the parent.
	Offset uint64
	// Dim holds the array dimensions, outermost first. Empty when the node
	// is not an array.
	Dim []int
	// ArrayStride is the address distance between consecutive elements.
	ArrayStride uint64
}

func (p *Placement) IsArray() bool  { return len(p.Dim) != 0 }
func (p *Placement) Dims() []int    { return slices.Clone(p.Dim) }
func (p *Placement) Stride() uint64 { return p.ArrayStride }

// AddressOffset returns the offset relative to the parent of the element at
// idx. Arrays need one index per dimension; non-arrays take none.
func (p *Placement) AddressOffset(idx ...int) (uint64, error) {
	if !p.IsArray() {
		if len(idx) != 0 {
			return 0, fmt.Errorf("%w: index %v given for a non-array", ErrIndexRange, idx)
		}
		return p.Offset, nil
	}
	if len(idx) == 0 {
		return 0, ErrIndexRequired
	}
	flat, err := p.flatten(idx)
	if err != nil {
		return 0, err
	}
	return p.Offset + uint64(flat)*p.ArrayStride, nil
}

// Size returns the number of elements declared by the dimensions.
func (p *Placement) Size() int {
	n := 1
	for _, d := range p.Dim {
		n *= d
	}
	return n
}

func (p *Placement) flatten(idx []int) (int, error) {
	if len(idx) != len(p.Dim) {
		return 0, fmt.Errorf("%w: %d indices for %d dimensions", ErrIndexRange, len(idx), len(p.Dim))
	}
	flat := 0
	for i, x := range idx {
		if x < 0 || x >= p.Dim[i] {
			return 0, fmt.Errorf("%w: index %d not in [0, %d)", ErrIndexRange, x, p.Dim[i])
		}
		flat = flat*p.Dim[i] + x
	}
	return flat, nil
}

// RepresentativeIndex returns the all zero index for p, or nil for a
// non-array. Its address is the base address of the array.
func (p *Placement) RepresentativeIndex() []int {
	if !p.IsArray() {
		return nil
	}
	return make([]int, len(p.Dim))
}

// Instance is one concrete element of an addressable node.
type Instance struct {
	Index  []int
	Offset uint64
}

// Unrolled enumerates the concrete elements of p in row-major order. A
// non-array yields itself once with a nil index. Each call starts over.
func (p *Placement) Unrolled() iter.Seq[Instance] {
	return func(yield func(Instance) bool) {
		if !p.IsArray() {
			yield(Instance{Offset: p.Offset})
			return
		}
		for _, d := range p.Dim {
			if d <= 0 {
				return
			}
		}
		idx := make([]int, len(p.Dim))
		for flat := uint64(0); ; flat++ {
			inst := Instance{
				Index:  slices.Clone(idx),
				Offset: p.Offset + flat*p.ArrayStride,
			}
			if !yield(inst) {
				return
			}
			i := len(idx) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < p.Dim[i] {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}

// CountInstances counts the elements of seq by enumerating them.
func CountInstances(seq iter.Seq[Instance]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}
