package plist

// Array is an ordered sequence of Object values. Duplicates are
// permitted and order is significant to Equal.
type Array struct {
	values []Object
}

// NewArray returns an empty Array with room for n values.
func NewArray(n int) *Array {
	return &Array{values: make([]Object, 0, n)}
}

func (*Array) Kind() Kind { return ArrayKind }

// Push appends a value to the end of the array.
func (a *Array) Push(v Object) {
	a.values = append(a.values, v)
}

// At returns the value at index i. It panics if i is out of range,
// same as a plain slice index.
func (a *Array) At(i int) Object {
	return a.values[i]
}

// Len returns the number of values in the array.
func (a *Array) Len() int {
	return len(a.values)
}

// Range calls r for each value in order.
func (a *Array) Range(r func(i int, v Object)) {
	for i, v := range a.values {
		r(i, v)
	}
}

func (a *Array) Equal(other Object) bool {
	o, ok := other.(*Array)
	if !ok || len(a.values) != len(o.values) {
		return false
	}
	for i, v := range a.values {
		if !v.Equal(o.values[i]) {
			return false
		}
	}
	return true
}

func (a *Array) Copy() Object {
	c := NewArray(len(a.values))
	for _, v := range a.values {
		c.values = append(c.values, v.Copy())
	}
	return c
}
