package plist

// Dictionary is an insertion-ordered mapping from string keys to
// Object values. A Set with an existing key overwrites the value in
// place and does not move the key to the end; a Set with a new key
// appends it, preserving first-insertion order on Keys/Range.
//
// Grounded on plist.go's dictionary struct (map + parallel key/value
// slices), with the lazy sort-for-determinism step removed: that
// struct sorted keys on first read to give the XML/binary encoders a
// stable iteration order, which this package has no encoder to need.
type Dictionary struct {
	index  map[string]int
	keys   []string
	values []Object
}

// NewDictionary returns an empty Dictionary with room for n entries.
func NewDictionary(n int) *Dictionary {
	return &Dictionary{
		index:  make(map[string]int, n),
		keys:   make([]string, 0, n),
		values: make([]Object, 0, n),
	}
}

func (*Dictionary) Kind() Kind { return DictionaryKind }

// Set inserts key if it is not already present, or overwrites its
// value in place if it is. It reports whether key already existed, so
// callers that must warn on duplicate keys (§7) can do so.
func (d *Dictionary) Set(key string, value Object) (existed bool) {
	if i, ok := d.index[key]; ok {
		d.values[i] = value
		return true
	}
	d.index[key] = len(d.keys)
	d.keys = append(d.keys, key)
	d.values = append(d.values, value)
	return false
}

// Get returns the value stored for key and whether it was present.
func (d *Dictionary) Get(key string) (Object, bool) {
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return d.values[i], true
}

// Keys returns the dictionary's keys in insertion order. The returned
// slice is owned by the caller.
func (d *Dictionary) Keys() []string {
	k := make([]string, len(d.keys))
	copy(k, d.keys)
	return k
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.keys)
}

// Range calls r for each entry in insertion order.
func (d *Dictionary) Range(r func(key string, v Object)) {
	for i, k := range d.keys {
		r(k, d.values[i])
	}
}

func (d *Dictionary) Equal(other Object) bool {
	o, ok := other.(*Dictionary)
	if !ok || d.Len() != o.Len() {
		return false
	}
	for i, k := range d.keys {
		ov, ok := o.Get(k)
		if !ok || !d.values[i].Equal(ov) {
			return false
		}
	}
	return true
}

func (d *Dictionary) Copy() Object {
	c := NewDictionary(len(d.keys))
	for i, k := range d.keys {
		c.Set(k, d.values[i].Copy())
	}
	return c
}
