package gwy

import (
	"sort"
)

// Object is a named, ordered list of uniquely-named items. Order is
// insertion order and is preserved on a serialize/deserialize
// round-trip, but identity is by name: two objects with the same items
// in different orders are semantically the same object.
//
// Lookups are linear, by design (spec non-goal: "no indexing across
// items"): an Object this size is expected to hold at most a few dozen
// items, and the wire format itself has no index to exploit.
type Object struct {
	name  string
	items []*Item

	// owner is the Item that wraps this object, i.e., the object-typed
	// or object-array-typed item this object is an element of. nil for
	// a root object.
	owner *Item

	// dataSize is the cached sum of item.Size() over items: the exact
	// number of bytes this object's payload occupies on the wire,
	// maintained incrementally by add/remove/take and by upward
	// propagation from mutated descendants.
	dataSize int64

	// arrayIndex is this object's position within an owning object-array
	// item, or -1 if the owner is a plain object-typed item (or there is
	// no owner). It exists only so Path() can disambiguate siblings; it
	// is fixed at construction time and is not kept in sync with later
	// slice mutations of the owning item's ObjectArray().
	arrayIndex int
}

// NewObject creates an empty object with the given name. Use Add to
// populate it one item at a time (duplicate names are rejected, not a
// contract violation, matching gwyfile_object_add's boolean-return
// contract).
func NewObject(name string) *Object {
	return &Object{name: name, arrayIndex: -1}
}

// NewObjectFromItems bulk-constructs an object from a caller-supplied
// item list, mirroring gwyfile_object_newv. Unlike Add, a duplicate name
// here is the caller's contract violation (the list was built once, not
// accreted incrementally), so it panics rather than silently dropping
// items.
func NewObjectFromItems(name string, items []*Item) *Object {
	obj := &Object{name: name, arrayIndex: -1}
	for _, it := range items {
		if it.owner != nil {
			panic("gwy: item already attached to an object")
		}
		obj.items = append(obj.items, it)
		it.owner = obj
		obj.dataSize += it.Size()
	}
	if dup := obj.duplicateName(); dup != "" {
		panic("gwy: duplicate item name in bulk construction: " + dup)
	}
	return obj
}

// Name returns the object's name.
func (o *Object) Name() string { return o.name }

// DataSize returns the exact number of bytes this object's payload
// occupies on the wire: the 4-byte length prefix's value.
func (o *Object) DataSize() int64 { return o.dataSize }

// Size returns the object's total on-wire footprint, including its own
// name and the 4-byte payload-length prefix: what an object-typed
// item's DataSize must equal.
func (o *Object) Size() int64 {
	return int64(len(o.name)) + 1 + 4 + o.dataSize
}

// NItems returns the number of items directly in this object.
func (o *Object) NItems() int { return len(o.items) }

// ItemNames returns item names in insertion order.
func (o *Object) ItemNames() []string {
	names := make([]string, len(o.items))
	for i, it := range o.items {
		names[i] = it.name
	}
	return names
}

// Foreach calls f for every item, in insertion order. f must not add or
// remove items from this object.
func (o *Object) Foreach(f func(*Item)) {
	for _, it := range o.items {
		f(it)
	}
}

// appendRaw attaches item without checking for a duplicate name: used
// only by the decoder, which defers duplicate detection to a single
// post-hoc scan (spec §4.A "Duplicate detection") so that a malformed
// stream is still consumed to the declared length before being
// rejected, rather than silently truncated at the first repeat.
func (o *Object) appendRaw(item *Item) {
	o.items = append(o.items, item)
	item.owner = o
	o.dataSize += item.Size()
}

func (o *Object) indexOf(name string) int {
	for i, it := range o.items {
		if it.name == name {
			return i
		}
	}
	return -1
}

// Add attaches item to the object, failing (returning false) if an item
// with the same name is already present. On success, item.owner is set
// and the item's full size propagates up the owner chain.
func (o *Object) Add(item *Item) bool {
	if item.owner != nil {
		panic("gwy: item already attached to an object")
	}
	if o.indexOf(item.name) >= 0 {
		return false
	}
	o.items = append(o.items, item)
	item.owner = o
	propagate(o, item.Size())
	return true
}

// Remove deletes and frees the item named name, reporting whether an
// item was found. Removal is swap-with-last then pop, as the spec
// requires, then the removed slot's delta is propagated upward.
func (o *Object) Remove(name string) bool {
	i := o.indexOf(name)
	if i < 0 {
		return false
	}
	item := o.items[i]
	last := len(o.items) - 1
	o.items[i] = o.items[last]
	o.items[last] = nil
	o.items = o.items[:last]
	item.owner = nil
	propagate(o, -item.Size())
	return true
}

// Take removes the item named name without freeing it, returning it as
// a (now root) item, or nil if not found.
func (o *Object) Take(name string) *Item {
	i := o.indexOf(name)
	if i < 0 {
		return nil
	}
	item := o.items[i]
	last := len(o.items) - 1
	o.items[i] = o.items[last]
	o.items[last] = nil
	o.items = o.items[:last]
	item.owner = nil
	propagate(o, -item.Size())
	return item
}

// Get returns the item named name, or nil if not present.
func (o *Object) Get(name string) *Item {
	if i := o.indexOf(name); i >= 0 {
		return o.items[i]
	}
	return nil
}

// GetWithType returns the item named name if present and of the given
// type, else nil.
func (o *Object) GetWithType(name string, t Type) *Item {
	it := o.Get(name)
	if it != nil && it.typ == t {
		return it
	}
	return nil
}

// TakeWithType is like Take, but only detaches the item if it is also
// of the given type; otherwise it leaves the object unchanged and
// returns nil.
func (o *Object) TakeWithType(name string, t Type) *Item {
	it := o.Get(name)
	if it == nil || it.typ != t {
		return nil
	}
	return o.Take(name)
}

// duplicateName returns the first duplicate item name found by a
// sort-then-adjacent-compare scan, or "" if all names are unique. The
// scan operates on a copy of the item list so the externally-visible
// insertion order is never disturbed, per the ordering invariant.
func (o *Object) duplicateName() string {
	if len(o.items) < 2 {
		return ""
	}
	sorted := make([]*Item, len(o.items))
	copy(sorted, o.items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].name == sorted[i-1].name {
			return sorted[i].name
		}
	}
	return ""
}

// propagate walks the owner chain starting at obj, adding delta to
// every ancestor object's cached DataSize (and the wrapping item's
// DataSize at each level), terminating at the first object with no
// owning item.
func propagate(obj *Object, delta int64) {
	for obj != nil {
		obj.dataSize += delta
		owner := obj.owner
		if owner == nil {
			return
		}
		owner.dataSize += delta
		obj = owner.owner
	}
}
