package gwy

import "fmt"

// Item is a named, typed value: one of the 13 wire types. The value
// itself is held in a single interface{} field rather than a C-style
// union; Type is the discriminator, and the typed accessors below
// assert on it, panicking on mismatch (a programming error per the
// spec's error-severity design, tier 3: contract violations abort
// rather than return an error).
//
// Go's garbage collector makes the consuming/copying/borrowing
// ownership distinction from the C API largely a documentation concern
// rather than a memory-safety one (see spec §9, "Borrowed vs owned
// data"): a borrowed slice's backing array is kept alive exactly as
// long as anything — including this Item — still refers to it. What we
// preserve is the *dataOwned* flag's observable value (DataOwned)
// and the distinction between "copying" constructors, which always
// clone the input so later caller-side mutation can't be observed
// through the item, and "consuming"/"borrowing" constructors, which
// store the slice as given.
type Item struct {
	name  string
	typ   Type
	owner *Object

	dataOwned   bool
	arrayLength uint32
	dataSize    int64

	value interface{}
}

func mustNonEmptyName(name string) {
	// Construction does not enforce UTF-8/identifier shape (deferred to
	// the conformance checker, per spec §4.C), but an item must always
	// have a name slot to serialize: the empty string is legal content,
	// just flagged EMPTY_NAME by the checker.
	_ = name
}

func newItem(name string, typ Type, value interface{}, owned bool, arrayLength uint32, dataSize int64) *Item {
	mustNonEmptyName(name)
	return &Item{name: name, typ: typ, value: value, dataOwned: owned, arrayLength: arrayLength, dataSize: dataSize}
}

// Name returns the item's name.
func (it *Item) Name() string { return it.name }

// Type returns the item's wire type.
func (it *Item) Type() Type { return it.typ }

// ArrayLength returns the element count for array items, 0 otherwise.
func (it *Item) ArrayLength() uint32 { return it.arrayLength }

// DataOwned reports whether the item owns its value's storage (true for
// consuming/copying constructors and for every item produced by
// decoding) or merely borrows it (const constructors).
func (it *Item) DataOwned() bool { return it.dataOwned }

// DataSize is the exact number of bytes the value occupies on the wire,
// excluding the item's own name and type-tag header, but including the
// array length prefix for array types.
func (it *Item) DataSize() int64 { return it.dataSize }

// Size is DataSize plus the item's own on-wire header (nul-terminated
// name plus one type-tag byte): what an owning object's DataSize sums.
func (it *Item) Size() int64 { return int64(len(it.name)) + 1 + 1 + it.dataSize }

func (it *Item) mustType(t Type) {
	if it.typ != t {
		panic(fmt.Sprintf("gwy: item %q is %s, not %s", it.name, it.typ, t))
	}
}

// --- atomic constructors ---

func NewBool(name string, v bool) *Item { return newItem(name, TypeBool, v, true, 0, 1) }
func NewChar(name string, v byte) *Item { return newItem(name, TypeChar, v, true, 0, 1) }
func NewInt32(name string, v int32) *Item { return newItem(name, TypeInt32, v, true, 0, 4) }
func NewInt64(name string, v int64) *Item { return newItem(name, TypeInt64, v, true, 0, 8) }
func NewDouble(name string, v float64) *Item { return newItem(name, TypeDouble, v, true, 0, 8) }

// --- atomic getters ---

func (it *Item) Bool() bool     { it.mustType(TypeBool); return it.value.(bool) }
func (it *Item) Char() byte     { it.mustType(TypeChar); return it.value.(byte) }
func (it *Item) Int32() int32   { it.mustType(TypeInt32); return it.value.(int32) }
func (it *Item) Int64() int64   { it.mustType(TypeInt64); return it.value.(int64) }
func (it *Item) Double() float64 { it.mustType(TypeDouble); return it.value.(float64) }

// --- atomic setters (always "consuming": atomic values have no heap storage to own) ---

func (it *Item) SetBool(v bool) { it.mustType(TypeBool); it.setValue(v, true, 1) }
func (it *Item) SetChar(v byte) { it.mustType(TypeChar); it.setValue(v, true, 1) }
func (it *Item) SetInt32(v int32) { it.mustType(TypeInt32); it.setValue(v, true, 4) }
func (it *Item) SetInt64(v int64) { it.mustType(TypeInt64); it.setValue(v, true, 8) }
func (it *Item) SetDouble(v float64) { it.mustType(TypeDouble); it.setValue(v, true, 8) }

// --- string ---

// NewString creates a string item, consuming (storing directly) v.
func NewString(name, v string) *Item {
	return newItem(name, TypeString, v, true, 0, int64(len(v))+1)
}

// NewStringCopy is functionally identical to NewString: Go strings are
// immutable, so there is nothing to defensively copy. Kept as a
// separate entry point to mirror gwyfile_item_new_string_copy's call
// site in the style of the original API.
func NewStringCopy(name, v string) *Item { return NewString(name, v) }

// NewStringConst borrows v: the item is marked DataOwned()==false, but
// since Go strings can't be mutated through a borrowed reference,
// behavior is otherwise identical to NewString.
func NewStringConst(name, v string) *Item {
	return newItem(name, TypeString, v, false, 0, int64(len(v))+1)
}

func (it *Item) Str() string { it.mustType(TypeString); return it.value.(string) }

func (it *Item) SetStr(v string)      { it.mustType(TypeString); it.setValue(v, true, int64(len(v))+1) }
func (it *Item) SetStrCopy(v string)  { it.SetStr(v) }
func (it *Item) SetStrConst(v string) { it.mustType(TypeString); it.setValue(v, false, int64(len(v))+1) }

// TakeStr returns the item's string value if the item owns it,
// transferring conceptual ownership to the caller (the item should not
// be used afterward). Borrowed items cannot be taken: the caller never
// gave this item ownership to transfer back.
func (it *Item) TakeStr() (string, error) {
	it.mustType(TypeString)
	if !it.dataOwned {
		return "", errBorrowedTake(it.name)
	}
	v := it.value.(string)
	it.value = nil
	return v, nil
}

func errBorrowedTake(name string) error {
	return fmt.Errorf("gwy: item %q: cannot take a borrowed (const) value", name)
}

// --- object ---

// NewObjectItem wraps obj in an 'o' item, taking ownership. obj must not
// already be wrapped by another item.
func NewObjectItem(name string, obj *Object) *Item {
	if obj.owner != nil {
		panic("gwy: object already wrapped by an item")
	}
	it := newItem(name, TypeObject, obj, true, 0, obj.Size())
	obj.owner = it
	obj.arrayIndex = -1
	return it
}

// ObjectValue returns the wrapped object for an 'o' item.
func (it *Item) ObjectValue() *Object { it.mustType(TypeObject); return it.value.(*Object) }

// ReleaseObject detaches the wrapped object, making it a root, and
// "destroys" the wrapper: the item must not be used afterward. If the
// item itself is still attached to a parent object, it is first
// removed from that parent (propagating the size decrease) so the tree
// invariants hold with the item gone.
func (it *Item) ReleaseObject() (*Object, error) {
	it.mustType(TypeObject)
	if it.owner != nil {
		if !it.owner.Remove(it.name) {
			return nil, fmt.Errorf("gwy: item %q: inconsistent owner link", it.name)
		}
	}
	obj := it.value.(*Object)
	obj.owner = nil
	it.value = nil
	return obj, nil
}

// SetObject replaces the wrapped object, taking ownership of replacement
// and propagating the resulting size delta.
func (it *Item) SetObject(replacement *Object) {
	it.mustType(TypeObject)
	if replacement.owner != nil {
		panic("gwy: object already wrapped by an item")
	}
	old := it.value.(*Object)
	old.owner = nil
	replacement.owner = it
	replacement.arrayIndex = -1
	it.setValue(replacement, true, replacement.Size())
}

// --- fixed-element-size arrays: char, int32, int64, double ---

func NewCharArray(name string, v []byte) *Item      { return newArrayItem(name, TypeCharArray, v, true, uint32(len(v)), int64(len(v))) }
func NewCharArrayCopy(name string, v []byte) *Item  { c := append([]byte(nil), v...); return NewCharArray(name, c) }
func NewCharArrayConst(name string, v []byte) *Item {
	return newArrayItem(name, TypeCharArray, v, false, uint32(len(v)), int64(len(v)))
}

func NewInt32Array(name string, v []int32) *Item {
	return newArrayItem(name, TypeInt32Array, v, true, uint32(len(v)), int64(len(v))*4)
}
func NewInt32ArrayCopy(name string, v []int32) *Item {
	c := append([]int32(nil), v...)
	return NewInt32Array(name, c)
}
func NewInt32ArrayConst(name string, v []int32) *Item {
	return newArrayItem(name, TypeInt32Array, v, false, uint32(len(v)), int64(len(v))*4)
}

func NewInt64Array(name string, v []int64) *Item {
	return newArrayItem(name, TypeInt64Array, v, true, uint32(len(v)), int64(len(v))*8)
}
func NewInt64ArrayCopy(name string, v []int64) *Item {
	c := append([]int64(nil), v...)
	return NewInt64Array(name, c)
}
func NewInt64ArrayConst(name string, v []int64) *Item {
	return newArrayItem(name, TypeInt64Array, v, false, uint32(len(v)), int64(len(v))*8)
}

func NewDoubleArray(name string, v []float64) *Item {
	return newArrayItem(name, TypeDoubleArray, v, true, uint32(len(v)), int64(len(v))*8)
}
func NewDoubleArrayCopy(name string, v []float64) *Item {
	c := append([]float64(nil), v...)
	return NewDoubleArray(name, c)
}
func NewDoubleArrayConst(name string, v []float64) *Item {
	return newArrayItem(name, TypeDoubleArray, v, false, uint32(len(v)), int64(len(v))*8)
}

func newArrayItem(name string, t Type, value interface{}, owned bool, n uint32, elementBytes int64) *Item {
	if n == 0 {
		panic(fmt.Sprintf("gwy: %s item %q: array must be nonzero length", t, name))
	}
	return newItem(name, t, value, owned, n, 4+elementBytes)
}

func (it *Item) CharArray() []byte      { it.mustType(TypeCharArray); return it.value.([]byte) }
func (it *Item) Int32Array() []int32    { it.mustType(TypeInt32Array); return it.value.([]int32) }
func (it *Item) Int64Array() []int64    { it.mustType(TypeInt64Array); return it.value.([]int64) }
func (it *Item) DoubleArray() []float64 { it.mustType(TypeDoubleArray); return it.value.([]float64) }

func (it *Item) SetCharArray(v []byte) {
	it.mustType(TypeCharArray)
	if len(v) == 0 {
		panic("gwy: char array must be nonzero length")
	}
	it.arrayLength = uint32(len(v))
	it.setValue(v, true, 4+int64(len(v)))
}

// SetCharArrayCopy is SetCharArray on a fresh copy of v, so later
// caller-side mutation of v is not observed through the item; it
// mirrors the New*Copy/New*Const split on the setter side.
func (it *Item) SetCharArrayCopy(v []byte) { c := append([]byte(nil), v...); it.SetCharArray(c) }

func (it *Item) SetCharArrayConst(v []byte) {
	it.mustType(TypeCharArray)
	if len(v) == 0 {
		panic("gwy: char array must be nonzero length")
	}
	it.arrayLength = uint32(len(v))
	it.setValue(v, false, 4+int64(len(v)))
}

func (it *Item) SetInt32Array(v []int32) {
	it.mustType(TypeInt32Array)
	if len(v) == 0 {
		panic("gwy: int32 array must be nonzero length")
	}
	it.arrayLength = uint32(len(v))
	it.setValue(v, true, 4+int64(len(v))*4)
}

func (it *Item) SetInt32ArrayCopy(v []int32) { c := append([]int32(nil), v...); it.SetInt32Array(c) }

func (it *Item) SetInt32ArrayConst(v []int32) {
	it.mustType(TypeInt32Array)
	if len(v) == 0 {
		panic("gwy: int32 array must be nonzero length")
	}
	it.arrayLength = uint32(len(v))
	it.setValue(v, false, 4+int64(len(v))*4)
}

func (it *Item) SetInt64Array(v []int64) {
	it.mustType(TypeInt64Array)
	if len(v) == 0 {
		panic("gwy: int64 array must be nonzero length")
	}
	it.arrayLength = uint32(len(v))
	it.setValue(v, true, 4+int64(len(v))*8)
}

func (it *Item) SetInt64ArrayCopy(v []int64) { c := append([]int64(nil), v...); it.SetInt64Array(c) }

func (it *Item) SetInt64ArrayConst(v []int64) {
	it.mustType(TypeInt64Array)
	if len(v) == 0 {
		panic("gwy: int64 array must be nonzero length")
	}
	it.arrayLength = uint32(len(v))
	it.setValue(v, false, 4+int64(len(v))*8)
}

func (it *Item) SetDoubleArray(v []float64) {
	it.mustType(TypeDoubleArray)
	if len(v) == 0 {
		panic("gwy: double array must be nonzero length")
	}
	it.arrayLength = uint32(len(v))
	it.setValue(v, true, 4+int64(len(v))*8)
}

func (it *Item) SetDoubleArrayCopy(v []float64) { c := append([]float64(nil), v...); it.SetDoubleArray(c) }

func (it *Item) SetDoubleArrayConst(v []float64) {
	it.mustType(TypeDoubleArray)
	if len(v) == 0 {
		panic("gwy: double array must be nonzero length")
	}
	it.arrayLength = uint32(len(v))
	it.setValue(v, false, 4+int64(len(v))*8)
}

// TakeCharArray returns the item's backing slice if the item owns it,
// transferring conceptual ownership to the caller. Borrowed (const)
// items cannot be taken.
func (it *Item) TakeCharArray() ([]byte, error) {
	it.mustType(TypeCharArray)
	if !it.dataOwned {
		return nil, errBorrowedTake(it.name)
	}
	v := it.value.([]byte)
	it.value = nil
	return v, nil
}

func (it *Item) TakeInt32Array() ([]int32, error) {
	it.mustType(TypeInt32Array)
	if !it.dataOwned {
		return nil, errBorrowedTake(it.name)
	}
	v := it.value.([]int32)
	it.value = nil
	return v, nil
}

func (it *Item) TakeInt64Array() ([]int64, error) {
	it.mustType(TypeInt64Array)
	if !it.dataOwned {
		return nil, errBorrowedTake(it.name)
	}
	v := it.value.([]int64)
	it.value = nil
	return v, nil
}

func (it *Item) TakeDoubleArray() ([]float64, error) {
	it.mustType(TypeDoubleArray)
	if !it.dataOwned {
		return nil, errBorrowedTake(it.name)
	}
	v := it.value.([]float64)
	it.value = nil
	return v, nil
}

// --- string array: variable-element-size, wire-encoded as N nul-terminated strings ---

func NewStringArray(name string, v []string) *Item {
	return newArrayItem(name, TypeStringArray, v, true, uint32(len(v)), stringArrayBytes(v))
}
func NewStringArrayCopy(name string, v []string) *Item {
	c := append([]string(nil), v...)
	return NewStringArray(name, c)
}
func NewStringArrayConst(name string, v []string) *Item {
	return newArrayItem(name, TypeStringArray, v, false, uint32(len(v)), stringArrayBytes(v))
}

func stringArrayBytes(v []string) int64 {
	var n int64
	for _, s := range v {
		n += int64(len(s)) + 1
	}
	return n
}

func (it *Item) StringArray() []string { it.mustType(TypeStringArray); return it.value.([]string) }

func (it *Item) SetStringArray(v []string) {
	it.mustType(TypeStringArray)
	if len(v) == 0 {
		panic("gwy: string array must be nonzero length")
	}
	it.arrayLength = uint32(len(v))
	it.setValue(v, true, 4+stringArrayBytes(v))
}

func (it *Item) SetStringArrayCopy(v []string) { c := append([]string(nil), v...); it.SetStringArray(c) }

func (it *Item) SetStringArrayConst(v []string) {
	it.mustType(TypeStringArray)
	if len(v) == 0 {
		panic("gwy: string array must be nonzero length")
	}
	it.arrayLength = uint32(len(v))
	it.setValue(v, false, 4+stringArrayBytes(v))
}

func (it *Item) TakeStringArray() ([]string, error) {
	it.mustType(TypeStringArray)
	if !it.dataOwned {
		return nil, errBorrowedTake(it.name)
	}
	v := it.value.([]string)
	it.value = nil
	return v, nil
}

// --- object array: always owned, never borrowed ---

func NewObjectArray(name string, objs []*Object) *Item {
	if len(objs) == 0 {
		panic(fmt.Sprintf("gwy: object-array item %q: array must be nonzero length", name))
	}
	it := newItem(name, TypeObjectArray, objs, true, uint32(len(objs)), 4+objectArrayBytes(objs))
	for i, obj := range objs {
		if obj.owner != nil {
			panic("gwy: object already wrapped by an item")
		}
		obj.owner = it
		obj.arrayIndex = i
	}
	return it
}

func objectArrayBytes(objs []*Object) int64 {
	var n int64
	for _, obj := range objs {
		n += obj.Size()
	}
	return n
}

func (it *Item) ObjectArray() []*Object { it.mustType(TypeObjectArray); return it.value.([]*Object) }

// TakeObjectArray returns the wrapped objects, detaching them from this
// item (each object's owner link is cleared, making them roots) and
// "destroying" the item: it must not be used afterward. Object-array
// items are always owned (there is no borrowed/const variant), so
// unlike the other Take* methods this never fails on that account.
func (it *Item) TakeObjectArray() ([]*Object, error) {
	it.mustType(TypeObjectArray)
	objs := it.value.([]*Object)
	for _, obj := range objs {
		obj.owner = nil
		obj.arrayIndex = -1
	}
	it.value = nil
	return objs, nil
}

// setValue installs a new value/ownership/size for an already-attached
// (or root) item, computing the size delta and propagating it up the
// owner chain; this is the single place every Set* funnels through so
// the invariant in spec §8 ("after any single mutator returns, all
// three [size] invariants hold") has one implementation.
func (it *Item) setValue(value interface{}, owned bool, newDataSize int64) {
	delta := newDataSize - it.dataSize
	it.value = value
	it.dataOwned = owned
	it.dataSize = newDataSize
	if delta != 0 && it.owner != nil {
		propagate(it.owner, delta)
	}
}
