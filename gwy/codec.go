package gwy

import (
	"fmt"
	"io"
	"math/bits"

	"github.com/gwyddion/gwyfile-go/internal/wire"
)

// Magic is the 4-byte header every GWY stream begins with.
var Magic = [4]byte{'G', 'W', 'Y', 'P'}

// DefaultMaxDepth is the default nesting-depth cap applied while
// decoding, guarding against stack exhaustion from adversarial input.
const DefaultMaxDepth = 200

// decodeState threads the depth counter and the opt-in max-depth limit
// through the recursive descent without a struct field on Object/Item
// themselves (which would otherwise need to be set before we even know
// whether a node will end up part of a decode).
type decodeState struct {
	depth    int
	maxDepth int
}

// DecodeObject decodes exactly one object from r (object_fread in the
// original API): no magic header, maxSize is the total budget
// available to this object and everything nested inside it.
func DecodeObject(r io.Reader, maxSize uint64) (*Object, error) {
	return DecodeObjectDepth(r, maxSize, DefaultMaxDepth)
}

// DecodeObjectDepth is DecodeObject with an explicit nesting-depth cap.
func DecodeObjectDepth(r io.Reader, maxSize uint64, maxDepth int) (*Object, error) {
	br := wire.NewReader(r, maxSize)
	st := &decodeState{maxDepth: maxDepth}
	return decodeObject(br, st)
}

// Fwrite encodes object to w as a bare object (object_fwrite): no magic
// header. Use the package-level Fwrite for the file-level form.
func (o *Object) Fwrite(w io.Writer) error {
	buf, err := EncodeObject(o)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// Fread decodes a full GWY stream from r: a 4-byte magic header
// followed by exactly one object (gwyfile_fread in the original API).
func Fread(r io.Reader, maxSize uint64) (*Object, error) {
	return FreadDepth(r, maxSize, DefaultMaxDepth)
}

// FreadDepth is Fread with an explicit nesting-depth cap.
func FreadDepth(r io.Reader, maxSize uint64, maxDepth int) (*Object, error) {
	br := wire.NewReader(r, maxSize)
	magic, err := br.ReadFull(4)
	if err != nil {
		if err == wire.Confinement {
			return nil, newDataError(CodeMagic, "", "stream too short for magic header")
		}
		return nil, err
	}
	if magic[0] != Magic[0] || magic[1] != Magic[1] || magic[2] != Magic[2] || magic[3] != Magic[3] {
		return nil, newDataError(CodeMagic, "", "bad magic header: % x", magic)
	}
	st := &decodeState{maxDepth: maxDepth}
	return decodeObject(br, st)
}

// Fwrite encodes a full GWY stream to w: the magic header followed by
// obj (gwyfile_fwrite in the original API).
func Fwrite(obj *Object, w io.Writer) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}
	return obj.Fwrite(w)
}

// decodeObject implements spec §4.C's "Decoding algorithm (objects)".
func decodeObject(r *wire.Reader, st *decodeState) (*Object, error) {
	if st.depth >= st.maxDepth {
		return nil, newDataError(CodeTooDeepNesting, "", "nesting exceeds maximum depth %d", st.maxDepth)
	}
	name, err := r.ReadCString()
	if err != nil {
		return nil, wrapReadErr(err, "")
	}
	payloadLen, err := r.ReadUint32()
	if err != nil {
		return nil, wrapReadErr(err, name)
	}
	payload, err := r.Sub(uint64(payloadLen))
	if err != nil {
		return nil, newDataError(CodeConfinement, name, "object payload length %d exceeds remaining budget", payloadLen)
	}

	obj := NewObject(name)
	childSt := &decodeState{depth: st.depth + 1, maxDepth: st.maxDepth}
	for uint64(obj.dataSize) < uint64(payloadLen) {
		item, err := decodeItem(payload, childSt)
		if err != nil {
			return nil, err
		}
		// appendRaw bypasses the duplicate-name rejection of Add: the
		// spec requires a single post-hoc scan instead (see below), so
		// that decoding always consumes exactly payloadLen bytes even
		// in the presence of duplicates, and reports DUPLICATE_NAME
		// rather than silently dropping the later item.
		obj.appendRaw(item)
	}
	if uint64(obj.dataSize) != uint64(payloadLen) {
		return nil, newDataError(CodeObjectSize, obj.Path(), "object payload size mismatch: got %d, declared %d", obj.dataSize, payloadLen)
	}
	if dup := obj.duplicateName(); dup != "" {
		return nil, newDataError(CodeDuplicateName, obj.Path(), "duplicate item name %q", dup)
	}
	return obj, nil
}

// decodeItem implements spec §4.C's "Decoding algorithm (items)".
func decodeItem(r *wire.Reader, st *decodeState) (*Item, error) {
	name, err := r.ReadCString()
	if err != nil {
		return nil, wrapReadErr(err, "")
	}
	typeByte, err := r.ReadByte()
	if err != nil {
		return nil, wrapReadErr(err, name)
	}
	typ := Type(typeByte)
	if !typ.Valid() {
		return nil, newDataError(CodeItemType, name, "unrecognized item type byte %#x", typeByte)
	}

	if typ.IsArray() {
		n, err := r.ReadUint32()
		if err != nil {
			return nil, wrapReadErr(err, name)
		}
		if n == 0 {
			return nil, newDataError(CodeArraySize, name, "array length must be nonzero")
		}
		return decodeArrayPayload(r, st, name, typ, n)
	}
	return decodeAtomicPayload(r, st, name, typ)
}

func decodeAtomicPayload(r *wire.Reader, st *decodeState, name string, typ Type) (*Item, error) {
	switch typ {
	case TypeBool:
		b, err := r.ReadByte()
		if err != nil {
			return nil, wrapReadErr(err, name)
		}
		return NewBool(name, b != 0), nil
	case TypeChar:
		b, err := r.ReadByte()
		if err != nil {
			return nil, wrapReadErr(err, name)
		}
		return NewChar(name, b), nil
	case TypeInt32:
		v, err := r.ReadUint32()
		if err != nil {
			return nil, wrapReadErr(err, name)
		}
		return NewInt32(name, int32(v)), nil
	case TypeInt64:
		v, err := r.ReadUint64()
		if err != nil {
			return nil, wrapReadErr(err, name)
		}
		return NewInt64(name, int64(v)), nil
	case TypeDouble:
		v, err := r.ReadFloat64()
		if err != nil {
			return nil, wrapReadErr(err, name)
		}
		return NewDouble(name, v), nil
	case TypeString:
		s, err := r.ReadCString()
		if err != nil {
			return nil, wrapReadErr(err, name)
		}
		return NewString(name, s), nil
	case TypeObject:
		child, err := decodeObject(r, st)
		if err != nil {
			return nil, err
		}
		return NewObjectItem(name, child), nil
	default:
		return nil, newDataError(CodeItemType, name, "unhandled atomic type %s", typ)
	}
}

func decodeArrayPayload(r *wire.Reader, st *decodeState, name string, typ Type, n uint32) (*Item, error) {
	switch typ {
	case TypeCharArray:
		buf, err := r.ReadFull(uint64(n))
		if err != nil {
			return nil, wrapReadErr(err, name)
		}
		// The original C implementation doesn't verify fread's return
		// value equals the requested length (spec §9 lists this as a
		// bug to fix, not reproduce): ReadFull above already returns
		// Confinement on a short read, so this can't happen silently.
		return NewCharArray(name, buf), nil
	case TypeInt32Array:
		nbytes, err := checkedArrayBytes(n, 4)
		if err != nil {
			return nil, newDataError(CodeArraySize, name, "%v", err)
		}
		buf, err := r.ReadFull(nbytes)
		if err != nil {
			return nil, wrapReadErr(err, name)
		}
		out := make([]int32, n)
		for i := range out {
			v, rest := wire.Get32(buf)
			out[i] = int32(v)
			buf = rest
		}
		return NewInt32Array(name, out), nil
	case TypeInt64Array:
		nbytes, err := checkedArrayBytes(n, 8)
		if err != nil {
			return nil, newDataError(CodeArraySize, name, "%v", err)
		}
		buf, err := r.ReadFull(nbytes)
		if err != nil {
			return nil, wrapReadErr(err, name)
		}
		out := make([]int64, n)
		for i := range out {
			v, rest := wire.Get64(buf)
			out[i] = int64(v)
			buf = rest
		}
		return NewInt64Array(name, out), nil
	case TypeDoubleArray:
		nbytes, err := checkedArrayBytes(n, 8)
		if err != nil {
			return nil, newDataError(CodeArraySize, name, "%v", err)
		}
		buf, err := r.ReadFull(nbytes)
		if err != nil {
			return nil, wrapReadErr(err, name)
		}
		out := make([]float64, n)
		for i := range out {
			v, rest := wire.Get64(buf)
			out[i] = wire.Float64frombits(v)
			buf = rest
		}
		return NewDoubleArray(name, out), nil
	case TypeStringArray:
		out := make([]string, n)
		for i := range out {
			s, err := r.ReadCString()
			if err != nil {
				return nil, wrapReadErr(err, name)
			}
			out[i] = s
		}
		return NewStringArray(name, out), nil
	case TypeObjectArray:
		out := make([]*Object, n)
		for i := range out {
			child, err := decodeObject(r, st)
			if err != nil {
				return nil, err
			}
			out[i] = child
		}
		return NewObjectArray(name, out), nil
	default:
		return nil, newDataError(CodeItemType, name, "unhandled array type %s", typ)
	}
}

// checkedArrayBytes computes n*itemSize with overflow checking, fixing
// the bug noted in spec §9 where the C implementation assumes
// 0xffffffff/itemsize >= nitems instead of checking.
func checkedArrayBytes(n uint32, itemSize uint64) (uint64, error) {
	hi, lo := bits.Mul64(uint64(n), itemSize)
	if hi != 0 {
		return 0, fmt.Errorf("array byte size overflows: %d elements of %d bytes", n, itemSize)
	}
	return lo, nil
}

func wrapReadErr(err error, path string) error {
	if err == wire.Confinement {
		return newDataError(CodeConfinement, path, "unexpected end of component")
	}
	if err == wire.LongString {
		return newDataError(CodeLongString, path, "string exceeds maximum length")
	}
	return &Error{Domain: DomainSystem, Message: err.Error(), Path: path}
}

// --- encoding ---

// EncodeObject renders obj to its exact on-wire byte representation,
// using each node's cached DataSize for length prefixes (no two-pass
// size computation is needed: the tree keeps it up to date).
func EncodeObject(obj *Object) ([]byte, error) {
	buf := make([]byte, obj.Size())
	if err := encodeObjectInto(obj, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func encodeObjectInto(obj *Object, buf []byte) error {
	if obj.dataSize < 0 || uint64(obj.dataSize) > 0xFFFFFFFF {
		return &Error{Domain: DomainData, Code: CodeObjectSize, Path: obj.Path(),
			Message: fmt.Sprintf("object payload size %d does not fit in a 32-bit length prefix", obj.dataSize)}
	}
	ptr := buf
	ptr = wire.PutCString(obj.name, ptr)
	ptr = wire.Put32(uint32(obj.dataSize), ptr)
	for _, it := range obj.items {
		n, err := encodeItemInto(it, ptr)
		if err != nil {
			return err
		}
		ptr = ptr[n:]
	}
	return nil
}

// encodeItemInto writes it to the front of buf and returns the number
// of bytes written.
func encodeItemInto(it *Item, buf []byte) (int, error) {
	start := len(buf)
	ptr := wire.PutCString(it.name, buf)
	ptr = wire.Put8(uint8(it.typ), ptr)
	if it.typ.IsArray() {
		ptr = wire.Put32(it.arrayLength, ptr)
	}
	var err error
	ptr, err = encodePayload(it, ptr)
	if err != nil {
		return 0, err
	}
	return start - len(ptr), nil
}

func encodePayload(it *Item, buf []byte) ([]byte, error) {
	switch it.typ {
	case TypeBool:
		v := uint8(0)
		if it.value.(bool) {
			v = 1
		}
		return wire.Put8(v, buf), nil
	case TypeChar:
		return wire.Put8(it.value.(byte), buf), nil
	case TypeInt32:
		return wire.Put32(uint32(it.value.(int32)), buf), nil
	case TypeInt64:
		return wire.Put64(uint64(it.value.(int64)), buf), nil
	case TypeDouble:
		return wire.Put64(wire.Float64bits(it.value.(float64)), buf), nil
	case TypeString:
		return wire.PutCString(it.value.(string), buf), nil
	case TypeObject:
		obj := it.value.(*Object)
		if err := encodeObjectInto(obj, buf[:obj.Size()]); err != nil {
			return nil, err
		}
		return buf[obj.Size():], nil
	case TypeCharArray:
		return wire.PutBytes(it.value.([]byte), buf), nil
	case TypeInt32Array:
		for _, v := range it.value.([]int32) {
			buf = wire.Put32(uint32(v), buf)
		}
		return buf, nil
	case TypeInt64Array:
		for _, v := range it.value.([]int64) {
			buf = wire.Put64(uint64(v), buf)
		}
		return buf, nil
	case TypeDoubleArray:
		for _, v := range it.value.([]float64) {
			buf = wire.Put64(wire.Float64bits(v), buf)
		}
		return buf, nil
	case TypeStringArray:
		for _, s := range it.value.([]string) {
			buf = wire.PutCString(s, buf)
		}
		return buf, nil
	case TypeObjectArray:
		for _, obj := range it.value.([]*Object) {
			if err := encodeObjectInto(obj, buf[:obj.Size()]); err != nil {
				return nil, err
			}
			buf = buf[obj.Size():]
		}
		return buf, nil
	default:
		return nil, fmt.Errorf("gwy: unhandled item type %s", it.typ)
	}
}
