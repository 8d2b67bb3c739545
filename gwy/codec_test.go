package gwy

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreadMinimalEmptyObject(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(Magic[:])
	buf.WriteString("GwyEmpty")
	buf.WriteByte(0)
	buf.Write([]byte{0, 0, 0, 0})

	obj, err := Fread(&buf, uint64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, "GwyEmpty", obj.Name())
	assert.Equal(t, 0, obj.NItems())
	assert.Equal(t, int64(0), obj.DataSize())
}

func TestFreadRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBufferString("XXXX")
	_, err := Fread(buf, 4)
	require.Error(t, err)
	gerr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, CodeMagic, gerr.Code)
}

func TestAtomicRoundTrip(t *testing.T) {
	obj := NewObject("root")
	obj.Add(NewBool("flag", true))
	obj.Add(NewInt32("count", -7))
	obj.Add(NewDouble("ratio", 2.5))

	buf, err := EncodeObject(obj)
	require.NoError(t, err)

	decoded, err := DecodeObject(bytes.NewReader(buf), uint64(len(buf)))
	require.NoError(t, err)
	assert.Equal(t, true, decoded.Get("flag").Bool())
	assert.Equal(t, int32(-7), decoded.Get("count").Int32())
	assert.Equal(t, 2.5, decoded.Get("ratio").Double())
}

func TestAtomicWireLayout(t *testing.T) {
	obj := NewObject("r")
	obj.Add(NewBool("b", true))

	buf, err := EncodeObject(obj)
	require.NoError(t, err)

	// name "r" + nul, 4-byte payload length, then one item: name "b" + nul,
	// type tag 'b', value byte 1.
	itemBytes := []byte{'b', 0, 'b', 1}
	var want []byte
	want = append(want, 'r', 0)
	want = append(want, put32le(uint32(len(itemBytes)))...)
	want = append(want, itemBytes...)
	assert.Equal(t, want, buf)
}

func put32le(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func TestDecodeDetectsDuplicateName(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("root")
	buf.WriteByte(0)
	var payload bytes.Buffer
	for i := 0; i < 2; i++ {
		payload.WriteString("dup")
		payload.WriteByte(0)
		payload.WriteByte('b')
		payload.WriteByte(1)
	}
	buf.Write(put32le(uint32(payload.Len())))
	buf.Write(payload.Bytes())

	_, err := DecodeObject(&buf, uint64(buf.Len()))
	require.Error(t, err)
	gerr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, CodeDuplicateName, gerr.Code)
}

func TestDecodeConfinementOnTruncation(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("root")
	buf.WriteByte(0)
	buf.Write(put32le(100)) // declares 100 bytes of payload that never arrive

	_, err := DecodeObject(&buf, uint64(buf.Len()))
	require.Error(t, err)
	gerr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, CodeConfinement, gerr.Code)
}

func TestDecodeRejectsExcessiveNesting(t *testing.T) {
	// Build a chain of 201 wrapper objects "n", each holding one object
	// item "child" that wraps the next, around an innermost empty object
	// "leaf". With the default depth cap of 200, decoding must fail with
	// TooDeepNesting.
	const depth = 201
	inner := NewObject("leaf")
	for i := depth - 1; i >= 0; i-- {
		wrapper := NewObject("n")
		wrapper.Add(NewObjectItem("child", inner))
		inner = wrapper
	}

	buf, err := EncodeObject(inner)
	require.NoError(t, err)

	_, err = DecodeObject(bytes.NewReader(buf), uint64(len(buf)))
	require.Error(t, err)
	gerr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, CodeTooDeepNesting, gerr.Code)
}

func TestSizePropagationOnStringGrowth(t *testing.T) {
	inner := NewObject("inner")
	item := NewString("greeting", "hi")
	inner.Add(item)

	outer := NewObject("outer")
	outer.Add(NewObjectItem("child", inner))

	before := outer.DataSize()
	item.SetStr("longer")
	after := outer.DataSize()

	assert.Equal(t, int64(4), after-before)
	assert.Equal(t, inner.DataSize(), int64(len(item.Name())+1+1+len("longer")+1))
}

func TestArrayRejectsZeroLength(t *testing.T) {
	assert.Panics(t, func() {
		NewInt32Array("a", nil)
	})
}

func TestReleaseObjectDetachesFromParent(t *testing.T) {
	parent := NewObject("parent")
	child := NewObject("child")
	it := NewObjectItem("child", child)
	parent.Add(it)

	sizeBefore := parent.DataSize()
	released, err := it.ReleaseObject()
	require.NoError(t, err)
	assert.Same(t, child, released)
	assert.Equal(t, 0, parent.NItems())
	assert.Less(t, parent.DataSize(), sizeBefore)
}

func TestPathEscaping(t *testing.T) {
	obj := NewObject("root")
	it := NewString("weird/name with space", "x")
	obj.Add(it)
	assert.Equal(t, "/root/weird\\/name\\ with\\ space", it.Path())
}

func TestDecodeFailsOnTruncatedObjectHeader(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(strings.Repeat("a", 40))
	buf.WriteByte(0)
	// The name consumes the entire declared budget, leaving nothing for
	// the mandatory 4-byte payload-length field.
	_, err := DecodeObject(&buf, uint64(buf.Len()))
	require.Error(t, err)
	gerr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, CodeConfinement, gerr.Code)
}
