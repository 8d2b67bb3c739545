package wire

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetRoundTrip(t *testing.T) {
	buf := make([]byte, 4+8+1)
	rest := Put32(0xFFFFFFFF, buf)
	rest = Put64(0x0102030405060708, rest)
	Put8(7, rest)

	u32, rest := Get32(buf)
	assert.Equal(t, uint32(0xFFFFFFFF), u32)
	u64, rest := Get64(rest)
	assert.Equal(t, uint64(0x0102030405060708), u64)
	u8, _ := Get8(rest)
	assert.Equal(t, uint8(7), u8)
}

func TestReaderConfinement(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2, 3}), 2)
	_, err := r.ReadFull(3)
	require.ErrorIs(t, err, Confinement)
}

func TestReaderSubConfinesChild(t *testing.T) {
	parent := NewReader(bytes.NewReader([]byte{1, 2, 3, 4}), 3)
	_, err := parent.Sub(4)
	require.ErrorIs(t, err, Confinement)

	child, err := parent.Sub(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), parent.Remaining())
	b, err := child.ReadFull(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)
}

func TestReadCString(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("hello\x00world")), 100)
	s, err := r.ReadCString()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

func TestReadCStringConfinementOnEOF(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("hello")), 100)
	_, err := r.ReadCString()
	require.ErrorIs(t, err, Confinement)
}

func TestReadCStringGrowsPastInitialCapacity(t *testing.T) {
	long := strings.Repeat("a", 17)
	r := NewReader(bytes.NewReader([]byte(long+"\x00")), uint64(len(long)+1))
	buf := make([]byte, 0, 1)
	_ = buf
	s, err := r.ReadCString()
	require.NoError(t, err)
	assert.Equal(t, long, s)
}

func TestIsFiniteBits(t *testing.T) {
	assert.True(t, IsFiniteBits(Float64bits(2.5)))
	assert.False(t, IsFiniteBits(0x7FF0000000000000))      // +Inf
	assert.False(t, IsFiniteBits(0x7FF8000000000001))      // NaN
}
