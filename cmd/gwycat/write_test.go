package main

import (
	"bytes"
	"testing"

	"github.com/gwyddion/gwyfile-go/gwy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoObjectEncodesAndDecodes(t *testing.T) {
	obj := demoObject("Sample")
	buf, err := gwy.EncodeObject(obj)
	require.NoError(t, err)

	decoded, err := gwy.DecodeObject(bytes.NewReader(buf), uint64(len(buf)))
	require.NoError(t, err)
	assert.Equal(t, "Sample", decoded.Name())
	assert.Equal(t, "demo", decoded.Get("title").Str())
	assert.Equal(t, 16, len(decoded.Get("data").DoubleArray()))
}

func TestItemTextFormatsEveryAtomicType(t *testing.T) {
	assert.Equal(t, "true", itemText(gwy.NewBool("b", true)))
	assert.Equal(t, "'x'", itemText(gwy.NewChar("c", 'x')))
	assert.Equal(t, "5", itemText(gwy.NewInt32("i", 5)))
	assert.Equal(t, "-9", itemText(gwy.NewInt64("q", -9)))
	assert.Equal(t, "2.5", itemText(gwy.NewDouble("d", 2.5)))
	assert.Equal(t, `"hi"`, itemText(gwy.NewString("s", "hi")))
}
