package archive

import (
	"testing"

	"github.com/gwyddion/gwyfile-go/gwy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetObjectRoundTrip(t *testing.T) {
	obj := gwy.NewObject("root")
	obj.Add(gwy.NewString("label", "hello"))

	store := &InMemory{}
	require.NoError(t, PutObject(store, "k1", obj))

	got, err := GetObject(store, "k1", 1<<20)
	require.NoError(t, err)
	assert.Equal(t, "root", got.Name())
	assert.Equal(t, "hello", got.Get("label").Str())
}

func TestGetObjectMissingKey(t *testing.T) {
	store := &InMemory{}
	_, err := GetObject(store, "missing", 1<<20)
	assert.ErrorIs(t, err, ErrNotFound)
}
