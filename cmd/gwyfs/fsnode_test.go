package main

import (
	"testing"

	"github.com/gwyddion/gwyfile-go/gwy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildObjectNodeLayout(t *testing.T) {
	inner := gwy.NewObject("meta")
	inner.Add(gwy.NewInt32("width", 512))

	root := gwy.NewObject("root")
	root.Add(gwy.NewString("title", "sample"))
	root.Add(gwy.NewObjectItem("meta", inner))
	root.Add(gwy.NewDoubleArray("data", []float64{1, 2, 3}))

	q := &qidPath{}
	node := buildObjectNode(root, root.Name(), q)

	require.True(t, node.isDir)
	assert.NotNil(t, node.child("title"))
	assert.False(t, node.child("title").isDir)
	assert.Equal(t, "sample\n", string(node.child("title").data))

	metaNode := node.child("meta")
	require.NotNil(t, metaNode)
	assert.True(t, metaNode.isDir)
	widthNode := metaNode.child("width")
	require.NotNil(t, widthNode)
	assert.Equal(t, "512\n", string(widthNode.data))

	dataNode := node.child("data")
	require.NotNil(t, dataNode)
	assert.Len(t, dataNode.data, 3*8)
}

func TestBuildObjectNodeObjectArray(t *testing.T) {
	root := gwy.NewObject("root")
	root.Add(gwy.NewObjectArray("curves", []*gwy.Object{
		gwy.NewObject("a"),
		gwy.NewObject("b"),
	}))

	q := &qidPath{}
	node := buildObjectNode(root, root.Name(), q)

	curves := node.child("curves")
	require.NotNil(t, curves)
	require.True(t, curves.isDir)
	assert.NotNil(t, curves.child("0"))
	assert.NotNil(t, curves.child("1"))
}

func TestQIDPathIsUnique(t *testing.T) {
	q := &qidPath{}
	seen := make(map[uint64]bool)
	for i := 0; i < 100; i++ {
		p := q.take()
		assert.False(t, seen[p])
		seen[p] = true
	}
}
