package main

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gwyddion/gwyfile-go/gwy"
	"github.com/gwyddion/gwyfile-go/internal/p9util"
	"github.com/gwyddion/gwyfile-go/internal/wire"
	"github.com/lionkov/go9p/p"
)

// fsNode is a single entry in the static, read-only file tree gwyfs
// exposes: one per gwy.Object (a directory) and one per gwy.Item (a
// file, or a directory for object/object-array items).
type fsNode struct {
	dir      p.Dir
	isDir    bool
	data     []byte
	children []*fsNode
	dirb     p9util.DirBuffer
}

func (node *fsNode) prepareForReads() {
	node.dirb.Reset()
	for _, child := range node.children {
		node.dirb.Write(&child.dir)
	}
}

func (node *fsNode) child(name string) *fsNode {
	for _, c := range node.children {
		if c.dir.Name == name {
			return c
		}
	}
	return nil
}

// qidPath hands out a unique, stable path component for each node's
// Qid: gwyfs serves a single snapshot for the process lifetime, so a
// simple counter is as good as any content hash.
type qidPath struct{ next uint64 }

func (q *qidPath) take() uint64 {
	q.next++
	return q.next
}

func newDirNode(name string, q *qidPath) *fsNode {
	now := uint32(time.Now().Unix())
	return &fsNode{
		isDir: true,
		dir: p.Dir{
			Name:  name,
			Mode:  p.DMDIR | 0555,
			Uid:   p9util.NodeUID,
			Gid:   p9util.NodeGID,
			Atime: now,
			Mtime: now,
			Qid:   p.Qid{Type: p.QTDIR, Path: q.take()},
		},
	}
}

func newFileNode(name string, data []byte, q *qidPath) *fsNode {
	now := uint32(time.Now().Unix())
	return &fsNode{
		isDir: false,
		data:  data,
		dir: p.Dir{
			Name:   name,
			Mode:   0444,
			Uid:    p9util.NodeUID,
			Gid:    p9util.NodeGID,
			Atime:  now,
			Mtime:  now,
			Length: uint64(len(data)),
			Qid:    p.Qid{Path: q.take()},
		},
	}
}

// buildObjectNode renders obj as a directory node, one child per item,
// recursing into object and object-array items.
func buildObjectNode(obj *gwy.Object, name string, q *qidPath) *fsNode {
	dir := newDirNode(name, q)
	obj.Foreach(func(it *gwy.Item) {
		dir.children = append(dir.children, buildItemNode(it, q))
	})
	dir.prepareForReads()
	return dir
}

func buildItemNode(it *gwy.Item, q *qidPath) *fsNode {
	switch it.Type() {
	case gwy.TypeObject:
		return buildObjectNode(it.ObjectValue(), it.Name(), q)
	case gwy.TypeObjectArray:
		objs := it.ObjectArray()
		dir := newDirNode(it.Name(), q)
		for i, obj := range objs {
			dir.children = append(dir.children, buildObjectNode(obj, strconv.Itoa(i), q))
		}
		dir.prepareForReads()
		return dir
	default:
		return newFileNode(it.Name(), renderItem(it), q)
	}
}

// renderItem produces the bytes gwyfs serves for a leaf file: atomic
// scalars render as human-readable text, arrays render as their raw
// wire-layout bytes (little-endian), per gwyfs(4)'s read interface.
func renderItem(it *gwy.Item) []byte {
	switch it.Type() {
	case gwy.TypeBool:
		return []byte(strconv.FormatBool(it.Bool()) + "\n")
	case gwy.TypeChar:
		return []byte(fmt.Sprintf("%c\n", it.Char()))
	case gwy.TypeInt32:
		return []byte(strconv.FormatInt(int64(it.Int32()), 10) + "\n")
	case gwy.TypeInt64:
		return []byte(strconv.FormatInt(it.Int64(), 10) + "\n")
	case gwy.TypeDouble:
		return []byte(strconv.FormatFloat(it.Double(), 'g', -1, 64) + "\n")
	case gwy.TypeString:
		return []byte(it.Str() + "\n")
	case gwy.TypeCharArray:
		return it.CharArray()
	case gwy.TypeInt32Array:
		v := it.Int32Array()
		buf := make([]byte, len(v)*4)
		rest := buf
		for _, n := range v {
			rest = wire.Put32(uint32(n), rest)
		}
		return buf
	case gwy.TypeInt64Array:
		v := it.Int64Array()
		buf := make([]byte, len(v)*8)
		rest := buf
		for _, n := range v {
			rest = wire.Put64(uint64(n), rest)
		}
		return buf
	case gwy.TypeDoubleArray:
		v := it.DoubleArray()
		buf := make([]byte, len(v)*8)
		rest := buf
		for _, n := range v {
			rest = wire.Put64(math.Float64bits(n), rest)
		}
		return buf
	case gwy.TypeStringArray:
		strs := it.StringArray()
		size := 0
		for _, s := range strs {
			size += len(s) + 1
		}
		buf := make([]byte, size)
		rest := buf
		for _, s := range strs {
			rest = wire.PutCString(s, rest)
		}
		return buf
	default:
		return nil
	}
}
