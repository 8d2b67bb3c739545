package diff

import (
	"github.com/cespare/xxhash/v2"
)

// Node is anything that can be rendered as text and diffed against
// another Node of the same concrete type. SameAs is a shortcut: when it
// reports true, UnifiedTo skips content retrieval and the LCS pass
// entirely, which matters when Content is expensive (e.g., re-encoding
// a subtree just to discover it didn't change). If no shortcut is
// possible, implementations should return false.
type Node interface {
	SameAs(Node) (bool, error)
	Content() (string, error)
}

// HashedNode is a Node whose SameAs shortcut is a 64-bit content hash
// comparison rather than a byte-for-byte comparison: cheap enough to
// always compute ahead of time. A hash collision makes two different
// contents compare as the same, so their diff is skipped.
type HashedNode struct {
	hash    uint64
	content string
}

// NewHashedNode builds a HashedNode whose identity is the xxhash of raw
// (typically the canonical encoding of whatever content represents) and
// whose diffable text is content.
func NewHashedNode(raw []byte, content string) HashedNode {
	return HashedNode{hash: xxhash.Sum64(raw), content: content}
}

func (n HashedNode) SameAs(other Node) (bool, error) {
	o, ok := other.(HashedNode)
	if !ok {
		return false, nil
	}
	return n.hash == o.hash, nil
}

func (n HashedNode) Content() (string, error) {
	return n.content, nil
}

// StringNode is a Node for plain text with no cheaper SameAs shortcut
// than a direct comparison.
type StringNode string

func (s StringNode) SameAs(node Node) (bool, error) {
	other, ok := node.(StringNode)
	if !ok {
		return false, nil
	}
	return string(s) == string(other), nil
}

func (s StringNode) Content() (string, error) {
	return string(s), nil
}
