package diff

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andreyvit/diff"
)

const bytesForBinaryCheck = 1 << 16

// Unified is UnifiedTo, returning the rendered diff as a string instead
// of writing it to a writer.
func Unified(a, b Node, contextLines int) (string, error) {
	var buf bytes.Buffer
	if err := UnifiedTo(&buf, a, b, contextLines); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// UnifiedTo writes a unified diff of a and b to w. Its output is the
// same format as the system "diff -u".
func UnifiedTo(w io.Writer, a, b Node, contextLines int) error {
	same, err := a.SameAs(b)
	if err != nil {
		return err
	}
	if same {
		return nil
	}
	aContent, err := a.Content()
	if err != nil {
		return err
	}
	bContent, err := b.Content()
	if err != nil {
		return err
	}
	lines := diff.LineDiffAsLines(aContent, bContent)
	if len(lines) == 0 {
		return nil
	}
	return unified(w, lines, contextLines)
}

func unified(w io.Writer, lines []string, contextLines int) error {
	if isLikelyBinary(lines) {
		_, err := fmt.Fprintln(w, "Binary content differs")
		return err
	}

	// While walking lines we're either inside a hunk or in a common
	// segment (hunk == nil). Common lines seen outside a hunk are kept
	// in a ring buffer so a hunk that starts later can backfill its
	// leading context from them.
	var h *hunk
	common := newRingBuffer(contextLines)

	var leftOffset, rightOffset int
	for _, line := range lines {
		switch line[0] {
		case ' ':
			if h != nil {
				h.appendCommon(line)
				if h.isComplete() {
					for _, l := range h.trim() {
						common.enqueue(l)
					}
					if err := h.printTo(w); err != nil {
						return err
					}
					h = nil
				}
			} else {
				common.enqueue(line)
			}
		default:
			if h == nil {
				h = newHunk(leftOffset, rightOffset, common.dequeueAll(), contextLines)
			}
			if line[0] == '-' {
				h.appendLeft(line)
			} else {
				h.appendRight(line)
			}
		}
		switch line[0] {
		case '-':
			leftOffset++
		case ' ':
			leftOffset++
			rightOffset++
		case '+':
			rightOffset++
		}
	}
	if h != nil {
		h.trim()
		return h.printTo(w)
	}
	return nil
}

func isLikelyBinary(lines []string) bool {
	var count int
	for _, line := range lines {
		if strings.Contains(line, "\x00") {
			return true
		}
		count += len(line)
		if count >= bytesForBinaryCheck {
			break
		}
	}
	return false
}
