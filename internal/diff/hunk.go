package diff

import (
	"fmt"
	"io"
)

// hunk accumulates one contiguous block of changed (and a little
// surrounding context of unchanged) lines, in the format described at
// https://www.gnu.org/software/diffutils/manual/html_node/Hunks.html,
// e.g. rendered as "@@ -15,3 +17,5 @@".
type hunk struct {
	lo, lc int
	ro, rc int

	lines []string

	// sinceLastDiff counts common lines seen since the last actual
	// change; once it reaches 2*contextLines+1 the hunk is definitely
	// done and can be flushed.
	sinceLastDiff int
	contextLines  int

	printErr error
}

func newHunk(lo, ro int, backfill []string, contextLines int) *hunk {
	l := len(backfill)
	return &hunk{
		lo: lo - l, ro: ro - l,
		lc: l, rc: l,
		lines:        backfill,
		contextLines: contextLines,
	}
}

func (h *hunk) appendLeft(line string) {
	h.lines = append(h.lines, line)
	h.sinceLastDiff = 0
	h.lc++
}

func (h *hunk) appendRight(line string) {
	h.lines = append(h.lines, line)
	h.sinceLastDiff = 0
	h.rc++
}

func (h *hunk) appendCommon(line string) {
	h.lines = append(h.lines, line)
	h.sinceLastDiff++
	h.lc++
	h.rc++
}

func (h *hunk) isComplete() bool {
	return h.sinceLastDiff >= 2*h.contextLines+1
}

// trim drops trailing common lines beyond the context budget, returning
// them so the caller can feed them into the ring buffer of upcoming
// context instead of discarding them.
func (h *hunk) trim() []string {
	if h.sinceLastDiff <= h.contextLines {
		return nil
	}
	excess := h.sinceLastDiff - h.contextLines
	dropped := h.lines[len(h.lines)-excess:]
	h.lines = h.lines[:len(h.lines)-excess]
	h.lc -= excess
	h.rc -= excess
	return dropped
}

func (h *hunk) printLocationTo(w io.Writer) {
	// A side with no lines is printed as "start,0", start being the
	// line before the hunk, as diff -u does.
	lstart, rstart := h.lo+1, h.ro+1
	if h.lc == 0 {
		lstart = h.lo
	}
	if h.rc == 0 {
		rstart = h.ro
	}
	h.printf(w, "@@ -%d", lstart)
	if h.lc != 1 {
		h.printf(w, ",%d +%d", h.lc, rstart)
	} else {
		h.printf(w, " +%d", rstart)
	}
	if h.rc != 1 {
		h.printf(w, ",%d @@\n", h.rc)
	} else {
		h.printf(w, " @@\n")
	}
}

func (h *hunk) printTo(w io.Writer) error {
	h.printLocationTo(w)
	for _, line := range h.lines {
		h.printf(w, "%s\n", line)
	}
	return h.printErr
}

func (h *hunk) printf(w io.Writer, format string, args ...interface{}) {
	if h.printErr != nil {
		return
	}
	_, h.printErr = fmt.Fprintf(w, format, args...)
}
