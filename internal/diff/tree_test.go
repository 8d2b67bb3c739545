package diff_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gwyddion/gwyfile-go/gwy"
	"github.com/gwyddion/gwyfile-go/internal/diff"
)

func TestTreesIdenticalProducesNoOutput(t *testing.T) {
	a := gwy.NewObject("root")
	a.Add(gwy.NewInt32("count", 3))
	b := gwy.NewObject("root")
	b.Add(gwy.NewInt32("count", 3))

	var buf bytes.Buffer
	if err := diff.Trees(a, b, diff.TreesOutput(&buf), diff.TreesVerbose(true)); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestTreesReportsChangedScalar(t *testing.T) {
	a := gwy.NewObject("root")
	a.Add(gwy.NewInt32("count", 3))
	b := gwy.NewObject("root")
	b.Add(gwy.NewInt32("count", 4))

	var buf bytes.Buffer
	if err := diff.Trees(a, b, diff.TreesOutput(&buf), diff.TreesVerbose(true)); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.Contains(got, "-3") || !strings.Contains(got, "+4") {
		t.Errorf("diff output missing expected lines: %q", got)
	}
}

func TestTreesReportsAddedItem(t *testing.T) {
	a := gwy.NewObject("root")
	b := gwy.NewObject("root")
	b.Add(gwy.NewString("label", "x"))

	var buf bytes.Buffer
	if err := diff.Trees(a, b, diff.TreesOutput(&buf), diff.TreesVerbose(true), diff.TreesNamesOnly(true)); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); !strings.Contains(got, "+meta") {
		t.Errorf("expected a meta diff header, got %q", got)
	}
}

func TestTreesRecursesIntoNestedObjects(t *testing.T) {
	innerA := gwy.NewObject("inner")
	innerA.Add(gwy.NewDouble("x", 1))
	a := gwy.NewObject("root")
	a.Add(gwy.NewObjectItem("child", innerA))

	innerB := gwy.NewObject("inner")
	innerB.Add(gwy.NewDouble("x", 2))
	b := gwy.NewObject("root")
	b.Add(gwy.NewObjectItem("child", innerB))

	var buf bytes.Buffer
	if err := diff.Trees(a, b, diff.TreesOutput(&buf), diff.TreesVerbose(true)); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.Contains(got, "-1") || !strings.Contains(got, "+2") {
		t.Errorf("expected nested scalar diff, got %q", got)
	}
}
