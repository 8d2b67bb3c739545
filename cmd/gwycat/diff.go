package main

import (
	"os"

	"github.com/gwyddion/gwyfile-go/gwy"
	"github.com/gwyddion/gwyfile-go/internal/diff"
	log "github.com/sirupsen/logrus"
)

func runDiff(args []string) {
	fs := newFlagSet("diff")
	context := fs.Int("U", 3, "number of unified context `lines`")
	namesOnly := fs.Bool("N", false, "omit context diffs; together with -v, output only the paths that changed")
	verbose := fs.Bool("v", false, "print a header line naming each changed path")
	_ = fs.Parse(args)
	if fs.NArg() != 2 {
		exitUsage("diff: expected exactly two file arguments")
	}
	setLevel()

	a, err := gwy.ReadFile(fs.Arg(0))
	if err != nil {
		log.Fatalf("could not read %q: %v", fs.Arg(0), err)
	}
	b, err := gwy.ReadFile(fs.Arg(1))
	if err != nil {
		log.Fatalf("could not read %q: %v", fs.Arg(1), err)
	}

	err = diff.Trees(a, b,
		diff.TreesOutput(os.Stdout),
		diff.TreesContext(*context),
		diff.TreesNamesOnly(*namesOnly),
		diff.TreesVerbose(*verbose),
	)
	if err != nil {
		log.Fatalf("could not diff %q and %q: %v", fs.Arg(0), fs.Arg(1), err)
	}
}
