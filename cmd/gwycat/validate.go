package main

import (
	"fmt"
	"os"

	"github.com/gwyddion/gwyfile-go/gwy"
	"github.com/gwyddion/gwyfile-go/gwy/check"
	log "github.com/sirupsen/logrus"
)

func runValidate(args []string) {
	fs := newFlagSet("validate")
	validity := fs.Bool("validity", true, "check validity (GWYFILE_CHECK_FLAG_VALIDITY)")
	warning := fs.Bool("warning", false, "check for style warnings (GWYFILE_CHECK_FLAG_WARNING)")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		exitUsage("validate: expected exactly one file argument")
	}
	setLevel()

	obj, err := gwy.ReadFile(fs.Arg(0))
	if err != nil {
		log.Fatalf("could not read %q: %v", fs.Arg(0), err)
	}

	violations, ok := checkObject(obj, *validity, *warning)
	for _, v := range violations {
		fmt.Fprintln(os.Stderr, v.Error())
	}
	if !ok {
		os.Exit(1)
	}
}

func checkObject(obj *gwy.Object, validity, warning bool) ([]*check.Violation, bool) {
	var flags check.Flags
	if validity {
		flags |= check.FlagValidity
	}
	if warning {
		flags |= check.FlagWarning
	}
	var violations []*check.Violation
	ok := check.Check(obj, flags, &violations)
	return violations, ok
}
