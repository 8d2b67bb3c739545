package main

import (
	"fmt"

	"github.com/gwyddion/gwyfile-go/gwy"
	"github.com/gwyddion/gwyfile-go/internal/query"
	log "github.com/sirupsen/logrus"
)

func runQuery(args []string) {
	fs := newFlagSet("query")
	_ = fs.Parse(args)
	if fs.NArg() != 2 {
		exitUsage("query: expected FILE and EXPR arguments")
	}
	setLevel()

	obj, err := gwy.ReadFile(fs.Arg(0))
	if err != nil {
		log.Fatalf("could not read %q: %v", fs.Arg(0), err)
	}

	result, err := query.Eval(obj, fs.Arg(1))
	if err != nil {
		log.Fatalf("query failed: %v", err)
	}
	fmt.Println(result)
}
