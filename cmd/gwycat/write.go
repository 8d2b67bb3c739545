package main

import (
	"github.com/gwyddion/gwyfile-go/gwy"
	log "github.com/sirupsen/logrus"
)

func runWrite(args []string) {
	fs := newFlagSet("write")
	name := fs.String("name", "GwyContainer", "`name` of the root object")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		exitUsage("write: expected exactly one output file argument")
	}
	setLevel()

	obj := demoObject(*name)
	if err := gwy.WriteFile(obj, fs.Arg(0)); err != nil {
		log.Fatalf("could not write %q: %v", fs.Arg(0), err)
	}
}

// demoObject builds a small object with string, int32, double,
// nested-object and double-array items, useful as a smoke-test fixture
// for the other subcommands.
func demoObject(name string) *gwy.Object {
	meta := gwy.NewObject("meta")
	meta.Add(gwy.NewString("software", "gwycat"))
	meta.Add(gwy.NewInt32("xres", 256))
	meta.Add(gwy.NewInt32("yres", 256))

	root := gwy.NewObject(name)
	root.Add(gwy.NewString("title", "demo"))
	root.Add(gwy.NewDouble("xreal", 1e-6))
	root.Add(gwy.NewDouble("yreal", 1e-6))
	root.Add(gwy.NewObjectItem("meta", meta))
	data := make([]float64, 16)
	for i := range data {
		data[i] = float64(i)
	}
	root.Add(gwy.NewDoubleArray("data", data))
	return root
}
