// Command gwycat is a small Swiss-army knife for GWY container files:
// read/write a demo object, conformance-check, diff, query and archive
// them, mirroring the subcommand style of the muscle CLI this repo is
// grounded on.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gwyddion/gwyfile-go/internal/config"
	log "github.com/sirupsen/logrus"
)

var globalContext struct {
	logLevel string
	base     string
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var levels []string
	for _, l := range log.AllLevels {
		levels = append(levels, l.String())
	}
	fs.StringVar(&globalContext.logLevel, "verbosity", "warning", "sets the log `level`, among "+strings.Join(levels, ", "))
	fs.StringVar(&globalContext.base, "base", config.DefaultBaseDirectoryPath, "`directory` holding the archive configuration")
	return fs
}

func exitUsage(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	_, _ = fmt.Fprintf(os.Stderr, `Usage: %s COMMAND [ARGS]

Commands:

	read FILE: decode FILE and print its item tree
	write FILE: build a small demo object and encode it to FILE
	validate FILE: run the conformance checker over FILE
	diff FILE1 FILE2: unified diff of two trees
	query FILE EXPR: evaluate a JMESPath expression against FILE
	batch-validate FILE...: conformance-check many files concurrently
	archive init: write a default archive configuration under -base
	archive push NAME FILE: store FILE's bytes under NAME
	archive pull NAME FILE: write the bytes stored under NAME to FILE
`, os.Args[0])
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		exitUsage("command name required")
	}

	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.JSONFormatter{})

	switch cmd := os.Args[1]; cmd {
	case "read":
		runRead(os.Args[2:])
	case "write":
		runWrite(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	case "diff":
		runDiff(os.Args[2:])
	case "query":
		runQuery(os.Args[2:])
	case "batch-validate":
		runBatchValidate(os.Args[2:])
	case "archive":
		runArchive(os.Args[2:])
	default:
		exitUsage(fmt.Sprintf("%q: command not recognized", cmd))
	}
}

func setLevel() {
	ll, err := log.ParseLevel(globalContext.logLevel)
	if err != nil {
		log.Fatalf("could not parse log level %q: %v", globalContext.logLevel, err)
	}
	log.SetLevel(ll)
}
