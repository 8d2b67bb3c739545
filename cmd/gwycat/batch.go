package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gwyddion/gwyfile-go/gwy"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// errSomeInvalid is returned by a worker goroutine to signal that the
// batch as a whole should exit non-zero, without treating the
// condition as a fatal error worth aborting the other goroutines for.
var errSomeInvalid = errors.New("batch-validate: at least one file failed validation")

func runBatchValidate(args []string) {
	fs := newFlagSet("batch-validate")
	validity := fs.Bool("validity", true, "check validity (GWYFILE_CHECK_FLAG_VALIDITY)")
	warning := fs.Bool("warning", false, "check for style warnings (GWYFILE_CHECK_FLAG_WARNING)")
	concurrency := fs.Int("j", 8, "max `number` of files to validate concurrently")
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		exitUsage("batch-validate: expected one or more file arguments")
	}
	setLevel()

	files := fs.Args()
	semc := make(chan struct{}, *concurrency)
	g, _ := errgroup.WithContext(context.Background())
	for _, path := range files {
		path := path
		g.Go(func() error {
			semc <- struct{}{}
			defer func() { <-semc }()

			obj, err := gwy.ReadFile(path)
			if err != nil {
				log.WithField("file", path).WithError(err).Error("could not read")
				return errSomeInvalid
			}
			violations, ok := checkObject(obj, *validity, *warning)
			if ok {
				fmt.Printf("%s: OK\n", path)
				return nil
			}
			fmt.Printf("%s: %d violation(s)\n", path, len(violations))
			for _, v := range violations {
				fmt.Printf("  %s\n", v.Error())
			}
			return errSomeInvalid
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, errSomeInvalid) {
			os.Exit(1)
		}
		log.Fatalf("batch-validate: %v", err)
	}
}
