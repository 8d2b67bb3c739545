package main

import (
	"os"

	"github.com/gwyddion/gwyfile-go/internal/archive"
	"github.com/gwyddion/gwyfile-go/internal/config"
	log "github.com/sirupsen/logrus"
)

func runArchive(args []string) {
	if len(args) < 1 {
		exitUsage("archive: expected an init, push or pull subcommand")
	}
	switch args[0] {
	case "push":
		runArchivePush(args[1:])
	case "pull":
		runArchivePull(args[1:])
	case "init":
		runArchiveInit(args[1:])
	default:
		exitUsage("archive: unknown subcommand " + args[0])
	}
}

func openArchiveStore(base string) archive.Store {
	cfg, err := config.Load(base)
	if err != nil {
		log.Fatalf("could not load archive config from %q: %v", base, err)
	}
	switch cfg.Storage {
	case "s3":
		store, err := archive.NewS3Store(archive.S3Config{
			Region:  cfg.S3Region,
			Bucket:  cfg.S3Bucket,
			Profile: cfg.S3Profile,
		})
		if err != nil {
			log.Fatalf("could not build s3 archive store: %v", err)
		}
		return store
	default:
		return archive.NewDiskStore(cfg.DiskStoreDir)
	}
}

func runArchiveInit(args []string) {
	fs := newFlagSet("archive init")
	_ = fs.Parse(args)
	if fs.NArg() != 0 {
		exitUsage("archive init: no args expected")
	}
	setLevel()
	if err := config.Initialize(globalContext.base); err != nil {
		log.Fatalf("could not initialize config in %q: %v", globalContext.base, err)
	}
}

func runArchivePush(args []string) {
	fs := newFlagSet("archive push")
	_ = fs.Parse(args)
	if fs.NArg() != 2 {
		exitUsage("archive push: expected NAME and FILE arguments")
	}
	setLevel()

	data, err := os.ReadFile(fs.Arg(1))
	if err != nil {
		log.Fatalf("could not read %q: %v", fs.Arg(1), err)
	}
	store := openArchiveStore(globalContext.base)
	if err := store.Put(archive.Key(fs.Arg(0)), archive.Value(data)); err != nil {
		log.Fatalf("could not push %q: %v", fs.Arg(0), err)
	}
}

func runArchivePull(args []string) {
	fs := newFlagSet("archive pull")
	_ = fs.Parse(args)
	if fs.NArg() != 2 {
		exitUsage("archive pull: expected NAME and FILE arguments")
	}
	setLevel()

	store := openArchiveStore(globalContext.base)
	data, err := store.Get(archive.Key(fs.Arg(0)))
	if err != nil {
		log.Fatalf("could not pull %q: %v", fs.Arg(0), err)
	}
	if err := os.WriteFile(fs.Arg(1), data, 0644); err != nil {
		log.Fatalf("could not write %q: %v", fs.Arg(1), err)
	}
}
