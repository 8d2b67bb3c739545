// Command gwyfs serves a decoded GWY container as a read-only 9P file
// tree: every object becomes a directory, every atomic or array item a
// file, every object and object-array item a subdirectory.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/google/gops/agent"
	"github.com/gwyddion/gwyfile-go/gwy"
	"github.com/gwyddion/gwyfile-go/internal/netutil"
	"github.com/lionkov/go9p/p/srv"
)

func main() {
	if err := agent.Listen(agent.Options{}); err != nil {
		log.Printf("could not start gops agent: %v", err)
	}

	net := flag.String("net", "tcp", "listen `network`, tcp or unix")
	addr := flag.String("addr", "127.0.0.1:5640", "listen `address` for the 9P server")
	debug := flag.Bool("D", false, "print 9P dialogs")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: %s [flags] file.gwy", os.Args[0])
	}

	obj, err := gwy.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("could not read %q: %v", flag.Arg(0), err)
	}

	q := &qidPath{}
	root := buildObjectNode(obj, obj.Name(), q)

	o := &ops{root: root}
	fs := &srv.Srv{}
	fs.Dotu = false
	fs.Id = "gwyfs"
	if *debug {
		fs.Debuglevel = srv.DbgPrintFcalls
	}
	if !fs.Start(o) {
		log.Fatal("go9p/p/srv.Srv.Start returned false")
	}

	listener, err := netutil.Listen(*net, *addr)
	if err != nil {
		log.Fatalf("could not listen on %s!%s: %v", *net, *addr, err)
	}
	log.Printf("serving %q on %s!%s", flag.Arg(0), *net, *addr)
	if err := fs.StartListener(listener); err != nil {
		log.Fatalf("could not start 9P listener: %v", err)
	}
}
