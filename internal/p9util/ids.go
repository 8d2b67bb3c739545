package p9util

import (
	"log"
	"os/user"
)

// NodeUID and NodeGID are the owner reported for every file served by
// gwyfs: the whole tree is read-only, so there is no per-node owner to
// track, just the identity of the process serving it.
var (
	NodeUID string
	NodeGID string
)

func init() {
	u, err := user.Current()
	if err != nil {
		log.Fatalf("could not get current user: %v", err)
	}
	NodeUID = u.Username
	g, err := user.LookupGroupId(u.Gid)
	if err != nil {
		log.Fatalf("could not get group %v: %v", u.Gid, err)
	}
	NodeGID = g.Name
}
