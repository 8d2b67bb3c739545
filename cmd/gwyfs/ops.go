package main

import (
	"fmt"
	"log"
	"sync"
	"syscall"

	"github.com/lionkov/go9p/p"
	"github.com/lionkov/go9p/p/srv"
)

// ops serves a single, immutable gwy.Object tree over 9P. Every
// request only ever reads: Create, Write, Remove and Wstat, and Open
// with a write mode, fail with EACCES, since a decoded container has no
// notion of a writable filesystem underneath it.
type ops struct {
	mu   sync.Mutex
	root *fsNode
}

var (
	_ srv.ReqOps = (*ops)(nil)
	_ srv.FidOps = (*ops)(nil)
)

func logRespondError(r *srv.Req, err error) {
	log.Printf("Rerror: %v", err)
	r.RespondError(err)
}

func (o *ops) ReqProcess(r *srv.Req) { r.Process() }
func (o *ops) ReqRespond(r *srv.Req) { r.PostProcess() }

func (o *ops) Attach(r *srv.Req) {
	o.mu.Lock()
	defer o.mu.Unlock()
	r.Fid.Aux = o.root
	r.RespondRattach(&o.root.dir.Qid)
}

func (o *ops) Walk(r *srv.Req) {
	o.mu.Lock()
	defer o.mu.Unlock()
	node := r.Fid.Aux.(*fsNode)
	if len(r.Tc.Wname) == 0 {
		r.Newfid.Aux = node
		r.RespondRwalk(nil)
		return
	}
	var qids []p.Qid
	for _, name := range r.Tc.Wname {
		if !node.isDir {
			break
		}
		var next *fsNode
		if name == ".." {
			next = node
		} else {
			next = node.child(name)
		}
		if next == nil {
			break
		}
		node = next
		qids = append(qids, node.dir.Qid)
	}
	if len(qids) == 0 {
		logRespondError(r, syscall.ENOENT)
		return
	}
	if len(qids) == len(r.Tc.Wname) {
		r.Newfid.Aux = node
	}
	r.RespondRwalk(qids)
}

func (o *ops) Open(r *srv.Req) {
	o.mu.Lock()
	defer o.mu.Unlock()
	node := r.Fid.Aux.(*fsNode)
	if r.Tc.Mode&(p.OWRITE|p.ORDWR|p.OTRUNC) != 0 {
		logRespondError(r, syscall.EACCES)
		return
	}
	if node.isDir {
		node.prepareForReads()
	}
	r.RespondRopen(&node.dir.Qid, 0)
}

func (o *ops) Create(r *srv.Req) { logRespondError(r, syscall.EACCES) }
func (o *ops) Remove(r *srv.Req) { logRespondError(r, syscall.EACCES) }
func (o *ops) Wstat(r *srv.Req)  { logRespondError(r, syscall.EACCES) }

func (o *ops) Write(r *srv.Req) { logRespondError(r, syscall.EACCES) }

func (o *ops) Read(r *srv.Req) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := p.InitRread(r.Rc, r.Tc.Count); err != nil {
		logRespondError(r, err)
		return
	}
	node := r.Fid.Aux.(*fsNode)
	var count int
	var err error
	if node.isDir {
		count, err = node.dirb.Read(r.Rc.Data[:r.Tc.Count], int(r.Tc.Offset))
	} else {
		count, err = readAt(node.data, r.Rc.Data[:r.Tc.Count], int64(r.Tc.Offset))
	}
	if err != nil {
		logRespondError(r, err)
		return
	}
	p.SetRreadCount(r.Rc, uint32(count))
	r.Respond()
}

func readAt(data, buf []byte, offset int64) (int, error) {
	if offset < 0 {
		return 0, fmt.Errorf("negative offset: %w", syscall.EINVAL)
	}
	if offset >= int64(len(data)) {
		return 0, nil
	}
	return copy(buf, data[offset:]), nil
}

func (o *ops) Clunk(r *srv.Req) { r.RespondRclunk() }

func (o *ops) Stat(r *srv.Req) {
	o.mu.Lock()
	defer o.mu.Unlock()
	node := r.Fid.Aux.(*fsNode)
	r.RespondRstat(&node.dir)
}

func (o *ops) FidDestroy(*srv.Fid) {}
