package document

import (
	"sync/atomic"

	"github.com/kk-code-lab/mdlens/internal/markup"
)

// Holder owns the current snapshot of one document. Publish swaps in a new
// snapshot; readers that already hold the old one keep using it.
type Holder struct {
	parser  *markup.Parser
	current atomic.Pointer[Snapshot]
	version atomic.Uint64
}

// NewHolder returns a holder whose current snapshot is the empty document.
func NewHolder(parser *markup.Parser) *Holder {
	h := &Holder{parser: parser}
	h.current.Store(Build(parser, "", 0))
	return h
}

// Current returns the latest published snapshot.
func (h *Holder) Current() *Snapshot {
	return h.current.Load()
}

// Publish parses source into a new snapshot with the next version and makes
// it current unless a newer version was published concurrently.
func (h *Holder) Publish(source string) *Snapshot {
	snap := Build(h.parser, source, h.version.Add(1))
	for {
		old := h.current.Load()
		if old.Version > snap.Version {
			return snap
		}
		if h.current.CompareAndSwap(old, snap) {
			return snap
		}
	}
}
