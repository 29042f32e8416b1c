package histbuf

import "github.com/kovidgoyal/kittycore/internal/termlog"

// Cache is the interface an optional disk-backed scrollback store
// implements. It is a content-addressed store keyed by a line
// fingerprint, with at-most-one outstanding write per key (spec §9);
// HistoryBuf never blocks on it — Put is fire-and-forget from the
// core's point of view, and Get is consulted only by a presenter that
// wants to page in evicted lines, never by the hot ingest path.
type Cache interface {
	Put(key uint64, line []byte)
	Get(key uint64) ([]byte, bool)
}

// NopCache discards everything and never has a hit. It is the default
// when a HistoryBuf is built without a disk-backed cache.
type NopCache struct{}

func (NopCache) Put(uint64, []byte)        {}
func (NopCache) Get(uint64) ([]byte, bool) { return nil, false }

// AttachCache wires a Cache and logger into a HistoryBuf for lines
// evicted past maxsz. Eviction happens inside AddLine, so once the
// history is full each scrolled-out line puts one entry in the cache and
// logs one debug line.
func (h *HistoryBuf) AttachCache(c Cache, log termlog.Logger) {
	if c == nil {
		c = NopCache{}
	}
	h.cache = c
	h.log = log
}
