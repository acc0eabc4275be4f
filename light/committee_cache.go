package light

import "sync"

// CommitteeCache stores sync committees indexed by their period, letting a
// verifier avoid re-deriving or re-fetching a committee it has already
// authenticated. It caches VerifierSyncCommittee, the type AuthenticateHeader
// consumes, since that is the canonical domain-separated signature path the
// request dispatcher authenticates headers through. Implementations must be
// safe for concurrent use.
type CommitteeCache interface {
	Get(period uint64) (*VerifierSyncCommittee, bool)
	Put(period uint64, committee *VerifierSyncCommittee)
}

// memoryCommitteeCache is the default CommitteeCache: an in-memory map
// guarded by a single RWMutex, following the same single-writer/many-reader
// shape as ProofVerifier's result cache.
type memoryCommitteeCache struct {
	mu         sync.RWMutex
	committees map[uint64]*VerifierSyncCommittee
}

// NewMemoryCommitteeCache creates an empty in-memory CommitteeCache.
func NewMemoryCommitteeCache() CommitteeCache {
	return &memoryCommitteeCache{
		committees: make(map[uint64]*VerifierSyncCommittee),
	}
}

func (c *memoryCommitteeCache) Get(period uint64) (*VerifierSyncCommittee, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sc, ok := c.committees[period]
	return sc, ok
}

func (c *memoryCommitteeCache) Put(period uint64, committee *VerifierSyncCommittee) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.committees[period] = committee
}
