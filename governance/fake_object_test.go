package governance

import "github.com/btcsuite/btcd/chaincfg/chainhash"

type fakeObject struct {
	isTrigger    bool
	payload      []byte
	fundingCache bool
	yesCount     int64
	deletedAt    int64
}

func (o *fakeObject) IsTriggerType() bool    { return o.isTrigger }
func (o *fakeObject) TriggerPayload() []byte { return o.payload }
func (o *fakeObject) IsFundingCached() bool  { return o.fundingCache }
func (o *fakeObject) AbsoluteYesCount() int64 { return o.yesCount }
func (o *fakeObject) MarkForDeletion(deletionTime int64) { o.deletedAt = deletionTime }

type fakeObjectStore struct {
	objects map[chainhash.Hash]*fakeObject
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[chainhash.Hash]*fakeObject)}
}

func (s *fakeObjectStore) add(hash chainhash.Hash, obj *fakeObject) {
	s.objects[hash] = obj
}

func (s *fakeObjectStore) remove(hash chainhash.Hash) {
	delete(s.objects, hash)
}

func (s *fakeObjectStore) Lookup(hash chainhash.Hash) (Object, bool) {
	obj, ok := s.objects[hash]
	if !ok {
		return nil, false
	}
	return obj, true
}

func testHash(b byte) chainhash.Hash {
	var h chainhash.Hash
	h[0] = b
	return h
}
