package retrieval

// docInterner assigns a dense uint32 to every DocID it sees, the id
// form github.com/RoaringBitmap/roaring operates on, even though DocID
// is an opaque string. It does no locking. The inverted index in
// index.go and the query builder in query.go do not use it: they take
// int document ids and add them to their bitmaps directly.
type docInterner struct {
	toID    map[DocID]uint32
	toDocID []DocID
}

func newDocInterner() *docInterner {
	return &docInterner{toID: make(map[DocID]uint32)}
}

// intern returns the dense id for doc, assigning a new one on first
// sight.
func (in *docInterner) intern(doc DocID) uint32 {
	if id, ok := in.toID[doc]; ok {
		return id
	}
	id := uint32(len(in.toDocID))
	in.toID[doc] = id
	in.toDocID = append(in.toDocID, doc)
	return id
}

// docID returns the original DocID for a previously interned id.
func (in *docInterner) docID(id uint32) DocID {
	return in.toDocID[id]
}

// size returns how many distinct DocIDs have been interned.
func (in *docInterner) size() int {
	return len(in.toDocID)
}
