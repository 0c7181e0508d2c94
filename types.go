package retrieval

// Term is a single analyzer-emitted token. The inverted index in
// index.go keys its bitmaps and posting lists on the token string.
type Term = string

// DocID identifies one corpus row. The data model leaves it opaque and
// only equality-comparable and hashable; this module binds it
// concretely to string, since the corpus row contract (CorpusRow)
// already fixes doc_id as a string field.
type DocID = string

// CorpusRow is a single (doc_id, text) row. Loading a corpus from disk
// or a database, and any field-name configuration, is a caller
// concern. No function in this module takes a CorpusRow:
// InvertedIndex.Index takes an int document id and the text.
type CorpusRow struct {
	DocID DocID
	Text  string
}

// Posting is the record of one (term, document) pairing: how many
// times the term occurred in the document, and how long the document
// was after analysis. Zero-frequency postings are never stored.
type Posting struct {
	DocID  DocID
	DocLen int
	Freq   int
}

// Result is one ranked document: its identifier and its score. No
// function in this module returns a Result; the module has no BM25
// ranker type.
type Result struct {
	DocID DocID
	Score float64
}
