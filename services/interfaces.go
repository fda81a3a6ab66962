package services

import "github.com/absearch/absearch/model"

// Searcher evaluates ranked keyword queries against a built index.
type Searcher interface {
	Query(query string) []model.DocumentID
}

// DocumentFinder provides point lookups into the document store.
type DocumentFinder interface {
	Document(id model.DocumentID) (model.Document, bool)
}

// StatsProvider reports corpus-level counters.
type StatsProvider interface {
	Size() int
	TermCount() int
}

// Index is the full read surface the command layer serves. The concrete
// index satisfies it; tests may substitute fakes.
type Index interface {
	Searcher
	DocumentFinder
	StatsProvider
}
