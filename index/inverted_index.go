// Package index implements the in-memory inverted index and its query
// evaluator. The index is built once from a document batch and is read-only
// afterwards: queries take the read lock and never mutate shared state, so
// they may run fully concurrently.
package index

import (
	"math"
	"sort"
	"sync"

	"github.com/absearch/absearch/internal/normalizer"
	"github.com/absearch/absearch/model"
)

// termKey identifies one (document, term) cell of the frequency table.
type termKey struct {
	doc  model.DocumentID
	term string
}

// InvertedIndex owns the document store, the per-(document, term) frequency
// table, and the term -> document-set postings. The two term tables are kept
// consistent: a (doc, term) frequency exists exactly when doc is in the
// term's postings set, and every referenced id exists in documents.
type InvertedIndex struct {
	mu        sync.RWMutex
	documents map[model.DocumentID]model.Document
	freq      map[termKey]int
	postings  map[string]map[model.DocumentID]struct{}
}

// New creates an empty index.
func New() *InvertedIndex {
	return &InvertedIndex{
		documents: make(map[model.DocumentID]model.Document),
		freq:      make(map[termKey]int),
		postings:  make(map[string]map[model.DocumentID]struct{}),
	}
}

// Ingest indexes the full text of doc. Re-ingesting an id that is already
// present is a silent no-op, so ingestion is idempotent. The write lock is
// held for the whole update: a partially indexed document is never visible
// to a concurrent query.
func (idx *InvertedIndex) Ingest(doc model.Document) {
	tokens := normalizer.Normalize(doc.FullText())

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.documents[doc.ID]; exists {
		return
	}

	for _, token := range tokens {
		idx.freq[termKey{doc: doc.ID, term: token}]++
		set, ok := idx.postings[token]
		if !ok {
			set = make(map[model.DocumentID]struct{})
			idx.postings[token] = set
		}
		set[doc.ID] = struct{}{}
	}
	idx.documents[doc.ID] = doc
}

// Size returns the number of distinct documents in the index.
func (idx *InvertedIndex) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.documents)
}

// TermCount returns the number of distinct terms in the postings.
func (idx *InvertedIndex) TermCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.postings)
}

// Document retrieves the document with the given id. The second return value
// reports whether the id is known; an unknown id never yields a placeholder
// document.
func (idx *InvertedIndex) Document(id model.DocumentID) (model.Document, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	doc, ok := idx.documents[id]
	return doc, ok
}

// Query evaluates a keyword query and returns matching document ids ranked
// by descending TF-IDF score, ties broken by ascending id. Every distinct
// query term known to the index must appear in a candidate (boolean AND);
// terms the index has never seen are ignored rather than emptying the
// result. A query that normalizes to zero tokens returns an empty slice,
// never an error.
func (idx *InvertedIndex) Query(query string) []model.DocumentID {
	tokens := normalizer.Normalize(query)

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	// Collect the posting set of each distinct token with an index entry.
	sets := make([]map[model.DocumentID]struct{}, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		if set, ok := idx.postings[token]; ok {
			sets = append(sets, set)
		}
	}
	if len(sets) == 0 {
		return []model.DocumentID{}
	}

	// Intersect: a candidate must be a member of every collected set.
	candidates := make([]model.DocumentID, 0, len(sets[0]))
	for id := range sets[0] {
		inAll := true
		for _, set := range sets[1:] {
			if _, ok := set[id]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			candidates = append(candidates, id)
		}
	}

	// Score candidates. Query tokens are walked in their original order with
	// duplicates preserved, so repeating a term amplifies its contribution.
	// The inverse document frequency uses the candidate's own term frequency
	// as the denominator; switching to corpus document frequency is a
	// separate, documented ranking variant.
	totalDocs := float64(len(idx.documents))
	type scoredDoc struct {
		id    model.DocumentID
		score float64
	}
	results := make([]scoredDoc, 0, len(candidates))
	for _, id := range candidates {
		var score float64
		for _, token := range tokens {
			tf, ok := idx.freq[termKey{doc: id, term: token}]
			if !ok {
				continue
			}
			idf := math.Log10(totalDocs / float64(tf))
			score += idf * float64(tf)
		}
		results = append(results, scoredDoc{id: id, score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].id < results[j].id
	})

	ids := make([]model.DocumentID, len(results))
	for i, r := range results {
		ids[i] = r.id
	}
	return ids
}
