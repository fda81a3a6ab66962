// Package model defines the document types shared across the engine.
package model

// DocumentID is the stable 64-bit identifier for a document. It is derived
// from the document's canonical source URL, so the same URL always maps to
// the same id regardless of ingestion order.
type DocumentID uint64

// Document is a single ingested record: a title, a short abstract, and the
// canonical source URL its identity was derived from.
type Document struct {
	ID       DocumentID `json:"id"`
	Title    string     `json:"title"`
	Abstract string     `json:"abstract"`
	URL      string     `json:"url,omitempty"`
}

// FullText returns the indexable text for the document: the title and the
// abstract joined by a single space. It is derived on demand, never stored.
func (d Document) FullText() string {
	return d.Title + " " + d.Abstract
}
