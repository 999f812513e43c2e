// Package store implements the Firestore persistence layer for groups, pages
// and PDF documents.
package store

import (
	"cloud.google.com/go/firestore"
)

// Collections names the Firestore collections used by the store.
type Collections struct {
	Groups string
	Pages  string
	Pdfs   string
}

// Store wraps the single long-lived Firestore client. It is safe for
// concurrent use by independent requests.
type Store struct {
	client      *firestore.Client
	collections Collections
}

func New(client *firestore.Client, collections Collections) *Store {
	return &Store{client: client, collections: collections}
}
