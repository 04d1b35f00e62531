package tutorials

import (
	"errors"
	"sync"
)

// ErrUnknownTutorial is returned when bookmarking an id not in the catalog.
var ErrUnknownTutorial = errors.New("unknown tutorial")

// Bookmarks keeps each user's bookmarked tutorial ids in memory, in the
// order they were added. Nothing is persisted.
type Bookmarks struct {
	catalog []Tutorial

	mu     sync.Mutex
	byUser map[string][]int
}

// NewBookmarks creates an empty bookmark set over catalog.
func NewBookmarks(catalog []Tutorial) *Bookmarks {
	return &Bookmarks{catalog: catalog, byUser: make(map[string][]int)}
}

// Toggle adds id to the user's bookmarks or removes it if present. It
// reports whether the tutorial is bookmarked afterwards.
func (b *Bookmarks) Toggle(user string, id int) (bool, error) {
	if _, ok := Lookup(b.catalog, id); !ok {
		return false, ErrUnknownTutorial
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ids := b.byUser[user]
	for i, existing := range ids {
		if existing == id {
			b.byUser[user] = append(ids[:i:i], ids[i+1:]...)
			return false, nil
		}
	}
	b.byUser[user] = append(ids, id)
	return true, nil
}

// Has reports whether the user bookmarked id.
func (b *Bookmarks) Has(user string, id int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, existing := range b.byUser[user] {
		if existing == id {
			return true
		}
	}
	return false
}

// List returns the user's bookmarked tutorials in insertion order.
func (b *Bookmarks) List(user string) []Tutorial {
	b.mu.Lock()
	ids := append([]int(nil), b.byUser[user]...)
	b.mu.Unlock()

	out := make([]Tutorial, 0, len(ids))
	for _, id := range ids {
		if t, ok := Lookup(b.catalog, id); ok {
			out = append(out, t)
		}
	}
	return out
}

// Listing is a tutorial as shown to one user.
type Listing struct {
	Tutorial
	Bookmarked bool `json:"bookmarked"`
}

// Mark pairs each tutorial with the user's bookmark state. An empty user
// has no bookmarks.
func (b *Bookmarks) Mark(user string, list []Tutorial) []Listing {
	out := make([]Listing, 0, len(list))
	for _, t := range list {
		out = append(out, Listing{Tutorial: t, Bookmarked: user != "" && b.Has(user, t.ID)})
	}
	return out
}
