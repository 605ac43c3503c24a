package catalog

import (
	"context"
	"strings"
	"sync"

	"aquabio-be/internal/entities"
)

// Outcome tells the caller which view a search should navigate to.
type Outcome int

const (
	// OutcomeNone means the term was blank and no navigation happens.
	OutcomeNone Outcome = iota
	// OutcomeResults means at least one entry matched.
	OutcomeResults
	// OutcomeNotFound means nothing matched (or the store is empty).
	OutcomeNotFound
)

// Store holds the catalog entries loaded from the API and answers
// client-side searches over them.
type Store struct {
	mu      sync.RWMutex
	entries []entities.BiotaEntry
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Load fetches the catalog through the client and replaces the store's
// contents.
func (s *Store) Load(ctx context.Context, client *Client) error {
	entries, err := client.FetchEntries(ctx)
	if err != nil {
		return err
	}
	s.Replace(entries)
	return nil
}

// Replace swaps in a new set of entries.
func (s *Store) Replace(entries []entities.BiotaEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
}

// Entries returns a copy of the loaded catalog.
func (s *Store) Entries() []entities.BiotaEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.BiotaEntry(nil), s.entries...)
}

// Len returns the number of loaded entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Search returns the entries whose name, category, location, or
// description contains the trimmed term, case-insensitively. A blank
// term is a no-op (OutcomeNone); no matches yield OutcomeNotFound so
// the UI can show its "not found" view.
func (s *Store) Search(term string) ([]entities.BiotaEntry, Outcome) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, OutcomeNone
	}
	query := strings.ToLower(term)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []entities.BiotaEntry
	for _, entry := range s.entries {
		if matches(entry, query) {
			results = append(results, entry)
		}
	}
	if len(results) == 0 {
		return nil, OutcomeNotFound
	}
	return results, OutcomeResults
}

func matches(entry entities.BiotaEntry, query string) bool {
	return strings.Contains(strings.ToLower(entry.Name), query) ||
		strings.Contains(strings.ToLower(entry.Category), query) ||
		strings.Contains(strings.ToLower(entry.Location), query) ||
		strings.Contains(strings.ToLower(entry.Description), query)
}
