package store

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/antti/strmatch-go/internal/similarity"
	"github.com/antti/strmatch-go/internal/wordlist"
)

// ListEntry represents a saved word list with metadata
type ListEntry struct {
	Name     string    `toml:"name"`
	Words    []string  `toml:"words"`
	Created  time.Time `toml:"created"`
	LastUsed time.Time `toml:"last_used,omitempty"`
	UseCount int       `toml:"use_count"`
}

// ListFile represents the TOML file structure
type ListFile struct {
	Lists []ListEntry `toml:"lists"`
}

// Store handles word list persistence
type Store struct {
	path string // Path to TOML file (lists.toml)
}

// New creates a new Store instance backed by the given TOML file
func New(path string) *Store {
	return &Store{path: path}
}

// LoadEntries reads all word list entries from the store
func (s *Store) LoadEntries() ([]ListEntry, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		// No store exists yet, return empty
		return []ListEntry{}, nil
	}

	var data ListFile
	if _, err := toml.DecodeFile(s.path, &data); err != nil {
		return nil, err
	}
	return data.Lists, nil
}

// SaveEntries writes all word list entries to the TOML file
func (s *Store) SaveEntries(entries []ListEntry) error {
	// Ensure directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer file.Close()

	data := ListFile{Lists: entries}
	encoder := toml.NewEncoder(file)
	return encoder.Encode(data)
}

// Get retrieves a single word list by name
func (s *Store) Get(name string) (*ListEntry, error) {
	entries, err := s.LoadEntries()
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.Name == name {
			return &entry, nil
		}
	}

	return nil, &wordlist.ListNotFoundError{Name: name}
}

// Add adds a new word list (fails if exists)
func (s *Store) Add(name string, words []string) error {
	entries, err := s.LoadEntries()
	if err != nil {
		return err
	}

	// Check for duplicate
	for _, existing := range entries {
		if existing.Name == name {
			return &wordlist.ListExistsError{Name: name}
		}
	}

	entries = append(entries, ListEntry{
		Name:    name,
		Words:   dedupe(words),
		Created: time.Now(),
	})
	return s.SaveEntries(entries)
}

// Remove removes a word list by name
func (s *Store) Remove(name string) error {
	entries, err := s.LoadEntries()
	if err != nil {
		return err
	}

	found := false
	filtered := make([]ListEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Name == name {
			found = true
		} else {
			filtered = append(filtered, entry)
		}
	}

	if !found {
		return &wordlist.ListNotFoundError{Name: name}
	}

	return s.SaveEntries(filtered)
}

// AddWord appends a word to a list, ignoring exact duplicates
func (s *Store) AddWord(listName, word string) error {
	entries, err := s.LoadEntries()
	if err != nil {
		return err
	}

	for i, entry := range entries {
		if entry.Name == listName {
			for _, existing := range entry.Words {
				if existing == word {
					return nil // Word already present, nothing to do
				}
			}
			entries[i].Words = append(entries[i].Words, word)
			return s.SaveEntries(entries)
		}
	}

	return &wordlist.ListNotFoundError{Name: listName}
}

// RemoveWord removes a word from a list
func (s *Store) RemoveWord(listName, word string) error {
	entries, err := s.LoadEntries()
	if err != nil {
		return err
	}

	for i, entry := range entries {
		if entry.Name == listName {
			filtered := make([]string, 0, len(entry.Words))
			found := false
			for _, existing := range entry.Words {
				if existing == word {
					found = true
				} else {
					filtered = append(filtered, existing)
				}
			}
			if !found {
				return &wordlist.WordNotFoundError{List: listName, Word: word}
			}
			entries[i].Words = filtered
			return s.SaveEntries(entries)
		}
	}

	return &wordlist.ListNotFoundError{Name: listName}
}

// Rename renames a word list while preserving all metadata
func (s *Store) Rename(oldName, newName string) error {
	entries, err := s.LoadEntries()
	if err != nil {
		return err
	}

	foundIdx := -1
	for i, entry := range entries {
		if entry.Name == oldName {
			foundIdx = i
		} else if entry.Name == newName {
			return &wordlist.ListExistsError{Name: newName}
		}
	}

	if foundIdx == -1 {
		return &wordlist.ListNotFoundError{Name: oldName}
	}

	entries[foundIdx].Name = newName

	return s.SaveEntries(entries)
}

// Names returns just the list names
func (s *Store) Names() ([]string, error) {
	entries, err := s.LoadEntries()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name
	}
	return names, nil
}

// SuggestNames returns list names similar to the query with similarity
// >= threshold, best first. Used for "did you mean" hints when a list
// lookup fails.
func (s *Store) SuggestNames(query string, threshold float64) ([]string, error) {
	names, err := s.Names()
	if err != nil {
		return nil, err
	}

	matches := similarity.FindMatches(query, names, threshold)
	suggestions := make([]string, len(matches))
	for i, m := range matches {
		suggestions[i] = m.Word
	}
	return suggestions, nil
}

// RecordUsage updates the last_used timestamp and increments use_count
func (s *Store) RecordUsage(name string) error {
	entries, err := s.LoadEntries()
	if err != nil {
		return err
	}

	for i, entry := range entries {
		if entry.Name == name {
			entries[i].LastUsed = time.Now()
			entries[i].UseCount++
			return s.SaveEntries(entries)
		}
	}

	return &wordlist.ListNotFoundError{Name: name}
}

// dedupe removes exact duplicates while preserving input order
func dedupe(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}
