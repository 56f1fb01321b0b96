package history

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrEmptyHistory = errors.New("query history is empty")

// maxEntries caps the history file; the oldest queries are dropped first
const maxEntries = 100

// History handles the recent-query file
type History struct {
	path string
}

// New creates a new History instance
func New(path string) *History {
	return &History{path: path}
}

// Add appends a query to the history. Blank queries are ignored and a
// query equal to the most recent entry is not repeated.
func (h *History) Add(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	entries, err := h.load()
	if err != nil {
		return err
	}

	if len(entries) > 0 && entries[len(entries)-1] == query {
		return nil
	}

	entries = append(entries, query)
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	return h.save(entries)
}

// Recent returns up to limit queries, most recent first
func (h *History) Recent(limit int) ([]string, error) {
	entries, err := h.load()
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, ErrEmptyHistory
	}

	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}

	// Reverse so the newest query comes first
	recent := make([]string, limit)
	for i := 0; i < limit; i++ {
		recent[i] = entries[len(entries)-1-i]
	}
	return recent, nil
}

// Last returns the most recent query without removing it
func (h *History) Last() (string, error) {
	entries, err := h.load()
	if err != nil {
		return "", err
	}

	if len(entries) == 0 {
		return "", ErrEmptyHistory
	}

	return entries[len(entries)-1], nil
}

// Size returns the number of entries in the history
func (h *History) Size() (int, error) {
	entries, err := h.load()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Clear removes all entries from the history
func (h *History) Clear() error {
	return h.save([]string{})
}

func (h *History) load() ([]string, error) {
	file, err := os.Open(h.path)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			entries = append(entries, line)
		}
	}

	return entries, scanner.Err()
}

func (h *History) save(entries []string) error {
	file, err := os.Create(h.path)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, entry := range entries {
		if _, err := fmt.Fprintln(file, entry); err != nil {
			return err
		}
	}

	return nil
}
