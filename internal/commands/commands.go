package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/antti/strmatch-go/internal/config"
	"github.com/antti/strmatch-go/internal/history"
	"github.com/antti/strmatch-go/internal/similarity"
	"github.com/antti/strmatch-go/internal/store"
	"github.com/antti/strmatch-go/internal/wordlist"
)

// Options carries the candidate source and matching overrides for a
// query. Threshold and Limit default to the configured values when
// negative.
type Options struct {
	Threshold float64
	Limit     int
	ListName  string // candidates come from a saved word list
	FilePath  string // candidates come from a file, one per line
}

// DefaultOptions returns Options with every override unset
func DefaultOptions() Options {
	return Options{Threshold: -1, Limit: -1}
}

// Match ranks candidates against the query and prints those at or above
// the threshold, best first. Candidates come from the source named in
// opts, from trailing args, or from stdin when neither is given.
func Match(query string, args []string, opts Options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	candidates, err := resolveCandidates(args, opts, cfg)
	if err != nil {
		return err
	}

	threshold := opts.Threshold
	if threshold < 0 {
		threshold = cfg.User.Match.Threshold
	}
	limit := opts.Limit
	if limit < 0 {
		limit = cfg.User.Match.MaxResults
	}

	if cfg.User.Match.CaseFold {
		query, candidates = fold(query, candidates)
	}

	recordQuery(cfg, query)

	matches := similarity.FindMatches(query, candidates, threshold)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	if len(matches) == 0 {
		fmt.Fprintln(os.Stderr, "No matches")
		return nil
	}

	printMatches(matches, cfg.User.Display.ShowDistance)
	return nil
}

// Best prints the single closest candidate to the query. No threshold is
// applied; an empty candidate set prints nothing and is not an error.
func Best(query string, args []string, opts Options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	candidates, err := resolveCandidates(args, opts, cfg)
	if err != nil {
		return err
	}

	if cfg.User.Match.CaseFold {
		query, candidates = fold(query, candidates)
	}

	recordQuery(cfg, query)

	best, ok := similarity.FindBestMatch(query, candidates)
	if !ok {
		fmt.Fprintln(os.Stderr, "No candidates")
		return nil
	}

	printMatches([]similarity.Match{best}, cfg.User.Display.ShowDistance)
	return nil
}

// Dist prints the edit distance between two strings
func Dist(a, b string) error {
	fmt.Println(similarity.Distance(a, b))
	return nil
}

// Score prints the similarity score between two strings
func Score(a, b string) error {
	fmt.Printf("%.4f\n", similarity.Similarity(a, b))
	return nil
}

// Register saves a word list read from a file, one word per line
func Register(name, path string) error {
	if err := wordlist.ValidateName(name); err != nil {
		return err
	}

	expandedPath, err := config.ExpandPath(path)
	if err != nil {
		return err
	}

	words, err := readCandidateFile(expandedPath)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.EnsureConfigDir(); err != nil {
		return err
	}

	s := store.New(cfg.ListsPath)
	if err := s.Add(name, words); err != nil {
		return err
	}

	fmt.Printf("Registered list '%s' with %d words\n", name, len(words))
	return nil
}

// Unregister deletes a saved word list
func Unregister(name string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s := store.New(cfg.ListsPath)
	if err := s.Remove(name); err != nil {
		return err
	}

	fmt.Printf("Unregistered list '%s'\n", name)
	return nil
}

// AddWord appends a word to a saved list
func AddWord(listName, word string) error {
	if word == "" {
		return &wordlist.InvalidInputError{Reason: "word cannot be empty"}
	}
	if !utf8.ValidString(word) {
		return &wordlist.InvalidInputError{Reason: "word is not valid UTF-8"}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s := store.New(cfg.ListsPath)
	if err := s.AddWord(listName, word); err != nil {
		return err
	}

	fmt.Printf("Added '%s' to list '%s'\n", word, listName)
	return nil
}

// RemoveWord removes a word from a saved list
func RemoveWord(listName, word string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s := store.New(cfg.ListsPath)
	if err := s.RemoveWord(listName, word); err != nil {
		return err
	}

	fmt.Printf("Removed '%s' from list '%s'\n", word, listName)
	return nil
}

// Rename renames a saved list while preserving its words and metadata
func Rename(oldName, newName string) error {
	if err := wordlist.ValidateName(newName); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s := store.New(cfg.ListsPath)
	if err := s.Rename(oldName, newName); err != nil {
		return err
	}

	fmt.Printf("Renamed list '%s' to '%s'\n", oldName, newName)
	return nil
}

// Lists displays all saved word lists
func Lists() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s := store.New(cfg.ListsPath)
	entries, err := s.LoadEntries()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No word lists registered")
		return nil
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	// Use tabwriter for aligned columns
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%d words\t[%d queries, last: %s]\n",
			entry.Name, len(entry.Words), entry.UseCount, formatTimeAgo(entry.LastUsed))
	}
	w.Flush()

	return nil
}

// ListNames prints saved list names only (for shell completion)
func ListNames() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s := store.New(cfg.ListsPath)
	names, err := s.Names()
	if err != nil {
		return err
	}

	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

// Export outputs all word lists as TOML to stdout
func Export() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s := store.New(cfg.ListsPath)
	entries, err := s.LoadEntries()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No word lists to export")
		return nil
	}

	data := store.ListFile{Lists: entries}
	encoder := toml.NewEncoder(os.Stdout)
	return encoder.Encode(data)
}

// ImportResult contains statistics about the import operation
type ImportResult struct {
	Imported int
	Skipped  int
	Merged   int
	Warnings []string
}

// Import reads word lists from a TOML file and merges them with the store
func Import(path string, strategy string) (*ImportResult, error) {
	// Validate strategy
	if strategy != "skip" && strategy != "overwrite" && strategy != "merge" {
		return nil, fmt.Errorf("invalid strategy: %s (must be skip, overwrite, or merge)", strategy)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &wordlist.FileNotFoundError{Path: path}
	}

	// Read and parse import file
	var importData store.ListFile
	if _, err := toml.DecodeFile(path, &importData); err != nil {
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}

	if len(importData.Lists) == 0 {
		return nil, fmt.Errorf("no word lists found in import file")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureConfigDir(); err != nil {
		return nil, err
	}

	s := store.New(cfg.ListsPath)
	existingEntries, err := s.LoadEntries()
	if err != nil {
		return nil, err
	}

	// Build map of existing lists
	existingMap := make(map[string]int) // name -> index in existingEntries
	for i, entry := range existingEntries {
		existingMap[entry.Name] = i
	}

	result := &ImportResult{}

	for _, importEntry := range importData.Lists {
		if err := wordlist.ValidateName(importEntry.Name); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("skipping invalid list name '%s': %v", importEntry.Name, err))
			result.Skipped++
			continue
		}

		if idx, exists := existingMap[importEntry.Name]; exists {
			// List already exists - handle based on strategy
			switch strategy {
			case "skip":
				result.Skipped++
			case "overwrite":
				existingEntries[idx] = importEntry
				result.Imported++
			case "merge":
				existingEntries[idx].Words = mergeWords(existingEntries[idx].Words, importEntry.Words)
				result.Merged++
			}
		} else {
			existingEntries = append(existingEntries, importEntry)
			existingMap[importEntry.Name] = len(existingEntries) - 1
			result.Imported++
		}
	}

	if err := s.SaveEntries(existingEntries); err != nil {
		return nil, fmt.Errorf("failed to save word lists: %w", err)
	}

	return result, nil
}

// ShowHistory displays recent queries, newest first
func ShowHistory(limit int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	h := history.New(cfg.HistoryPath)
	recent, err := h.Recent(limit)
	if err != nil {
		if err == history.ErrEmptyHistory {
			fmt.Println("No queries recorded")
			return nil
		}
		return err
	}

	for i, query := range recent {
		fmt.Printf("%d. %s\n", i+1, query)
	}
	return nil
}

// ClearHistory removes all recorded queries
func ClearHistory() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	h := history.New(cfg.HistoryPath)
	if err := h.Clear(); err != nil {
		return err
	}

	fmt.Println("Query history cleared")
	return nil
}

// ShowConfig displays the current configuration
func ShowConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Print(cfg.FormatConfig())
	return nil
}

// resolveCandidates picks the candidate source for a query: a saved
// list, a file, trailing arguments, or stdin, in that order of
// precedence.
func resolveCandidates(args []string, opts Options, cfg *config.Config) ([]string, error) {
	if opts.ListName != "" {
		s := store.New(cfg.ListsPath)
		entry, err := s.Get(opts.ListName)
		if err != nil {
			// If the list isn't found, try fuzzy matching its name
			if _, ok := err.(*wordlist.ListNotFoundError); ok {
				suggestions, suggestErr := s.SuggestNames(opts.ListName, cfg.User.Match.Threshold)
				if suggestErr == nil && len(suggestions) > 0 {
					// Limit to top 3 suggestions
					if len(suggestions) > 3 {
						suggestions = suggestions[:3]
					}
					fmt.Fprintf(os.Stderr, "Did you mean: %s?\n", strings.Join(suggestions, ", "))
				}
			}
			return nil, err
		}
		// Record usage (increment use_count, update last_used)
		_ = s.RecordUsage(opts.ListName)
		return entry.Words, nil
	}

	if opts.FilePath != "" {
		expandedPath, err := config.ExpandPath(opts.FilePath)
		if err != nil {
			return nil, err
		}
		return readCandidateFile(expandedPath)
	}

	if len(args) > 0 {
		for _, arg := range args {
			if !utf8.ValidString(arg) {
				return nil, &wordlist.InvalidInputError{Reason: "candidate is not valid UTF-8"}
			}
		}
		return args, nil
	}

	return readCandidates(os.Stdin)
}

// readCandidateFile reads candidates from a file, one per line
func readCandidateFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, &wordlist.FileNotFoundError{Path: path}
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return readCandidates(file)
}

// readCandidates reads one candidate per line, skipping blank lines.
// Input that is not valid UTF-8 cannot be interpreted as a sequence of
// strings and is rejected before it reaches the matcher.
func readCandidates(r io.Reader) ([]string, error) {
	var candidates []string
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !utf8.ValidString(line) {
			return nil, &wordlist.InvalidInputError{Reason: fmt.Sprintf("line %d is not valid UTF-8", lineNo)}
		}
		candidates = append(candidates, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return candidates, nil
}

// printMatches writes ranked matches in aligned columns
func printMatches(matches []similarity.Match, showDistance bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
	for _, m := range matches {
		if showDistance {
			fmt.Fprintf(w, "%s\t%.3f\t[%d edits]\n", m.Word, m.Similarity, m.Distance)
		} else {
			fmt.Fprintf(w, "%s\t%.3f\n", m.Word, m.Similarity)
		}
	}
	w.Flush()
}

// recordQuery appends the query to the history file. History failures
// never fail the query itself.
func recordQuery(cfg *config.Config, query string) {
	if err := cfg.EnsureConfigDir(); err != nil {
		return
	}
	_ = history.New(cfg.HistoryPath).Add(query)
}

// fold lowercases the query and every candidate
func fold(query string, candidates []string) (string, []string) {
	folded := make([]string, len(candidates))
	for i, c := range candidates {
		folded[i] = strings.ToLower(c)
	}
	return strings.ToLower(query), folded
}

// mergeWords combines two word slices, keeping order and dropping duplicates
func mergeWords(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, w := range existing {
		if !seen[w] {
			seen[w] = true
			merged = append(merged, w)
		}
	}
	for _, w := range incoming {
		if !seen[w] {
			seen[w] = true
			merged = append(merged, w)
		}
	}
	return merged
}

// formatTimeAgo returns a human-readable time difference string
func formatTimeAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	duration := time.Since(t)

	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		mins := int(duration.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case duration < 24*time.Hour:
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case duration < 7*24*time.Hour:
		days := int(duration.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	case duration < 30*24*time.Hour:
		weeks := int(duration.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	default:
		months := int(duration.Hours() / 24 / 30)
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	}
}
