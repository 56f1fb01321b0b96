package wordlist

import (
	"fmt"
	"regexp"
)

// Valid list name pattern: starts with letter/digit, followed by letters/digits/hyphens/underscores
var validNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// ValidateName checks if a word list name is valid
func ValidateName(name string) error {
	if name == "" {
		return &InvalidNameError{Name: name, Reason: "name cannot be empty"}
	}

	if !validNamePattern.MatchString(name) {
		return &InvalidNameError{
			Name:   name,
			Reason: "must start with letter/digit and contain only letters, digits, hyphens, underscores",
		}
	}

	return nil
}

// InvalidNameError represents an invalid word list name error
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid list name '%s': %s", e.Name, e.Reason)
}

// ListNotFoundError represents a missing word list error
type ListNotFoundError struct {
	Name string
}

func (e *ListNotFoundError) Error() string {
	return fmt.Sprintf("word list '%s' not found", e.Name)
}

// ListExistsError represents a duplicate word list error
type ListExistsError struct {
	Name string
}

func (e *ListExistsError) Error() string {
	return fmt.Sprintf("word list '%s' already exists", e.Name)
}

// WordNotFoundError represents a word missing from a list
type WordNotFoundError struct {
	List string
	Word string
}

func (e *WordNotFoundError) Error() string {
	return fmt.Sprintf("word '%s' not found in list '%s'", e.Word, e.List)
}

// FileNotFoundError represents a missing input file error
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file does not exist: %s", e.Path)
}

// InvalidInputError represents candidate input that cannot be
// interpreted as a sequence of strings
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}
