package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/antti/strmatch-go/internal/commands"
	"github.com/antti/strmatch-go/internal/history"
	"github.com/antti/strmatch-go/internal/wordlist"
)

var version = "1.0.0"

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		printUsage()
		return 1
	}

	arg := os.Args[1]

	switch arg {
	case "-h", "--help":
		printHelp()
		return 0

	case "-v", "--version":
		fmt.Printf("strmatch version %s\n", version)
		return 0

	case "--config":
		if err := commands.ShowConfig(); err != nil {
			return handleError(err)
		}
		return 0

	case "-l", "--lists":
		if err := commands.Lists(); err != nil {
			return handleError(err)
		}
		return 0

	case "--names-only":
		// Hidden option for shell completion
		if err := commands.ListNames(); err != nil {
			return handleError(err)
		}
		return 0

	case "-r", "--register":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, "Usage: strmatch -r <name> <file>")
			return 1
		}
		if err := commands.Register(os.Args[2], os.Args[3]); err != nil {
			return handleError(err)
		}
		return 0

	case "-u", "--unregister":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: strmatch -u <name>")
			return 1
		}
		if err := commands.Unregister(os.Args[2]); err != nil {
			return handleError(err)
		}
		return 0

	case "--add":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, "Usage: strmatch --add <list> <word>")
			return 1
		}
		if err := commands.AddWord(os.Args[2], os.Args[3]); err != nil {
			return handleError(err)
		}
		return 0

	case "--remove":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, "Usage: strmatch --remove <list> <word>")
			return 1
		}
		if err := commands.RemoveWord(os.Args[2], os.Args[3]); err != nil {
			return handleError(err)
		}
		return 0

	case "--rename":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, "Usage: strmatch --rename <old-name> <new-name>")
			return 1
		}
		if err := commands.Rename(os.Args[2], os.Args[3]); err != nil {
			return handleError(err)
		}
		return 0

	case "-d", "--dist":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, "Usage: strmatch -d <string> <string>")
			return 1
		}
		if err := commands.Dist(os.Args[2], os.Args[3]); err != nil {
			return handleError(err)
		}
		return 0

	case "-s", "--score":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, "Usage: strmatch -s <string> <string>")
			return 1
		}
		if err := commands.Score(os.Args[2], os.Args[3]); err != nil {
			return handleError(err)
		}
		return 0

	case "-b", "--best":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: strmatch -b <query> [candidates...]")
			return 1
		}
		candidates, opts, err := parseQueryArgs(os.Args[3:])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := commands.Best(os.Args[2], candidates, opts); err != nil {
			return handleError(err)
		}
		return 0

	case "--export":
		if err := commands.Export(); err != nil {
			return handleError(err)
		}
		return 0

	case "--import":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: strmatch --import <file> [--strategy=skip|overwrite|merge]")
			return 1
		}
		filepath := os.Args[2]
		strategy := "skip" // default strategy

		// Check for --strategy flag
		for i := 3; i < len(os.Args); i++ {
			arg := os.Args[i]
			if len(arg) > 11 && arg[:11] == "--strategy=" {
				strategy = arg[11:]
			}
		}

		result, err := commands.Import(filepath, strategy)
		if err != nil {
			return handleError(err)
		}

		// Print warnings
		for _, warning := range result.Warnings {
			fmt.Fprintln(os.Stderr, warning)
		}

		// Print summary
		fmt.Printf("Import complete: %d imported", result.Imported)
		if result.Skipped > 0 {
			fmt.Printf(", %d skipped", result.Skipped)
		}
		if result.Merged > 0 {
			fmt.Printf(", %d merged", result.Merged)
		}
		fmt.Println()
		return 0

	case "--history":
		limit := 10
		if len(os.Args) >= 3 {
			n, err := strconv.Atoi(os.Args[2])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid argument: %s (expected number)\n", os.Args[2])
				return 1
			}
			limit = n
		}
		if err := commands.ShowHistory(limit); err != nil {
			return handleError(err)
		}
		return 0

	case "--history-clear":
		if err := commands.ClearHistory(); err != nil {
			return handleError(err)
		}
		return 0

	default:
		// Default action: rank candidates against the query
		if arg[0] == '-' {
			fmt.Fprintf(os.Stderr, "Unknown option: %s\n", arg)
			return 1
		}
		candidates, opts, err := parseQueryArgs(os.Args[2:])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := commands.Match(arg, candidates, opts); err != nil {
			return handleError(err)
		}
		return 0
	}
}

// parseQueryArgs splits flag-style arguments from plain candidates
func parseQueryArgs(args []string) ([]string, commands.Options, error) {
	opts := commands.DefaultOptions()
	var candidates []string

	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--threshold="):
			val, err := strconv.ParseFloat(arg[len("--threshold="):], 64)
			if err != nil {
				return nil, opts, fmt.Errorf("invalid threshold: %s", arg[len("--threshold="):])
			}
			opts.Threshold = val
		case strings.HasPrefix(arg, "--limit="):
			val, err := strconv.Atoi(arg[len("--limit="):])
			if err != nil {
				return nil, opts, fmt.Errorf("invalid limit: %s", arg[len("--limit="):])
			}
			opts.Limit = val
		case strings.HasPrefix(arg, "--use="):
			opts.ListName = arg[len("--use="):]
		case strings.HasPrefix(arg, "--file="):
			opts.FilePath = arg[len("--file="):]
		default:
			candidates = append(candidates, arg)
		}
	}

	return candidates, opts, nil
}

func handleError(err error) int {
	fmt.Fprintln(os.Stderr, err)

	// Map errors to exit codes
	var notFound *wordlist.ListNotFoundError
	var wordNotFound *wordlist.WordNotFoundError
	var invalidName *wordlist.InvalidNameError
	var invalidInput *wordlist.InvalidInputError
	var exists *wordlist.ListExistsError
	var fileNotFound *wordlist.FileNotFoundError

	switch {
	case errors.As(err, &fileNotFound):
		return 2
	case errors.As(err, &invalidName):
		return 3
	case errors.As(err, &invalidInput):
		return 3
	case errors.As(err, &exists):
		return 4
	case errors.As(err, &notFound):
		return 1
	case errors.As(err, &wordNotFound):
		return 1
	case errors.Is(err, history.ErrEmptyHistory):
		return 1
	default:
		return 5
	}
}

func printUsage() {
	fmt.Println("Usage: strmatch <query> [candidates...] or strmatch [OPTIONS]")
	fmt.Println("Try 'strmatch --help' for more information.")
}

func printHelp() {
	help := `strmatch - Approximate string matching

Usage:
  strmatch <query> [candidates...]  Rank candidates by similarity
  strmatch <query>                  Rank candidates read from stdin
  strmatch -b <query> [cand...]     Print only the best match
  strmatch -d <a> <b>               Print edit distance between two strings
  strmatch -s <a> <b>               Print similarity score between two strings
  strmatch -r <name> <file>         Register a word list from a file
  strmatch -u <name>                Unregister a word list
  strmatch --add <list> <word>      Add a word to a list
  strmatch --remove <list> <word>   Remove a word from a list
  strmatch --rename <old> <new>     Rename a word list
  strmatch -l                       List saved word lists
  strmatch --export                 Export word lists as TOML (stdout)
  strmatch --import <file>          Import word lists from TOML file
  strmatch --history [n]            Show recent queries
  strmatch --history-clear          Clear query history
  strmatch --config                 Show current configuration
  strmatch -v                       Show version
  strmatch -h                       Show this help

Query options (use after the query):
  --threshold=<f>                   Minimum similarity in [0.0, 1.0]
  --limit=<n>                       Maximum number of results (0 = unlimited)
  --use=<list>                      Take candidates from a saved word list
  --file=<path>                     Take candidates from a file, one per line

Import strategies (use with --import):
  --strategy=skip                   Skip existing lists (default)
  --strategy=overwrite              Overwrite existing lists
  --strategy=merge                  Merge words into existing lists

List name rules:
  - Names must start with a letter or digit
  - Only letters, digits, hyphens, underscores

Examples:
  strmatch kitten sitting mitten bitten   Rank three candidates
  cat words.txt | strmatch recieve        Rank stdin candidates
  strmatch -b adress --use=english        Best match from a saved list
  strmatch -d kitten sitting              Edit distance (prints 3)
  strmatch -r english /usr/share/dict/words
  strmatch color --use=english --threshold=0.8 --limit=5
  strmatch --export > backup.toml         Backup word lists
  strmatch --import backup.toml           Restore word lists
`
	fmt.Print(help)
}
