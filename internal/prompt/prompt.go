package prompt

import (
	"bufio"
	"fmt"
	"io"
	"mirro/internal/fsys"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CommonExcludes is the curated list of noise files offered for one-shot
// exclusion: OS metadata, VCS directories, dependency caches.
var CommonExcludes = []string{
	".DS_Store",
	".Spotlight-V100",
	".Trashes",
	"Thumbs.db",
	"desktop.ini",
	"$RECYCLE.BIN",
	".fseventsd",
	".TemporaryItems",
	".VolumeIcon.icns",
	".git",
	".svn",
	"__pycache__",
	".pyc",
	"node_modules",
	".idea",
	".vscode",
}

type Answers struct {
	Source      string
	Destination string
	Excludes    []string
	DryRun      bool
	Confirmed   bool
}

type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
	fs  fsys.FS
}

func New(in io.Reader, out io.Writer, fs fsys.FS) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
		fs:  fs,
	}
}

// Run walks the interactive flow: validated source and destination, the
// exclusion menu, and the dry-run / confirmation questions.
func (p *Prompter) Run() (Answers, error) {
	var ans Answers

	fmt.Fprintln(p.out, strings.Repeat("=", 60))
	fmt.Fprintln(p.out, "Directory Mirror Tool")
	fmt.Fprintln(p.out, strings.Repeat("=", 60))
	fmt.Fprintln(p.out, "\nThis will mirror the source directory to the destination.")
	fmt.Fprintln(p.out, "Files in destination not in source will be DELETED.")
	fmt.Fprintln(p.out)

	src, err := p.askSource()
	if err != nil {
		return ans, err
	}
	ans.Source = src

	dst, err := p.askDestination(src)
	if err != nil {
		return ans, err
	}
	ans.Destination = dst

	excludes, err := p.askExcludes()
	if err != nil {
		return ans, err
	}
	ans.Excludes = excludes

	fmt.Fprintln(p.out, "\n"+strings.Repeat("=", 60))
	fmt.Fprintf(p.out, "Source:      %s\n", ans.Source)
	fmt.Fprintf(p.out, "Destination: %s\n", ans.Destination)
	fmt.Fprintln(p.out, strings.Repeat("=", 60))
	fmt.Fprintln(p.out, "\nWARNING: This will DELETE files in destination not in source!")

	dryAnswer, err := p.ask("\nRun in dry-run mode (preview changes without applying)? (yes/no): ")
	if err != nil {
		return ans, err
	}
	ans.DryRun = isYes(dryAnswer)

	if ans.DryRun {
		fmt.Fprintln(p.out, "\n[DRY RUN MODE - No changes will be made]")
		ans.Confirmed = true
		return ans, nil
	}

	confirm, err := p.ask("\nProceed with mirror? (yes/no): ")
	if err != nil {
		return ans, err
	}
	ans.Confirmed = isYes(confirm)

	return ans, nil
}

func (p *Prompter) askSource() (string, error) {
	for {
		input, err := p.ask("Enter source directory path: ")
		if err != nil {
			return "", err
		}

		if input == "" {
			fmt.Fprintln(p.out, "Source path cannot be empty. Please try again.")
			continue
		}

		src := expandPath(input)

		if !p.fs.Exists(src) {
			fmt.Fprintf(p.out, "Error: '%s' does not exist. Please try again.\n", src)
			continue
		}

		if !p.fs.IsDir(src) {
			fmt.Fprintf(p.out, "Error: '%s' is not a directory. Please try again.\n", src)
			continue
		}

		return src, nil
	}
}

func (p *Prompter) askDestination(src string) (string, error) {
	for {
		input, err := p.ask("Enter destination directory path: ")
		if err != nil {
			return "", err
		}

		if input == "" {
			fmt.Fprintln(p.out, "Destination path cannot be empty. Please try again.")
			continue
		}

		dst := expandPath(input)

		if dst == src || pathInside(dst, src) || pathInside(src, dst) {
			fmt.Fprintln(p.out, "Error: Source and destination cannot overlap. Please try again.")
			continue
		}

		return dst, nil
	}
}

func (p *Prompter) askExcludes() ([]string, error) {
	fmt.Fprintln(p.out, "\n"+strings.Repeat("=", 60))
	fmt.Fprintln(p.out, "File Exclusions")
	fmt.Fprintln(p.out, strings.Repeat("=", 60))

	answer, err := p.ask("\nWould you like to exclude common system/cache files? (yes/no): ")
	if err != nil {
		return nil, err
	}

	if !isYes(answer) {
		custom, err := p.ask("\nWould you like to add custom exclusion patterns? (yes/no): ")
		if err != nil {
			return nil, err
		}
		if isYes(custom) {
			return p.askCustomPatterns()
		}
		return nil, nil
	}

	fmt.Fprintln(p.out, "\nCommon exclusion patterns:")
	for i, pattern := range CommonExcludes {
		fmt.Fprintf(p.out, "  %2d. %s\n", i+1, pattern)
	}

	fmt.Fprintln(p.out, "\nOptions:")
	fmt.Fprintln(p.out, "  - Press Enter to exclude ALL patterns above")
	fmt.Fprintln(p.out, "  - Enter pattern numbers (e.g., '1,3,5' or '1 3 5') for specific exclusions")
	fmt.Fprintln(p.out, "  - Enter 'none' to skip exclusions")
	fmt.Fprintln(p.out, "  - Enter 'custom' to add your own patterns")

	choice, err := p.ask("\nYour choice: ")
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(choice) {
	case "":
		fmt.Fprintf(p.out, "Excluding all %d common patterns.\n", len(CommonExcludes))
		return append([]string(nil), CommonExcludes...), nil

	case "none":
		fmt.Fprintln(p.out, "No exclusions selected.")
		return nil, nil

	case "custom":
		return p.askCustomPatterns()

	default:
		indexes := ParseSelection(choice, len(CommonExcludes))
		if len(indexes) == 0 {
			fmt.Fprintln(p.out, "Invalid input, no exclusions added.")
			return nil, nil
		}

		patterns := make([]string, 0, len(indexes))
		for _, idx := range indexes {
			patterns = append(patterns, CommonExcludes[idx])
		}
		fmt.Fprintf(p.out, "Excluding %d pattern(s).\n", len(patterns))
		return patterns, nil
	}
}

func (p *Prompter) askCustomPatterns() ([]string, error) {
	fmt.Fprintln(p.out, "\nEnter custom patterns to exclude (one per line, empty line to finish):")

	var patterns []string
	for {
		pattern, err := p.ask("  Pattern: ")
		if err != nil {
			return patterns, err
		}

		if pattern == "" {
			return patterns, nil
		}

		patterns = append(patterns, pattern)
		fmt.Fprintf(p.out, "  Added: %s\n", pattern)
	}
}

// ParseSelection turns "1,3,5" or "1 3 5" into zero-based indexes, dropping
// anything unparsable or out of the 1..n range.
func ParseSelection(input string, n int) []int {
	fields := strings.Fields(strings.ReplaceAll(input, ",", " "))

	var out []int
	for _, field := range fields {
		num, err := strconv.Atoi(field)
		if err != nil || num < 1 || num > n {
			continue
		}
		out = append(out, num-1)
	}

	return out
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)

	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	return strings.TrimSpace(p.in.Text()), nil
}

func isYes(answer string) bool {
	switch strings.ToLower(answer) {
	case "yes", "y":
		return true
	default:
		return false
	}
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return abs
}

func pathInside(child, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
