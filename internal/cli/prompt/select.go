// Package prompt provides interactive CLI prompts for choosing documents.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/fmcheck/internal/errors"
	"github.com/thoreinstein/fmcheck/internal/logging"
	"github.com/thoreinstein/fmcheck/pkg/fileutil"
	"github.com/thoreinstein/fmcheck/pkg/frontmatter"
)

// Sentinel errors for document selection.
var (
	ErrNoDocuments        = errors.New("no documents to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// FinderFunc presents paths and returns the chosen indices. preview renders
// the preview pane for the item at index i.
type FinderFunc func(paths []string, preview func(i int) string) ([]int, error)

// Selector handles interactive document selection.
type Selector struct {
	reader io.Reader
	writer io.Writer
	find   FinderFunc
}

// NewSelector creates a Selector on stdin and stdout. When stdin is a
// terminal the fuzzy finder is used, otherwise a numbered prompt.
func NewSelector() *Selector {
	s := &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
	if logging.IsTTY(os.Stdin) {
		s.find = FuzzyFind
	}
	return s
}

// NewSelectorWithIO creates a Selector that uses the numbered prompt on the
// given reader and writer.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// NewSelectorWithFinder creates a Selector backed by find.
func NewSelectorWithFinder(w io.Writer, find FinderFunc) *Selector {
	return &Selector{
		writer: w,
		find:   find,
	}
}

// FuzzyFind runs go-fuzzyfinder in multi-select mode with a preview pane.
func FuzzyFind(paths []string, preview func(i int) string) ([]int, error) {
	return fuzzyfinder.FindMulti(
		paths,
		func(i int) string {
			return paths[i]
		},
		fuzzyfinder.WithHeader("Select documents to check (Tab to mark, Enter to accept)"),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return preview(i)
		}),
	)
}

// SelectDocuments prompts the user to choose among paths. The returned paths
// keep their original order.
//
// Returns:
//   - ErrNoDocuments if the list is empty
//   - The list unchanged if it has one entry (no prompt)
//   - ErrInvalidSelection if the input cannot be parsed or is out of range
//   - ErrSelectionCancelled on abort or EOF (e.g., Ctrl+D)
func (s *Selector) SelectDocuments(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, ErrNoDocuments
	}
	if len(paths) == 1 {
		return paths, nil
	}

	var (
		idx []int
		err error
	)
	if s.find != nil {
		idx, err = s.find(paths, func(i int) string { return Preview(paths[i]) })
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		if err != nil {
			return nil, errors.Wrap(err, "interactive selection failed")
		}
		if len(idx) == 0 {
			return nil, ErrSelectionCancelled
		}
	} else {
		idx, err = s.promptNumbers(paths)
		if err != nil {
			return nil, err
		}
	}

	slices.Sort(idx)
	idx = slices.Compact(idx)

	selected := make([]string, 0, len(idx))
	for _, i := range idx {
		selected = append(selected, paths[i])
	}
	return selected, nil
}

func (s *Selector) promptNumbers(paths []string) ([]int, error) {
	fmt.Fprintf(s.writer, "Found %d documents:\n", len(paths))
	for i, p := range paths {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, p)
	}
	fmt.Fprintf(s.writer, "Select (e.g. 1,3-5) [all]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		if errors.Is(err, io.EOF) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "all") {
		all := make([]int, len(paths))
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	return parseSelection(input, len(paths))
}

// parseSelection parses 1-indexed numbers and ranges such as "1,3-5" into
// 0-indexed positions.
func parseSelection(input string, n int) ([]int, error) {
	var idx []int
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		first, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", part)
		}
		last := first
		if isRange {
			if last, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a range", part)
			}
		}

		if first < 1 || last > n || first > last {
			return nil, errors.Wrapf(ErrInvalidSelection, "%s is out of range [1-%d]", part, n)
		}
		for i := first; i <= last; i++ {
			idx = append(idx, i-1)
		}
	}

	if len(idx) == 0 {
		return nil, errors.Wrapf(ErrInvalidSelection, "%q selects nothing", input)
	}
	return idx, nil
}

// Preview renders the frontmatter block of the document at path.
func Preview(path string) string {
	content, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return fmt.Sprintf("%s\n\n%v", path, err)
	}

	format, block, _, err := frontmatter.Split(content)
	if err != nil {
		return fmt.Sprintf("%s\n\n%v", path, err)
	}
	return fmt.Sprintf("%s\n\nFrontmatter (%s):\n%s", path, format, block)
}
