package output

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ksk1130/tsvloggen/internal/catalog"
	"github.com/ksk1130/tsvloggen/internal/model"
)

const bytesPerMB = 1024 * 1024

// Renderer reports a run to the user. It observes the write loop and
// renders the final summary.
type Renderer interface {
	Start(path string, targetBytes int64) error
	OnLine(line model.Line, size int)
	OnProgress(p model.Progress)
	Summary(s model.Summary) error
}

// ---------------------------------------------------------------------------
// Text Renderer (colorized terminal output)
// ---------------------------------------------------------------------------

var (
	styleInfo  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")) // gray
	styleDebug = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))            // yellow
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red bold
	styleFatal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("196")).
			Bold(true) // white on red
	styleService = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Faint(true) // cyan
	styleDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)  // green
)

// levelRank orders severities from least to most severe.
var levelRank = map[string]int{"DEBUG": 0, "INFO": 1, "WARN": 2, "ERROR": 3, "FATAL": 4}

// TextRenderer prints progress and the summary as human-readable text.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer returns a Renderer that writes colorized text to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) Start(path string, targetBytes int64) error {
	_, err := fmt.Fprintf(r.w, "Generating: %s (target: ~%dMB)\n", path, targetBytes/bytesPerMB)
	return err
}

func (r *TextRenderer) OnLine(model.Line, int) {}

func (r *TextRenderer) OnProgress(p model.Progress) {
	fmt.Fprintf(r.w, "  %s lines generated (%.1fMB / %dMB)\n",
		groupDigits(p.Lines), megabytes(p.Bytes), p.TargetBytes/bytesPerMB)
}

func (r *TextRenderer) Summary(s model.Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", styleDone.Render("Done!"))
	fmt.Fprintf(&b, "  File:     %s\n", s.Path)
	fmt.Fprintf(&b, "  Lines:    %s\n", groupDigits(s.Lines))
	fmt.Fprintf(&b, "  Size:     %.2fMB\n", megabytes(s.Bytes))
	fmt.Fprintf(&b, "  Seed:     %d\n", s.Seed)
	fmt.Fprintf(&b, "  Checksum: %s\n", s.Checksum)
	fmt.Fprintf(&b, "  Elapsed:  %s (%s lines/s)\n", s.Elapsed, groupDigits(int64(s.LinesPerSec)))

	if len(s.LevelCounts) > 0 {
		b.WriteString("  Levels:\n")
		for _, level := range SortedLevels(s.LevelCounts) {
			fmt.Fprintf(&b, "    %s %s\n", styleLevelTag(level), groupDigits(s.LevelCounts[level]))
		}
	}
	if len(s.ServiceCounts) > 0 {
		b.WriteString("  Services:\n")
		for _, svc := range SortedByCount(s.ServiceCounts) {
			fmt.Fprintf(&b, "    %-20s %s\n", svc, groupDigits(s.ServiceCounts[svc]))
		}
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

// Templates prints the catalog, one template per line.
func (r *TextRenderer) Templates(templates []*catalog.Template) error {
	for i, t := range templates {
		_, err := fmt.Fprintf(r.w, "%2d %s %s %s\n",
			i+1, styleLevelTag(t.Level), styleService.Render(fmt.Sprintf("%-20s", t.Service)),
			strings.Join(t.Placeholders(), ","))
		if err != nil {
			return err
		}
	}
	return nil
}

func styleLevelTag(level string) string {
	padded := fmt.Sprintf("%-5s", level)
	switch level {
	case "DEBUG":
		return styleDebug.Render(padded)
	case "WARN":
		return styleWarn.Render(padded)
	case "ERROR":
		return styleError.Render(padded)
	case "FATAL":
		return styleFatal.Render(padded)
	default:
		return styleInfo.Render(padded)
	}
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// JSONRenderer prints only the summary, as a single JSON object.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer that writes the summary as JSON to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(w)}
}

func (r *JSONRenderer) Start(string, int64) error { return nil }

func (r *JSONRenderer) OnLine(model.Line, int) {}

func (r *JSONRenderer) OnProgress(model.Progress) {}

func (r *JSONRenderer) Summary(s model.Summary) error {
	return r.enc.Encode(s)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// SortedLevels returns the keys of counts ordered by severity. Unknown
// levels sort after FATAL, alphabetically.
func SortedLevels(counts map[string]int64) []string {
	levels := maps.Keys(counts)
	slices.SortFunc(levels, func(a, b string) int {
		ra, oka := levelRank[a]
		rb, okb := levelRank[b]
		switch {
		case oka && okb:
			return cmp.Compare(ra, rb)
		case oka:
			return -1
		case okb:
			return 1
		}
		return strings.Compare(a, b)
	})
	return levels
}

// SortedByCount returns the keys of counts by descending count, then name.
func SortedByCount(counts map[string]int64) []string {
	keys := maps.Keys(counts)
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return keys
}

func megabytes(n int64) float64 {
	return float64(n) / bytesPerMB
}

// groupDigits formats n with comma thousands separators.
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
