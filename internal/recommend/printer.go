package recommend

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer renders result lists to stdout and status text to stderr.
type Printer struct {
	quiet      bool
	json       bool
	columns    int
	titleWidth int

	headerStyle lipgloss.Style
	scoreStyle  lipgloss.Style
	viewsStyle  lipgloss.Style
	urlStyle    lipgloss.Style
}

func newPrinter(opts Options) *Printer {
	columns := terminalColumns()
	if columns <= 0 {
		columns = 100
	}

	titleWidth := columns - 50
	if titleWidth < 24 {
		titleWidth = 24
	}
	if titleWidth > 72 {
		titleWidth = 72
	}

	return &Printer{
		quiet:       opts.Quiet,
		json:        opts.JSON,
		columns:     columns,
		titleWidth:  titleWidth,
		headerStyle: lipgloss.NewStyle().Bold(true),
		scoreStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		viewsStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		urlStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (p *Printer) Info(text string) {
	if p.quiet {
		return
	}
	fmt.Fprintln(os.Stderr, text)
}

// Fail writes a failure line to stderr, even in quiet mode, and marks the
// error as reported. In JSON mode nothing is printed and the error comes
// back unmarked so the caller can emit a structured error record.
func (p *Printer) Fail(stage string, err error) error {
	if p.json {
		return err
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", stage, err)
	return markReported(err)
}

func (p *Printer) Header(text string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(os.Stdout, "\n%s\n", p.headerStyle.Render(text))
}

// Track prints one row of the popularity-ordered list.
func (p *Printer) Track(index int, t Track) {
	if p.quiet {
		return
	}
	fmt.Fprintf(os.Stdout, "%2d. %s | %s views | %s\n",
		index,
		truncateText(trackLabel(t), p.titleWidth),
		p.viewsStyle.Render(humanCount(t.Views)),
		p.urlStyle.Render(t.URL),
	)
}

// Recommendation prints one row of the ranked list, score first.
func (p *Printer) Recommendation(index int, r Recommendation) {
	if p.quiet {
		return
	}
	fmt.Fprintf(os.Stdout, "%2d. %s | score %s | %s views | %s\n",
		index,
		truncateText(trackLabel(r.Track), p.titleWidth),
		p.scoreStyle.Render(strconv.FormatFloat(r.DisplayScore(), 'f', 3, 64)),
		p.viewsStyle.Render(humanCount(r.Views)),
		p.urlStyle.Render(r.URL),
	)
}

func trackLabel(t Track) string {
	if t.Artist == "" {
		return t.SongTitle
	}
	return t.SongTitle + " - " + t.Artist
}

// humanCount formats an integer with comma grouping ("12,345,678").
func humanCount(n int64) string {
	digits := strconv.FormatInt(n, 10)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}

func truncateText(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	if max <= 3 {
		return text[:max]
	}
	return text[:max-3] + "..."
}

func terminalColumns() int {
	if columns := os.Getenv("COLUMNS"); columns != "" {
		if val, err := strconv.Atoi(columns); err == nil && val > 0 {
			return val
		}
	}
	return 0
}
