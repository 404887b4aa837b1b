package postscmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/goliatone/go-posts/internal/markdown"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// Format selects how a Printer writes results.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var ErrUnknownFormat = errors.New("posts printer: unknown output format")

const (
	colorAccent = "154"
	colorDim    = "245"
)

// Printer writes command results to an io.Writer.
type Printer struct {
	out    io.Writer
	format Format
	header lipgloss.Style
	dim    lipgloss.Style
}

// PrinterOption customises a Printer.
type PrinterOption func(*Printer)

// WithNoColor disables text styling even on a terminal.
func WithNoColor(noColor bool) PrinterOption {
	return func(p *Printer) {
		if noColor {
			p.header = lipgloss.NewStyle()
			p.dim = lipgloss.NewStyle()
		}
	}
}

// NewPrinter returns a printer for format. An empty format means text. Text
// output is styled only when out is a terminal.
func NewPrinter(out io.Writer, format string, opts ...PrinterOption) (*Printer, error) {
	if out == nil {
		out = io.Discard
	}
	f := Format(strings.ToLower(strings.TrimSpace(format)))
	switch f {
	case "":
		f = FormatText
	case FormatText, FormatJSON:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	p := &Printer{
		out:    out,
		format: f,
		header: lipgloss.NewStyle(),
		dim:    lipgloss.NewStyle(),
	}
	if isTerminal(out) {
		renderer := lipgloss.NewRenderer(out)
		p.header = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent))
		p.dim = renderer.NewStyle().Foreground(lipgloss.Color(colorDim))
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// Format reports the output format.
func (p *Printer) Format() Format { return p.format }

// PrintSummaries writes a post listing.
func (p *Printer) PrintSummaries(summaries []interfaces.PostSummary) error {
	if p.format == FormatJSON {
		if summaries == nil {
			summaries = []interfaces.PostSummary{}
		}
		return p.writeJSON(summaries)
	}

	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSLUG\tTITLE\tREAD TIME\tHREF")
	for _, summary := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			orDash(summary.Date),
			summary.Slug,
			orDash(summary.Title),
			summary.ReadTime,
			p.dim.Render(summary.Href),
		)
	}
	return tw.Flush()
}

// PrintSlugs writes one slug per line, or a JSON array.
func (p *Printer) PrintSlugs(slugs []string) error {
	if p.format == FormatJSON {
		if slugs == nil {
			slugs = []string{}
		}
		return p.writeJSON(slugs)
	}
	for _, slug := range slugs {
		if _, err := fmt.Fprintln(p.out, slug); err != nil {
			return err
		}
	}
	return nil
}

type detailView struct {
	Slug     string                  `json:"slug"`
	Path     string                  `json:"path,omitempty"`
	Metadata interfaces.PostMetadata `json:"metadata"`
	Body     string                  `json:"body"`
}

// PrintDetail writes the metadata and Markdown body of a post.
func (p *Printer) PrintDetail(detail *interfaces.PostDetail[*markdown.Content]) error {
	if detail == nil {
		return errors.New("posts printer: detail is nil")
	}
	view := detailView{
		Slug:     detail.Slug,
		Metadata: detail.Metadata,
	}
	if detail.Content != nil {
		view.Path = detail.Content.Path
		view.Body = string(detail.Content.Body)
	}
	if p.format == FormatJSON {
		return p.writeJSON(view)
	}

	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"slug", view.Slug},
		{"path", view.Path},
		{"title", view.Metadata.Title},
		{"description", view.Metadata.Description},
		{"date", view.Metadata.Date},
		{"readTime", view.Metadata.ReadTime},
		{"image", view.Metadata.Image},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", p.header.Render(row[0]+":"), row[1])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if view.Body == "" {
		return nil
	}
	_, err := fmt.Fprintf(p.out, "\n%s", ensureNewline(view.Body))
	return err
}

// PrintHTML writes rendered HTML. JSON output wraps it with the slug.
func (p *Printer) PrintHTML(slug string, html []byte) error {
	if p.format == FormatJSON {
		return p.writeJSON(map[string]string{
			"slug": slug,
			"html": string(html),
		})
	}
	_, err := io.WriteString(p.out, ensureNewline(string(html)))
	return err
}

func (p *Printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func ensureNewline(value string) string {
	if value == "" || strings.HasSuffix(value, "\n") {
		return value
	}
	return value + "\n"
}
