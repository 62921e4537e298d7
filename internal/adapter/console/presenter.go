// Package console renders the ticker display buffer to a terminal.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"news-ticker/internal/domain/model"
	"news-ticker/internal/domain/neterr"
	"news-ticker/internal/domain/ports"
	"news-ticker/internal/timefmt"
)

const (
	clearScreen = "\033[H\033[2J"
	cursorHome  = "\033[H"

	unknownAuthor = "Unknown author"
	unknownDate   = "Date not available"
)

// Options configures a Presenter.
type Options struct {
	Color bool
	Clear bool
	Dates timefmt.Options
}

// Presenter writes the display buffer as a numbered list, newest first.
type Presenter struct {
	out   io.Writer
	opts  Options
	title *color.Color
	meta  *color.Color
	alert *color.Color
	info  *color.Color

	mu       sync.Mutex
	articles []model.Article
	loading  bool
}

var _ ports.Presenter = (*Presenter)(nil)

// New creates a console Presenter writing to out.
func New(out io.Writer, opts Options) *Presenter {
	if opts.Dates.Locale == "" || opts.Dates.Location == nil {
		opts.Dates = timefmt.DefaultOptions()
	}
	p := &Presenter{
		out:   out,
		opts:  opts,
		title: color.New(color.Bold, color.FgHiWhite),
		meta:  color.New(color.FgCyan),
		alert: color.New(color.FgRed, color.Bold),
		info:  color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.title, p.meta, p.alert, p.info} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Loading prints the loading state transitions.
func (p *Presenter) Loading(active bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loading == active {
		return
	}
	p.loading = active
	if active {
		fmt.Fprintln(p.out, p.info.Sprint("Loading editor's picks..."))
		return
	}
	fmt.Fprintln(p.out, p.info.Sprintf("%d stories. Type r to refresh, o <n> to open, q to quit.", len(p.articles)))
}

// Publish renders the full buffer.
func (p *Presenter) Publish(articles []model.Article) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.articles = articles
	p.render()
}

// ScrollToTop moves the cursor back to the newest story when the screen is managed.
func (p *Presenter) ScrollToTop() {
	if !p.opts.Clear {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.out, cursorHome)
}

// Message prints an error message.
func (p *Presenter) Message(category neterr.Category, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, p.alert.Sprintf("! %s", message))
}

func (p *Presenter) render() {
	var b strings.Builder
	if p.opts.Clear {
		b.WriteString(clearScreen)
	}

	b.WriteString(p.title.Sprintf("Top Stories (%d)", len(p.articles)))
	b.WriteString("\n")
	for i, article := range p.articles {
		b.WriteString(p.card(i+1, article))
	}

	fmt.Fprint(p.out, b.String())
}

func (p *Presenter) card(position int, article model.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%2d. %s\n", position, p.title.Sprint(article.Title))
	fmt.Fprintf(&b, "    %s\n", p.meta.Sprint(strings.Join([]string{
		article.SectionName,
		author(article.Fields.Author),
		timefmt.PublishedDate(article.PublishedDate, unknownDate, p.opts.Dates),
	}, " | ")))
	if trail := htmlToText(article.Fields.TrailText); trail != "" {
		fmt.Fprintf(&b, "    %s\n", trail)
	}
	fmt.Fprintf(&b, "    %s\n", article.URL)
	return b.String()
}

func author(name string) string {
	if strings.TrimSpace(name) == "" {
		return unknownAuthor
	}
	return "by " + name
}
