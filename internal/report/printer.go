package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Printer renders findings for a terminal
type Printer struct {
	w       io.Writer
	banner  *color.Color
	errHead *color.Color
	warn    *color.Color
}

// NewPrinter creates a printer. Colors are emitted only when useColor is set.
func NewPrinter(w io.Writer, useColor bool) *Printer {
	p := &Printer{
		w:       w,
		banner:  color.New(color.FgWhite, color.BgBlue, color.Bold),
		errHead: color.New(color.FgRed, color.BgBlack, color.Bold),
		warn:    color.New(color.FgYellow, color.BgBlack, color.Bold),
	}
	for _, c := range []*color.Color{p.banner, p.errHead, p.warn} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Banner prints a section title
func (p *Printer) Banner(title string) {
	fmt.Fprintf(p.w, "%s\n\n", p.banner.Sprintf(" %s ", title))
}

// Failure prints one finding with its context
func (p *Printer) Failure(f *Failure) {
	head := p.warn
	if f.Error {
		head = p.errHead
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", head.Sprint(f.Head()+":"), f.Message)
	for _, e := range f.Chain() {
		fmt.Fprintf(&b, "\n    in %s", e)
	}
	fmt.Fprintf(&b, "\n    in %s", f.Class)
	fmt.Fprintf(&b, "\n    in %s", f.PackageText())
	fmt.Fprintf(&b, "\n    at line %s", f.Location)
	if f.Blame != nil {
		fmt.Fprintf(&b, "\n    last modified by %s in %s", f.Blame.Author, f.Blame.Commit)
	}
	b.WriteString("\n\n")

	io.WriteString(p.w, b.String())
}

// Failures prints a titled section of findings in signature order
func (p *Printer) Failures(title string, s *Store) {
	if s.Len() == 0 {
		return
	}
	p.Banner(title)
	for _, f := range s.Sorted() {
		p.Failure(f)
	}
}

// Noticed prints changed class names followed by removed ones
func (p *Printer) Noticed(changed, removed Noticed) {
	if len(changed) == 0 && len(removed) == 0 {
		return
	}
	p.Banner("API changes noticed")
	for _, name := range changed.Names() {
		fmt.Fprintln(p.w, name)
	}
	for _, name := range removed.Names() {
		fmt.Fprintf(p.w, "%s removed API\n", name)
	}
	fmt.Fprintln(p.w)
}
