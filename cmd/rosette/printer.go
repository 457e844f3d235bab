package main

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/gogpu/rosette/studio"
)

// printer writes progress to the terminal, colored when it supports it.
type printer struct {
	out *termenv.Output
}

func newPrinter(w io.Writer) *printer {
	return &printer{out: termenv.NewOutput(w)}
}

func (p *printer) rendered(path string, s *studio.Studio) {
	sz := s.Layout().Surface()
	head := p.out.String(fmt.Sprintf("%s %dx%d", string(s.Mode()), sz.Width, sz.Height)).
		Foreground(p.out.Color("#5fafff")).Bold()
	fmt.Fprintf(p.out, "%s -> %s\n", head, path)
	for _, line := range s.StatsLines() {
		fmt.Fprintf(p.out, "  %s\n", p.out.String(line).Faint())
	}
}

func (p *printer) watching(path string) {
	fmt.Fprintf(p.out, "%s %s (Ctrl+C to stop)\n",
		p.out.String("watching").Foreground(p.out.Color("#87d787")), path)
}

func (p *printer) failed(err error) {
	fmt.Fprintf(p.out, "%s %v\n",
		p.out.String("error").Foreground(p.out.Color("#ff5f5f")).Bold(), err)
}
