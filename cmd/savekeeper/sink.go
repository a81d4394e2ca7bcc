package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/bft-labs/savekeeper/internal/domain"
	"github.com/bft-labs/savekeeper/internal/ports"
)

// printer serialises terminal output between the console and the sink.
type printer struct {
	mu  sync.Mutex
	out io.Writer

	ok    *color.Color
	bad   *color.Color
	faint *color.Color
	info  *color.Color
}

func newPrinter(out io.Writer) *printer {
	return &printer{
		out:   out,
		ok:    color.New(color.FgGreen),
		bad:   color.New(color.FgRed, color.Bold),
		faint: color.New(color.Faint),
		info:  color.New(color.FgCyan),
	}
}

func (p *printer) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

func (p *printer) colored(c *color.Color, format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c.Fprintf(p.out, format, args...)
}

// status prints rec coloured by severity.
func (p *printer) status(rec domain.StatusRecord) {
	switch {
	case rec.IsError:
		p.colored(p.bad, "%s\n", rec.Message)
	case rec.IsReady():
		p.colored(p.faint, "%s\n", rec.Message)
	default:
		p.colored(p.ok, "%s\n", rec.Message)
	}
}

// terminalSink renders orchestrator events on a terminal.
type terminalSink struct {
	p *printer

	mu        sync.Mutex
	countdown string
}

func newTerminalSink(p *printer) *terminalSink {
	return &terminalSink{p: p}
}

func (s *terminalSink) OnStatus(rec domain.StatusRecord) {
	s.p.status(rec)
}

// OnAttention rings the terminal bell.
func (s *terminalSink) OnAttention(string) {
	s.p.printf("\a")
}

// OnCountdown only prints when the countdown starts or stops; the current
// value is shown by the status command.
func (s *terminalSink) OnCountdown(text string) {
	s.mu.Lock()
	prev := s.countdown
	s.countdown = text
	s.mu.Unlock()

	switch {
	case prev == "" && text != "":
		s.p.colored(s.p.info, "next auto-save in %s\n", text)
	case prev != "" && text == "":
		s.p.colored(s.p.faint, "auto-save paused\n")
	}
}

func (s *terminalSink) OnArchiveChanged(names []string) {
	s.p.colored(s.p.faint, "archive: %d save(s)\n", len(names))
}

func (s *terminalSink) OnDebug(entry string) {
	s.p.colored(s.p.faint, "debug %s\n", entry)
}

var _ ports.EventSink = (*terminalSink)(nil)
