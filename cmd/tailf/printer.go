package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/crowdsecurity/tailf/pkg/tailf"
)

// printer writes events to the console, colored by their level.
type printer struct {
	mu     sync.Mutex
	out    io.Writer
	colors map[string]*color.Color
}

func newPrinter(out io.Writer, useColor bool) *printer {
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	faint := color.New(color.Faint)

	for _, c := range []*color.Color{red, yellow, faint} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return &printer{
		out: out,
		colors: map[string]*color.Color{
			"CRITICAL": red,
			"FATAL":    red,
			"ERROR":    red,
			"ERR":      red,
			"WARNING":  yellow,
			"WARN":     yellow,
			"DEBUG":    faint,
			"TRACE":    faint,
		},
	}
}

func (p *printer) OnLine(ev tailf.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.colors[strings.ToUpper(ev.Level)]
	if !ok {
		fmt.Fprint(p.out, ev.Text)
		return
	}

	// keep the separator out of the escape sequence
	text := ev.Text
	lead, trail := "", ""

	if strings.HasPrefix(text, "\n") {
		lead, text = "\n", text[1:]
	}

	if strings.HasSuffix(text, "\n") {
		text, trail = text[:len(text)-1], "\n"
	}

	fmt.Fprint(p.out, lead, c.Sprint(text), trail)
}
