package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crowdsecurity/tailf/pkg/tailf"
)

func TestPrinterPlain(t *testing.T) {
	var buf bytes.Buffer

	p := newPrinter(&buf, false)
	p.OnLine(tailf.Event{Text: "\nseed", Level: "ERROR"})
	p.OnLine(tailf.Event{Text: "live\n", Level: "INFO"})

	assert.Equal(t, "\nseedlive\n", buf.String())
}

func TestPrinterColors(t *testing.T) {
	tests := []struct {
		name  string
		event tailf.Event
		want  string
	}{
		{
			name:  "error is red",
			event: tailf.Event{Text: "boom\n", Level: "ERROR"},
			want:  "\x1b[31mboom\x1b[0m\n",
		},
		{
			name:  "warning is yellow, case insensitive",
			event: tailf.Event{Text: "\ncareful", Level: "warn"},
			want:  "\n\x1b[33mcareful\x1b[0m",
		},
		{
			name:  "debug is faint",
			event: tailf.Event{Text: "noise\n", Level: "DEBUG"},
			want:  "\x1b[2mnoise\x1b[0m\n",
		},
		{
			name:  "info is not colored",
			event: tailf.Event{Text: "hello\n", Level: "INFO"},
			want:  "hello\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			newPrinter(&buf, true).OnLine(tc.event)
			assert.Equal(t, tc.want, buf.String())
		})
	}
}
