package tailf

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/crowdsecurity/tailf/pkg/metrics"
)

// lineRing keeps the last len(lines) lines pushed into it.
type lineRing struct {
	lines []string
	next  int
	count int
}

func newLineRing(size int) *lineRing {
	return &lineRing{lines: make([]string, size)}
}

func (r *lineRing) push(line string) {
	if len(r.lines) == 0 {
		return
	}

	r.lines[r.next] = line
	r.next = (r.next + 1) % len(r.lines)

	if r.count < len(r.lines) {
		r.count++
	}
}

// ordered returns the retained lines, oldest first.
func (r *lineRing) ordered() []string {
	out := make([]string, r.count)

	if r.count < len(r.lines) {
		copy(out, r.lines[:r.count])
		return out
	}

	for i := range r.count {
		out[i] = r.lines[(r.next+i)%len(r.lines)]
	}

	return out
}

// maxSeedLineSize caps a single line while seeding.
const maxSeedLineSize = 64 * 1024 * 1024

// scanLines is bufio.ScanLines for "\n", "\r\n" and bare "\r". Unlike the
// live assembler it keeps empty lines: they count toward the seed window.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}

		switch {
		case i+1 < len(data) && data[i+1] == '\n':
			return i + 2, data[:i], nil
		case i+1 < len(data) || atEOF:
			return i + 1, data[:i], nil
		}

		// a lone '\r' at the end of the buffer may be the start of CRLF
		return 0, nil, nil
	}

	if atEOF {
		return len(data), data, nil
	}

	return 0, nil, nil
}

// seedLines scans the first limit bytes of the file and returns the last n
// lines accepted by the filter.
func (s *Session) seedLines(limit int64, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	fd, err := os.Open(s.config.Filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}

		return nil, fmt.Errorf("could not open %s: %w", s.config.Filename, err)
	}
	defer fd.Close()

	ring := newLineRing(n)

	scanner := bufio.NewScanner(io.LimitReader(fd, limit))
	scanner.Buffer(make([]byte, 0, readChunkSize), maxSeedLineSize)
	scanner.Split(scanLines)

	for scanner.Scan() {
		line := scanner.Text()

		metrics.TailfLinesRead.With(prometheus.Labels{"source": s.config.Filename}).Inc()

		if s.pipeline.keep(line) {
			ring.push(line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", s.config.Filename, err)
	}

	return ring.ordered(), nil
}

func (s *Session) emitSeed(lines []string) {
	for _, line := range lines {
		level := s.pipeline.observe(line)
		s.dispatch(Event{Text: lineSeparator + line, Level: level})
	}
}
