package tailf

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/crowdsecurity/tailf/pkg/metrics"
)

const readChunkSize = 4096

// lineAssembler splits a byte stream on '\n' and '\r'. Bytes after the last
// separator stay in carry until a later feed terminates them.
type lineAssembler struct {
	carry []byte
}

func (a *lineAssembler) feed(chunk []byte, emit func(line string)) {
	for _, b := range chunk {
		if b != '\n' && b != '\r' {
			a.carry = append(a.carry, b)
			continue
		}

		// empty lines, and the gap inside CRLF, produce nothing
		if len(a.carry) == 0 {
			continue
		}

		line := string(a.carry)
		a.carry = a.carry[:0]

		emit(line)
	}
}

func (a *lineAssembler) reset() {
	a.carry = a.carry[:0]
}

// feedFrom reads r to EOF in fixed-size chunks.
func (a *lineAssembler) feedFrom(r io.Reader, emit func(line string)) error {
	buf := make([]byte, readChunkSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			a.feed(buf[:n], emit)
		}

		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}
	}
}

// readDelta reads [lastKnownLength, size) from the file, or [0, size) when
// the file shrank, and returns the offset it started from.
func (s *Session) readDelta(size int64) (int64, error) {
	start := s.lastKnownLength

	if size < start {
		s.logger.Infof("file truncated (%d -> %d bytes), reading from the start", start, size)
		metrics.TailfTruncations.With(prometheus.Labels{"source": s.config.Filename}).Inc()

		start = 0
		// the fragment belonged to the replaced content
		s.assembler.reset()
	}

	fd, err := os.Open(s.config.Filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("file vanished before it could be opened")
			return start, nil
		}

		return start, fmt.Errorf("could not open %s: %w", s.config.Filename, err)
	}
	defer fd.Close()

	if _, err := fd.Seek(start, io.SeekStart); err != nil {
		return start, fmt.Errorf("could not seek %s to %d: %w", s.config.Filename, start, err)
	}

	s.logger.Tracef("reading bytes [%d, %d)", start, size)

	if err := s.assembler.feedFrom(io.LimitReader(fd, size-start), s.emitLive); err != nil {
		return start, fmt.Errorf("error reading %s: %w", s.config.Filename, err)
	}

	return start, nil
}

func (s *Session) emitLive(line string) {
	metrics.TailfLinesRead.With(prometheus.Labels{"source": s.config.Filename}).Inc()

	if !s.pipeline.keep(line) {
		return
	}

	level := s.pipeline.observe(line)
	s.dispatch(Event{Text: line + lineSeparator, Level: level})
}
