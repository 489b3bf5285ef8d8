package tailf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime/debug"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/crowdsecurity/tailf/pkg/metrics"
)

// pollLoop runs until the tomb dies. A panic (usually from a subscriber) is
// logged with its stack and ends the loop with ErrPollerPanic, which Stop
// returns.
func (s *Session) pollLoop() (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("poller crashed: %v\n%s", r, debug.Stack())
			err = fmt.Errorf("%w: %v", ErrPollerPanic, r)
		}
	}()

	s.logger.Debug("-> start polling")

	var tick <-chan time.Time

	// a negative interval leaves tick nil: polls only come from forcePoll
	if s.config.PollInterval > 0 {
		ticker := time.NewTicker(s.config.PollInterval)
		defer ticker.Stop()

		tick = ticker.C
	}

	for {
		select {
		case <-s.tomb.Dying():
			s.logger.Debug("poller stopping")
			return nil
		case <-tick:
			s.poll()
		case done := <-s.polls:
			s.poll()
			close(done)
		}
	}
}

// forcePoll runs one poll cycle on the poller goroutine and waits for it,
// as if the ticker had fired. It returns false if the session is stopping
// or the poller died during the cycle.
func (s *Session) forcePoll() bool {
	done := make(chan struct{})

	select {
	case s.polls <- done:
	case <-s.tomb.Dying():
		return false
	}

	select {
	case <-done:
		return true
	case <-s.tomb.Dying():
		return false
	}
}

// poll is one tick: stat, compare, read the delta.
func (s *Session) poll() {
	fi, err := os.Stat(s.config.Filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Trace("file does not exist, skipping tick")
			return
		}

		s.logger.Warningf("could not stat file: %s", err)
		metrics.TailfReadErrors.With(prometheus.Labels{"source": s.config.Filename}).Inc()

		return
	}

	size := fi.Size()
	if size == s.lastKnownLength {
		return
	}

	if _, err := s.readDelta(size); err != nil {
		s.logger.Warningf("skipping tick: %s", err)
		metrics.TailfReadErrors.With(prometheus.Labels{"source": s.config.Filename}).Inc()
	}

	s.lastKnownLength = size
}
