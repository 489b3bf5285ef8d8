package tailf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"gopkg.in/tomb.v2"

	"github.com/crowdsecurity/tailf/pkg/metrics"
)

const lineSeparator = "\n"

// Session follows one file. Read state (offset, carry-over, current level)
// belongs to the poller goroutine once Start has returned; the subscriber
// list is the only thing shared with other goroutines.
type Session struct {
	config   Config
	logger   *log.Entry
	pipeline *pipeline

	lastKnownLength int64
	assembler       lineAssembler

	tomb  *tomb.Tomb
	polls chan chan struct{}
	state atomic.Int32

	// serializes Start and Stop
	lifecycle sync.Mutex

	subsMu sync.RWMutex
	subs   []*subscription
}

// New validates the configuration, compiles the patterns and records the
// current length of the file, which must exist.
func New(cfg Config, logger *log.Entry) (*Session, error) {
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.WithField("file", cfg.Filename)
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return nil, err
	}

	fi, err := statFile(cfg.Filename)
	if err != nil {
		return nil, err
	}

	s := &Session{
		config:          cfg,
		logger:          logger,
		pipeline:        p,
		lastKnownLength: fi.Size(),
		tomb:            &tomb.Tomb{},
		polls:           make(chan chan struct{}),
	}

	logger.Debugf("session created (size: %d, seed lines: %d, filter: %q, level regex: %q, engine: %s)",
		s.lastKnownLength, cfg.SeedLines, cfg.LineFilter, cfg.LevelPattern, cfg.RegexEngine)

	return s, nil
}

func statFile(filename string) (os.FileInfo, error) {
	fi, err := os.Stat(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}

		return nil, fmt.Errorf("could not stat file %s: %w", filename, err)
	}

	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", filename)
	}

	return fi, nil
}

func (s *Session) Filename() string {
	return s.config.Filename
}

func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) setState(st State) {
	s.state.Store(int32(st))
}

// Subscribe attaches sub to the event stream and returns a function that
// detaches it. Events produced while nobody is subscribed are dropped.
func (s *Session) Subscribe(sub Subscriber) func() {
	entry := &subscription{sub: sub}

	s.subsMu.Lock()
	s.subs = append(s.subs, entry)
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()

		s.subs = slices.DeleteFunc(s.subs, func(e *subscription) bool { return e == entry })
	}
}

func (s *Session) dispatch(ev Event) {
	s.subsMu.RLock()
	subs := slices.Clone(s.subs)
	s.subsMu.RUnlock()

	if len(subs) == 0 {
		return
	}

	metrics.TailfLinesEmitted.With(prometheus.Labels{"source": s.config.Filename, "level": ev.Level}).Inc()

	for _, e := range subs {
		e.sub.OnLine(ev)
	}
}

// Start checks the file is still there and readable, emits the seed lines on
// the calling goroutine, then launches the poller and returns.
func (s *Session) Start() error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if s.State() != StateCreated {
		return ErrAlreadyStarted
	}

	if _, err := statFile(s.config.Filename); err != nil {
		return err
	}

	if err := checkAccess(s.config.Filename); err != nil {
		return fmt.Errorf("unable to read %s: %w", s.config.Filename, err)
	}

	lines, err := s.seedLines(s.lastKnownLength, s.config.SeedLines)
	if err != nil {
		return err
	}

	s.emitSeed(lines)

	s.logger.Infof("starting tail (offset: %d, poll interval: %s)", s.lastKnownLength, s.config.PollInterval)

	s.setState(StateRunning)
	s.tomb.Go(s.pollLoop)

	return nil
}

// Stop requests the poller to exit and waits for it. No event is delivered
// once Stop has returned. Calling Stop again, or before Start, is a no-op.
func (s *Session) Stop() error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	switch s.State() {
	case StateCreated, StateStopped:
		s.setState(StateStopped)
		return nil
	case StateRunning, StateStopRequested:
	}

	s.setState(StateStopRequested)
	s.tomb.Kill(nil)
	err := s.tomb.Wait()
	s.setState(StateStopped)

	s.logger.Info("tail stopped")

	return err
}

func (*Session) GetMetrics() []prometheus.Collector {
	return []prometheus.Collector{
		metrics.TailfLinesRead,
		metrics.TailfLinesEmitted,
		metrics.TailfTruncations,
		metrics.TailfReadErrors,
	}
}
