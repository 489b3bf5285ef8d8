package tailf

import (
	"fmt"
)

// pipeline holds the two optional line stages. currentLevel is only touched
// by whoever is producing lines: the caller of Start while seeding, the
// poller afterwards.
type pipeline struct {
	filter       matcher
	level        matcher
	levelIdx     int
	currentLevel string
}

func newPipeline(cfg Config) (*pipeline, error) {
	p := &pipeline{
		currentLevel: cfg.DefaultLevel,
		levelIdx:     -1,
	}

	if cfg.LineFilter != "" {
		re, err := compileMatcher(cfg.RegexEngine, cfg.LineFilter)
		if err != nil {
			return nil, fmt.Errorf("could not compile line filter %q: %w", cfg.LineFilter, err)
		}

		p.filter = re
	}

	if cfg.LevelPattern != "" {
		re, err := compileMatcher(cfg.RegexEngine, cfg.LevelPattern)
		if err != nil {
			return nil, fmt.Errorf("could not compile level regex %q: %w", cfg.LevelPattern, err)
		}

		p.levelIdx = subexpIndex(re, levelGroup)
		if p.levelIdx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingLevelGroup, cfg.LevelPattern)
		}

		p.level = re
	}

	return p, nil
}

// keep reports whether the line passes the filter. No filter keeps everything.
func (p *pipeline) keep(line string) bool {
	if p.filter == nil {
		return true
	}

	return p.filter.MatchString(line)
}

// observe updates the sticky level from line and returns the level to attach
// to it.
func (p *pipeline) observe(line string) string {
	if p.level == nil {
		return p.currentLevel
	}

	groups := p.level.FindStringSubmatch(line)
	if groups == nil {
		return p.currentLevel
	}

	p.currentLevel = groups[p.levelIdx]

	return p.currentLevel
}
