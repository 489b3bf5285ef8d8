package tailf

import (
	"fmt"
	"regexp"

	"github.com/wasilibs/go-re2"
)

// matcher is the subset shared by regexp.Regexp and re2.Regexp.
type matcher interface {
	MatchString(s string) bool
	FindStringSubmatch(s string) []string
	SubexpNames() []string
	String() string
}

var (
	_ matcher = (*regexp.Regexp)(nil)
	_ matcher = (*re2.Regexp)(nil)
)

func compileMatcher(engine string, expr string) (matcher, error) {
	switch engine {
	case RegexEngineRE2:
		re, err := re2.Compile(expr)
		if err != nil {
			return nil, err
		}

		return re, nil
	case RegexEngineGo, "":
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}

		return re, nil
	default:
		return nil, fmt.Errorf("unknown regex engine %q", engine)
	}
}

// subexpIndex returns the index of the named group, or -1.
func subexpIndex(m matcher, name string) int {
	for i, n := range m.SubexpNames() {
		if i > 0 && n == name {
			return i
		}
	}

	return -1
}
