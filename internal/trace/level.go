package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // keep a ring, dump it on panic
	LevelPhase               // check run and directory spans
	LevelDetail              // plus every chapter file and its stages
	LevelDebug               // plus single commands and arguments
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// deepest scope written at each level; LevelError writes nothing live
var levelScopes = [...]Scope{0, 0, ScopePass, ScopeFile, ScopeNode}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the names printed by String, case-insensitively.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope are written at this level.
// Heartbeats are not scoped and always pass.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelScopes) {
		return false
	}
	return scope != 0 && scope <= levelScopes[l]
}

func (l Level) accepts(ev *Event) bool {
	return ev.Kind == KindHeartbeat || l.ShouldEmit(ev.Scope)
}
