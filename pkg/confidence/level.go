package confidence

import (
	"fmt"
	"strings"
)

// Level is the trust level a user assigns to a provider. Levels are ordered:
// a higher value means more trust.
type Level int

const (
	LevelNone      Level = 0
	LevelUntrusted Level = 100
	LevelVeryLow   Level = 200
	LevelUnknown   Level = 300
	LevelLow       Level = 400
	LevelModerate  Level = 500
	LevelMedium    Level = 600
	LevelHigh      Level = 700
)

var levelNames = map[Level]string{
	LevelNone:      "NONE",
	LevelUntrusted: "UNTRUSTED",
	LevelVeryLow:   "VERY_LOW",
	LevelUnknown:   "UNKNOWN",
	LevelLow:       "LOW",
	LevelModerate:  "MODERATE",
	LevelMedium:    "MEDIUM",
	LevelHigh:      "HIGH",
}

// AllLevels returns every level in ascending order.
func AllLevels() []Level {
	return []Level{LevelNone, LevelUntrusted, LevelVeryLow, LevelUnknown, LevelLow, LevelModerate, LevelMedium, LevelHigh}
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Name returns the human-readable name of the level.
func (l Level) Name() string {
	switch l {
	case LevelNone:
		return "No provider selected"
	case LevelUntrusted:
		return "Untrusted"
	case LevelVeryLow:
		return "Very Low"
	case LevelUnknown:
		return "Unknown confidence level"
	case LevelLow:
		return "Low"
	case LevelModerate:
		return "Moderate"
	case LevelMedium:
		return "Medium"
	case LevelHigh:
		return "High"
	default:
		return "Unknown confidence level"
	}
}

// MarshalText encodes the level by name so settings files stay readable.
func (l Level) MarshalText() ([]byte, error) {
	name, ok := levelNames[l]
	if !ok {
		return nil, fmt.Errorf("invalid confidence level %d", int(l))
	}
	return []byte(name), nil
}

// UnmarshalText parses a level name, case-insensitively.
func (l *Level) UnmarshalText(text []byte) error {
	want := strings.ToUpper(strings.TrimSpace(string(text)))
	for level, name := range levelNames {
		if name == want {
			*l = level
			return nil
		}
	}
	return fmt.Errorf("invalid confidence level %q", string(text))
}
