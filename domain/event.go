// Package domain contains core concepts of the symposium portal.
// This file defines Event entities and related invariants.
// No storage, network, or UI logic should be added here.
package domain

import (
	"strings"
	"time"
)

type EventID string

type Category string

const (
	Technical    Category = "technical"
	NonTechnical Category = "non_technical"
)

func (c Category) Valid() bool {
	return c == Technical || c == NonTechnical
}

// Event is externally authored; the portal core only reads it.
type Event struct {
	ID          EventID   `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Rules       string    `json:"rules"`
	Category    Category  `json:"category"`
	IconName    string    `json:"icon_name"`
	AccentColor string    `json:"accent_color"`
	CreatedAt   time.Time `json:"created_at"`
}

// RuleLines splits the newline-delimited rules text into an ordered list of
// non-empty trimmed directives. Leading bullet markers ("•" or "-") are
// stripped so callers render their own list style.
func (e Event) RuleLines() []string {
	var lines []string
	for _, raw := range strings.Split(e.Rules, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(strings.TrimLeft(line, "•-"))
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// IconRef is a closed reference to an event glyph: either a name the icon set
// is known to carry, or the fallback. Rendering happens at the presentation
// boundary; the core never touches glyph data.
type IconRef struct {
	Name  string
	Known bool
}

// knownIcons lists the symbolic names the bundled icon set resolves.
var knownIcons = map[string]struct{}{
	"Code2":     {},
	"Cpu":       {},
	"Bug":       {},
	"Lightbulb": {},
	"Gamepad2":  {},
	"Music":     {},
	"Palette":   {},
	"Camera":    {},
	"Mic":       {},
	"Trophy":    {},
}

func (e Event) Icon() IconRef {
	if _, ok := knownIcons[e.IconName]; ok {
		return IconRef{Name: e.IconName, Known: true}
	}
	return IconRef{}
}
