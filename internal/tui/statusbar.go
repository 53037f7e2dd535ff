package tui

import (
	"fmt"
	"strings"
)

// StatusBar renders the persistent top bar with dataset sizes, the active
// hazardous filter, and the current match count.
type StatusBar struct {
	NEOCount      int
	ApproachCount int
	Matches       int
	Hazardous     *bool // nil when the hazardous filter is unset
	Width         int
}

// View renders the status bar as a single line.
func (s StatusBar) View() string {
	hazard := "any"
	switch {
	case s.Hazardous != nil && *s.Hazardous:
		hazard = "hazardous"
	case s.Hazardous != nil:
		hazard = "not hazardous"
	}

	segments := []string{
		fmt.Sprintf("%s %d", styleStatusLabel.Render("neos"), s.NEOCount),
		fmt.Sprintf("%s %d", styleStatusLabel.Render("approaches"), s.ApproachCount),
		fmt.Sprintf("%s %d", styleStatusLabel.Render("matches"), s.Matches),
		fmt.Sprintf("%s %s", styleStatusLabel.Render("filter"), hazard),
	}
	line := "perigee  " + strings.Join(segments, "  ")

	if s.Width > 0 {
		return styleStatusBar.Width(s.Width).Render(line)
	}
	return styleStatusBar.Render(line)
}
