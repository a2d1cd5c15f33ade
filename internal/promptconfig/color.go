package promptconfig

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// colorTokens maps the named color markers accepted inside pre_format and
// post_format to the fatih/color attribute that produces them. fatih/color
// is also the library the rest of the pack reaches for when it needs to
// print in color (agrahamlincoln-katazuke, the other_examples status
// command); here it supplies the authoritative attribute table instead of
// a hand-rolled escape-code list.
var colorTokens = map[string]color.Attribute{
	"{black}":   color.FgBlack,
	"{red}":     color.FgRed,
	"{green}":   color.FgGreen,
	"{yellow}":  color.FgYellow,
	"{blue}":    color.FgBlue,
	"{magenta}": color.FgMagenta,
	"{cyan}":    color.FgCyan,
	"{white}":   color.FgWhite,
	"{bold}":    color.Bold,
	"{faint}":   color.Faint,
	"{reset}":   color.Reset,
}

// translateColors replaces every recognized {name} marker in s with its
// ANSI escape sequence, leaving unrecognized markers untouched so callers
// can still pass through raw escape codes verbatim per spec.
func translateColors(s string) string {
	if !strings.Contains(s, "{") {
		return s
	}
	for token, attr := range colorTokens {
		if strings.Contains(s, token) {
			s = strings.ReplaceAll(s, token, ansiCode(attr))
		}
	}
	return s
}

func ansiCode(attr color.Attribute) string {
	return fmt.Sprintf("\x1b[%dm", int(attr))
}
