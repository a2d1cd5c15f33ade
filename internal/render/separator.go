package render

import (
	"strings"

	"gitprompt/internal/promptconfig"
)

// resolveSeparators concatenates a rendered sibling list, applying the
// separator visibility rules: Always separators always contribute; a
// Surrounded separator contributes only if at least one emitted
// non-separator sibling exists somewhere to its left and somewhere to its
// right, scanning past other separators and past empty siblings. Runs of
// Surrounded separators that end up bracketing nothing but empty siblings
// collapse to the first one in the run.
func resolveSeparators(frags []fragment) string {
	included := computeSeparatorInclusion(frags)

	var b strings.Builder
	lastWasSurroundedSep := false
	for i, f := range frags {
		if f.kind == fragSeparator {
			if !included[i] {
				continue
			}
			if f.display == promptconfig.DisplaySurrounded && lastWasSurroundedSep {
				continue
			}
			b.WriteString(f.text)
			lastWasSurroundedSep = f.display == promptconfig.DisplaySurrounded
			continue
		}
		if !f.emitted {
			continue
		}
		b.WriteString(f.text)
		lastWasSurroundedSep = false
	}
	return b.String()
}

func computeSeparatorInclusion(frags []fragment) []bool {
	included := make([]bool, len(frags))
	for i, f := range frags {
		if f.kind != fragSeparator {
			continue
		}
		if f.display == promptconfig.DisplayAlways {
			included[i] = true
			continue
		}
		included[i] = hasEmittedBefore(frags, i) && hasEmittedAfter(frags, i)
	}
	return included
}

func hasEmittedBefore(frags []fragment, idx int) bool {
	for i := 0; i < idx; i++ {
		if frags[i].kind != fragSeparator && frags[i].emitted {
			return true
		}
	}
	return false
}

func hasEmittedAfter(frags []fragment, idx int) bool {
	for i := idx + 1; i < len(frags); i++ {
		if frags[i].kind != fragSeparator && frags[i].emitted {
			return true
		}
	}
	return false
}
