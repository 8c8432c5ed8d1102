package calc

import (
	"regexp"
	"strconv"
)

// implicitMul matches a digit or letter directly followed by a letter or an
// open parenthesis, e.g. 4( or 1x.
var implicitMul = regexp.MustCompile(`([0-9A-Za-z])([A-Za-z(])`)

// RewriteMode selects which implicit multiplications the Preprocessor makes
// explicit.
type RewriteMode int8

const (
	// RewriteAll rewrites every site, including sites that overlap, so that
	// 2x(3y) becomes 2 * x * (3 * y).
	RewriteAll RewriteMode = iota
	// RewriteFirst rewrites only the leftmost site.
	RewriteFirst
)

func (m RewriteMode) String() string {
	switch m {
	case RewriteAll:
		return "all"
	case RewriteFirst:
		return "first"
	default:
		return "RewriteMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseRewriteMode converts the name of a mode as given by String back to the
// mode.
func ParseRewriteMode(s string) (RewriteMode, bool) {
	switch s {
	case "all":
		return RewriteAll, true
	case "first":
		return RewriteFirst, true
	default:
		return 0, false
	}
}

// Preprocessor inserts explicit multiplication operators where an operand is
// written directly next to a name or parenthesized term. Note that two
// adjacent letters are a site too, so xy becomes x * y.
type Preprocessor struct {
	Mode RewriteMode
}

// Rewrite returns src with implicit multiplications made explicit.
func (p Preprocessor) Rewrite(src string) string {
	switch p.Mode {
	case RewriteFirst:
		loc := implicitMul.FindStringIndex(src)
		if loc == nil {
			return src
		}
		// Every match is exactly two single-byte runes.
		k := loc[0] + 1
		return src[:k] + " * " + src[k:]
	default:
		// ReplaceAllString skips sites that share a rune with the previous
		// match, so repeat until nothing changes. Each pass inserts spaces
		// after every matched rune, so this terminates.
		for {
			r := implicitMul.ReplaceAllString(src, "$1 * $2")
			if r == src {
				return r
			}
			src = r
		}
	}
}
