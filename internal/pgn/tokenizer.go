package pgn

import (
	"regexp"
	"strings"
)

// MoveEntry is one move unit from the move text: the numbered move (both
// half-moves when no annotation separates them) and the clock annotations
// seen within the unit, space-joined.
type MoveEntry struct {
	SANText    string
	ClockTimes string
}

var (
	blackNumRe = regexp.MustCompile(`^\d+\.\.\.`)
	moveNumRe  = regexp.MustCompile(`^\d+\.`)
	clockRe    = regexp.MustCompile(`^\{\[%clk\s+([^\]]+)\]\}`)
)

// TokenizeMoves splits move text into ordered MoveEntry records. A token
// matching `N.` opens a new entry, `N...` continues the current one, clock
// annotations attach to the current entry, and unrecognized brace-wrapped
// annotations are dropped. Empty input yields no entries.
func TokenizeMoves(movesText string) []MoveEntry {
	var (
		entries []MoveEntry
		san     []string
		clocks  []string
		open    bool
	)

	flush := func() {
		if !open {
			return
		}
		entries = append(entries, MoveEntry{
			SANText:    strings.Join(san, " "),
			ClockTimes: strings.Join(clocks, " "),
		})
		san = san[:0]
		clocks = clocks[:0]
		open = false
	}

	for _, tok := range splitTokens(movesText) {
		switch {
		case blackNumRe.MatchString(tok):
			san = append(san, tok)
			open = true
		case moveNumRe.MatchString(tok):
			flush()
			san = append(san, tok)
			open = true
		case clockRe.MatchString(tok):
			m := clockRe.FindStringSubmatch(tok)
			clocks = append(clocks, strings.TrimSpace(m[1]))
			open = true
		case strings.HasPrefix(tok, "{"):
			// Unrecognized annotation.
		default:
			san = append(san, tok)
			open = true
		}
	}
	flush()
	return entries
}

// splitTokens splits on whitespace but keeps brace-wrapped annotations,
// which contain spaces themselves, as single tokens.
func splitTokens(s string) []string {
	var toks []string
	for i := 0; i < len(s); {
		switch {
		case s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r':
			i++
		case s[i] == '{':
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				toks = append(toks, s[i:])
				return toks
			}
			toks = append(toks, s[i:i+end+1])
			i += end + 1
		default:
			j := i
			for j < len(s) && !strings.ContainsRune(" \t\n\r{", rune(s[j])) {
				j++
			}
			toks = append(toks, s[i:j])
			i = j
		}
	}
	return toks
}
