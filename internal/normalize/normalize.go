// Package normalize maps raw chess.com game records onto the canonical
// dataset row schema.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mcosta/chesslog/internal/chesscom"
	"github.com/mcosta/chesslog/internal/models"
	"github.com/mcosta/chesslog/internal/pgn"
)

// ComputeFormat derives the format label from the rule variant and time
// class. Chess960 daily games get their own bucket; any non-standard variant
// other than that is labeled by its rules string verbatim.
func ComputeFormat(rules, timeClass string) string {
	r := strings.ToLower(strings.TrimSpace(rules))
	tc := strings.ToLower(strings.TrimSpace(timeClass))

	if strings.Contains(r, "960") && tc == "daily" {
		return "daily960"
	}
	if r == "chess" || r == "" {
		if tc == "" {
			return "unknown"
		}
		return tc
	}
	return rules
}

// ResolveResult maps the tracked side's result code to win/loss/draw. The
// API's result vocabulary is asymmetric, so unrecognized codes fall back to
// inferring from the opponent's code; if that fails too the result is "".
func ResolveResult(mine, theirs string) string {
	switch strings.ToLower(mine) {
	case "win":
		return "win"
	case "resigned", "timeout", "checkmated", "abandoned":
		return "loss"
	case "draw", "stalemate", "repetition", "agreed",
		"timevsinsufficient", "insufficient", "fiftymove":
		return "draw"
	}
	switch strings.ToLower(theirs) {
	case "win":
		return "loss"
	case "lose":
		return "win"
	case "draw":
		return "draw"
	}
	return ""
}

// ParseTimeControl splits a time-control string into base minutes and
// increment seconds. "600+5" is 10 minutes with a 5 second increment;
// correspondence controls like "1/86400" report the per-move allowance.
func ParseTimeControl(tc string) (baseMinutes float64, incrementSeconds int) {
	tc = strings.TrimSpace(tc)
	if tc == "" {
		return 0, 0
	}
	if num, denom, ok := strings.Cut(tc, "/"); ok {
		_ = num
		if secs, err := strconv.Atoi(denom); err == nil {
			return float64(secs) / 60, 0
		}
		return 0, 0
	}
	base := tc
	if b, inc, ok := strings.Cut(tc, "+"); ok {
		base = b
		if i, err := strconv.Atoi(inc); err == nil {
			incrementSeconds = i
		}
	}
	if secs, err := strconv.Atoi(base); err == nil {
		baseMinutes = float64(secs) / 60
	}
	return baseMinutes, incrementSeconds
}

// DurationSeconds computes the wall-clock game length from the annotation's
// start and end timestamps. An end before the start is assumed to be a
// midnight rollover. Returns 0 when either timestamp is missing or
// unparsable.
func DurationSeconds(ann pgn.AnnotationRecord) int {
	start, ok := parseDateTime(ann.UTCDate, ann.StartTime)
	if !ok {
		return 0
	}
	end, ok := parseDateTime(ann.EndDate, ann.EndTime)
	if !ok {
		return 0
	}
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}
	return int(math.Round(end.Sub(start).Seconds()))
}

func parseDateTime(date, clock string) (time.Time, bool) {
	if date == "" || clock == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006.01.02 15:04:05", date+" "+clock)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Normalize maps one raw game plus its parsed annotation onto a GameRow.
// Player-perspective fields are filled only when trackedUsername is given
// and matches one side (case-insensitive). Missing inputs degrade to zero
// values; Normalize never fails.
func Normalize(raw chesscom.RawGame, ann pgn.AnnotationRecord, trackedUsername string) models.GameRow {
	base, inc := ParseTimeControl(raw.TimeControl)

	row := models.GameRow{
		URL:              raw.URL,
		TimeControl:      raw.TimeControl,
		BaseTimeMinutes:  base,
		IncrementSeconds: inc,
		Rated:            raw.Rated,
		TimeClass:        raw.TimeClass,
		Rules:            raw.Rules,
		Format:           ComputeFormat(raw.Rules, raw.TimeClass),
		DurationSeconds:  DurationSeconds(ann),
		Termination:      ann.Termination,
		Event:            ann.Event,
		Site:             ann.Site,
		Date:             ann.Date,
		Round:            ann.Round,
		Opening:          ann.Opening,
		ECO:              ann.ECO,
		ECOURL:           raw.ECOURL,
		UTCDate:          ann.UTCDate,
		UTCTime:          ann.UTCTime,
		StartTime:        ann.StartTime,
		EndDate:          ann.EndDate,
		EndTimePGN:       ann.EndTime,
		CurrentPosition:  ann.CurrentPosition,
		PGN:              raw.PGN,
	}

	if raw.EndTime > 0 {
		row.EndTime = time.Unix(raw.EndTime, 0).UTC()
	}

	entries := pgn.TokenizeMoves(ann.MovesText)
	row.MoveCount = len(entries)
	var san, clocks []string
	for _, e := range entries {
		if e.SANText != "" {
			san = append(san, e.SANText)
		}
		if e.ClockTimes != "" {
			clocks = append(clocks, e.ClockTimes)
		}
	}
	row.SANMoves = strings.Join(san, " ")
	row.ClockTimes = strings.Join(clocks, " ")

	if trackedUsername != "" {
		fillPerspective(&row, raw, trackedUsername)
	}
	return row
}

func fillPerspective(row *models.GameRow, raw chesscom.RawGame, username string) {
	var mine, theirs chesscom.Player
	switch {
	case strings.EqualFold(raw.White.Username, username):
		row.MyColor = "white"
		mine, theirs = raw.White, raw.Black
	case strings.EqualFold(raw.Black.Username, username):
		row.MyColor = "black"
		mine, theirs = raw.Black, raw.White
	default:
		return
	}
	row.MyRating = mine.Rating
	row.Opponent = theirs.Username
	row.OpponentRating = theirs.Rating
	row.Result = ResolveResult(mine.Result, theirs.Result)
}
