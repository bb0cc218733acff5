package pgn

import (
	"regexp"
	"strings"
)

// AnnotationRecord holds the metadata tags extracted from one game's
// annotation text plus the raw move text. Fields for tags absent from the
// input stay empty.
type AnnotationRecord struct {
	Event           string
	Site            string
	Date            string
	Round           string
	Opening         string
	ECO             string
	Termination     string
	UTCDate         string
	UTCTime         string
	StartTime       string
	EndDate         string
	EndTime         string
	CurrentPosition string
	MovesText       string
}

var tagRe = regexp.MustCompile(`^\[(\w+)\s+"([^"]*)"\]$`)

// ParseAnnotation extracts the known metadata tags and the move text from a
// PGN-style annotation string. Parsing is best-effort line by line: malformed
// tag lines and unknown tags contribute nothing, and any input (including the
// empty string) yields a well-formed record.
func ParseAnnotation(text string) AnnotationRecord {
	var rec AnnotationRecord
	if text == "" {
		return rec
	}

	var moveLines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			m := tagRe.FindStringSubmatch(line)
			if len(m) == 3 {
				rec.setTag(m[1], m[2])
			}
			continue
		}
		moveLines = append(moveLines, line)
	}
	rec.MovesText = strings.Join(moveLines, " ")
	return rec
}

func (r *AnnotationRecord) setTag(key, value string) {
	switch strings.ToLower(key) {
	case "event":
		r.Event = value
	case "site":
		r.Site = value
	case "date":
		r.Date = value
	case "round":
		r.Round = value
	case "opening":
		r.Opening = value
	case "eco":
		r.ECO = value
	case "termination":
		r.Termination = value
	case "utcdate":
		r.UTCDate = value
	case "utctime":
		r.UTCTime = value
	case "starttime":
		r.StartTime = value
	case "enddate":
		r.EndDate = value
	case "endtime":
		r.EndTime = value
	case "currentposition":
		r.CurrentPosition = value
	}
	// Unknown tags are dropped.
}
