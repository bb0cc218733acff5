package chesscom

import (
	"strconv"
	"strings"
)

// ArchiveYearMonth derives "YYYY-MM" from an archive URL of the form
// .../player/{username}/games/{YYYY}/{MM}. Returns "" when the URL does not
// follow that shape.
func ArchiveYearMonth(archiveURL string) string {
	parts := strings.Split(strings.TrimSuffix(archiveURL, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	yearStr := parts[len(parts)-2]
	monthStr := parts[len(parts)-1]

	year, err1 := strconv.Atoi(yearStr)
	month, err2 := strconv.Atoi(monthStr)
	if err1 != nil || err2 != nil || year < 1000 || month < 1 || month > 12 {
		return ""
	}
	if len(monthStr) == 1 {
		monthStr = "0" + monthStr
	}
	return yearStr + "-" + monthStr
}
