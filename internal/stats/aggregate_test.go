package stats_test

import (
	"testing"
	"time"

	"github.com/mcosta/chesslog/internal/models"
	"github.com/mcosta/chesslog/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int, hour int) time.Time {
	return time.Date(2024, time.March, d, hour, 0, 0, 0, time.Local)
}

func TestComputeDailySeries_CarryForward(t *testing.T) {
	// Games on day 1 and day 3, nothing on day 2: day 2 still gets a row
	// with zero day-scoped counters and the rating carried forward.
	events := []models.DailyEvent{
		{Date: day(1, 10), Category: models.CategoryBlitz, Outcome: "win", Rating: 1510},
		{Date: day(1, 11), Category: models.CategoryBlitz, Outcome: "loss", Rating: 1498},
		{Date: day(3, 9), Category: models.CategoryBlitz, Outcome: "win", Rating: 1512},
	}

	series := stats.ComputeDailySeries(events, day(3, 23))
	require.Len(t, series, 3)

	day1 := series[0].Categories[models.CategoryBlitz]
	assert.Equal(t, 1498, day1.EndOfDayRating)
	assert.Equal(t, 2, day1.GamesToday)
	assert.Equal(t, 1, day1.WinsToday)
	assert.Equal(t, 1, day1.LossesToday)
	assert.Equal(t, 0.5, day1.WinPct)
	assert.Equal(t, "1/2", day1.Score)

	day2 := series[1].Categories[models.CategoryBlitz]
	assert.Equal(t, 1498, day2.EndOfDayRating, "rating carries forward on an idle day")
	assert.Zero(t, day2.GamesToday)
	assert.Zero(t, day2.RatingChange)
	assert.Zero(t, day2.WinPct)
	assert.Equal(t, "0/0", day2.Score)

	day3 := series[2].Categories[models.CategoryBlitz]
	assert.Equal(t, 1512, day3.EndOfDayRating)
	assert.Equal(t, 14, day3.RatingChange)
	assert.Equal(t, 1, day3.GamesToday)
	assert.Equal(t, "1/1", day3.Score)
}

func TestComputeDailySeries_ScoreWithDraws(t *testing.T) {
	events := []models.DailyEvent{
		{Date: day(1, 9), Category: models.CategoryRapid, Outcome: "win", Rating: 1400},
		{Date: day(1, 10), Category: models.CategoryRapid, Outcome: "draw", Rating: 1401},
		{Date: day(1, 11), Category: models.CategoryRapid, Outcome: "loss", Rating: 1395},
		{Date: day(1, 12), Category: models.CategoryRapid, Outcome: "win", Rating: 1403},
	}

	series := stats.ComputeDailySeries(events, day(1, 23))
	require.Len(t, series, 1)

	d := series[0].Categories[models.CategoryRapid]
	assert.Equal(t, "2.5/4", d.Score)
	assert.Equal(t, 0.5, d.WinPct)
}

func TestComputeDailySeries_EmptyStream(t *testing.T) {
	assert.Nil(t, stats.ComputeDailySeries(nil, time.Now()))
}

func TestComputeDailySeries_CategoriesIndependent(t *testing.T) {
	events := []models.DailyEvent{
		{Date: day(1, 10), Category: models.CategoryBlitz, Outcome: "win", Rating: 1500},
		{Date: day(1, 11), Category: models.CategoryBullet, Outcome: "loss", Rating: 900},
	}

	series := stats.ComputeDailySeries(events, day(1, 23))
	require.Len(t, series, 1)

	assert.Equal(t, 1500, series[0].Categories[models.CategoryBlitz].EndOfDayRating)
	assert.Equal(t, 900, series[0].Categories[models.CategoryBullet].EndOfDayRating)
	assert.Zero(t, series[0].Categories[models.CategoryRapid].EndOfDayRating)
}

func TestComputeAsOf(t *testing.T) {
	events := []models.DailyEvent{
		{Date: day(1, 10), Category: models.CategoryBlitz, Outcome: "win", Rating: 1510},
		{Date: day(2, 10), Category: models.CategoryBlitz, Outcome: "loss", Rating: 1500},
		{Date: day(5, 10), Category: models.CategoryBlitz, Outcome: "win", Rating: 1520},
	}

	totals := stats.ComputeAsOf(events, day(2, 23))

	blitz := totals[models.CategoryBlitz]
	assert.Equal(t, 2, blitz.Games)
	assert.Equal(t, 1, blitz.Wins)
	assert.Equal(t, 1, blitz.Losses)
	assert.Equal(t, 1500, blitz.Rating, "rating is last observed, not averaged")
}

func TestComputeAsOf_EmptyEvents(t *testing.T) {
	totals := stats.ComputeAsOf(nil, time.Now())
	assert.Empty(t, totals)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		rules     string
		timeClass string
		want      string
		ok        bool
	}{
		{"chess", "blitz", "blitz", true},
		{"", "bullet", "bullet", true},
		{"chess", "rapid", "rapid", true},
		{"chess", "daily", "daily", true},
		{"chess960", "daily", "daily960", true},
		{"chess960", "blitz", "chess960", true},
		{"kingofthehill", "blitz", "", false},
		{"chess", "weird", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.rules+"/"+tt.timeClass, func(t *testing.T) {
			got, ok := stats.Classify(tt.rules, tt.timeClass)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildEvents(t *testing.T) {
	rows := []models.GameRow{
		{URL: "g3", MyColor: "white", Result: "win", MyRating: 1520,
			Rules: "chess", TimeClass: "blitz", EndTime: day(3, 10)},
		{URL: "g1", MyColor: "black", Result: "loss", MyRating: 1500,
			Rules: "chess", TimeClass: "blitz", EndTime: day(1, 10)},
		{URL: "untracked-variant", MyColor: "white", Result: "win", MyRating: 1200,
			Rules: "kingofthehill", TimeClass: "blitz", EndTime: day(2, 10)},
		{URL: "not-my-game", Rules: "chess", TimeClass: "blitz", EndTime: day(2, 11)},
		{URL: "no-end-time", MyColor: "white", Result: "win", Rules: "chess", TimeClass: "blitz"},
	}

	events := stats.BuildEvents(rows)

	require.Len(t, events, 2)
	assert.True(t, events[0].Date.Before(events[1].Date), "events sorted ascending")
	assert.Equal(t, "loss", events[0].Outcome)
	assert.Equal(t, "win", events[1].Outcome)
}
