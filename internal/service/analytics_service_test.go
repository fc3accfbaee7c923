package service

import (
	"context"
	"testing"
	"time"

	"linksea/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowStart(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		window  string
		want    time.Time
		wantErr bool
	}{
		{"24h", now.Add(-24 * time.Hour), false},
		{"7d", now.Add(-7 * 24 * time.Hour), false},
		{"30d", now.Add(-30 * 24 * time.Hour), false},
		{"all", time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC), false},
		{"90d", time.Time{}, true},
		{"", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.window, func(t *testing.T) {
			got, err := windowStart(tt.window, now)
			if tt.wantErr {
				assertErrorCode(t, err, "VALIDATION_ERROR")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyticsService_ComputeOverview(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	day := func(daysAgo int, hour int) time.Time {
		return now.AddDate(0, 0, -daysAgo).Truncate(24 * time.Hour).Add(time.Duration(hour) * time.Hour)
	}

	clicks := []models.ClickEvent{
		{LinkID: 1, UserID: 7, ClickedAt: day(0, 9)},
		{LinkID: 1, UserID: 7, ClickedAt: day(0, 10)},
		{LinkID: 1, UserID: 7, ClickedAt: day(1, 9)},
		{LinkID: 2, UserID: 7, ClickedAt: day(1, 10)},
		{LinkID: 2, UserID: 7, ClickedAt: day(1, 11)},
		{LinkID: 2, UserID: 7, ClickedAt: day(2, 9)},
		// Link 9 was deleted; its history stays.
		{LinkID: 9, UserID: 7, ClickedAt: day(2, 10)},
	}

	clickRepo := noopClickRepo()
	var requestedSince time.Time
	clickRepo.listByUserSinceFn = func(_ context.Context, _ uint, since time.Time) ([]models.ClickEvent, error) {
		requestedSince = since
		return clicks, nil
	}

	linkRepo := noopLinkRepo()
	linkRepo.listByUserFn = func(_ context.Context, _ uint) ([]models.Link, error) {
		return []models.Link{
			{ID: 1, UserID: 7, Title: "Blog"},
			{ID: 2, UserID: 7, Title: "Shop"},
			{ID: 3, UserID: 7, Title: "Never Clicked"},
		}, nil
	}

	svc := NewAnalyticsService(clickRepo, linkRepo)

	overview, err := svc.ComputeOverview(ctx, 7, "7d")
	require.NoError(t, err)

	assert.Equal(t, "7d", overview.Window)
	assert.Equal(t, 7, overview.TotalClicks)
	assert.Equal(t, 3, overview.UniqueVisitors, "three distinct UTC dates")
	assert.WithinDuration(t, now.Add(-7*24*time.Hour), requestedSince, 5*time.Second)

	require.Len(t, overview.Breakdown, 3, "unclicked links are absent")
	// Links 1 and 2 tie at three clicks each; the lower id wins.
	assert.Equal(t, LinkBreakdown{LinkID: 1, Title: "Blog", Count: 3}, overview.Breakdown[0])
	assert.Equal(t, LinkBreakdown{LinkID: 2, Title: "Shop", Count: 3}, overview.Breakdown[1])
	assert.Equal(t, LinkBreakdown{LinkID: 9, Title: DeletedLinkTitle, Count: 1}, overview.Breakdown[2])
}

func TestAnalyticsService_ComputeOverview_AllWindow(t *testing.T) {
	clickRepo := noopClickRepo()
	var requestedSince time.Time
	clickRepo.listByUserSinceFn = func(_ context.Context, _ uint, since time.Time) ([]models.ClickEvent, error) {
		requestedSince = since
		return nil, nil
	}
	svc := NewAnalyticsService(clickRepo, noopLinkRepo())

	overview, err := svc.ComputeOverview(context.Background(), 7, "all")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC), requestedSince)
	assert.Zero(t, overview.TotalClicks)
	assert.Zero(t, overview.UniqueVisitors)
	assert.Empty(t, overview.Breakdown)
}
