package service

import (
	"context"
	"sort"
	"time"

	"linksea/internal/models"
	"linksea/internal/repository"
)

// DeletedLinkTitle labels clicks whose link has since been hard-deleted.
const DeletedLinkTitle = "Deleted Link"

type AnalyticsService struct {
	clickRepo repository.ClickRepository
	linkRepo  repository.LinkRepository
}

// LinkBreakdown is one row of the per-link click table.
type LinkBreakdown struct {
	LinkID uint   `json:"link_id"`
	Title  string `json:"title"`
	Count  int    `json:"count"`
}

// Overview is the analytics payload for one user and window.
//
// UniqueVisitors counts distinct UTC dates with at least one click. That is
// an approximation: two visitors on the same day count once, one visitor on
// two days counts twice. The field name is kept for API compatibility with
// the dashboard; treat it as activity days.
type Overview struct {
	Window         string          `json:"window"`
	TotalClicks    int             `json:"total_clicks"`
	UniqueVisitors int             `json:"unique_visitors"`
	Breakdown      []LinkBreakdown `json:"breakdown"`
}

func NewAnalyticsService(clickRepo repository.ClickRepository, linkRepo repository.LinkRepository) *AnalyticsService {
	return &AnalyticsService{clickRepo: clickRepo, linkRepo: linkRepo}
}

// windowStart maps a window name to its inclusive lower bound. "all" is a
// fixed epoch rather than an unbounded scan.
func windowStart(window string, now time.Time) (time.Time, error) {
	switch window {
	case "24h":
		return now.Add(-24 * time.Hour), nil
	case "7d":
		return now.Add(-7 * 24 * time.Hour), nil
	case "30d":
		return now.Add(-30 * 24 * time.Hour), nil
	case "all":
		return time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, models.NewValidationError("Window must be one of 24h, 7d, 30d, all")
	}
}

// ComputeOverview recomputes analytics from the raw click log on every call.
// At link-in-bio volumes a windowed scan per dashboard load is cheaper than
// keeping an aggregate consistent with deletes and erasure.
func (s *AnalyticsService) ComputeOverview(ctx context.Context, userID uint, window string) (*Overview, error) {
	since, err := windowStart(window, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	clicks, err := s.clickRepo.ListByUserSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	links, err := s.linkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	titles := make(map[uint]string, len(links))
	for _, link := range links {
		titles[link.ID] = link.Title
	}

	days := make(map[string]struct{})
	counts := make(map[uint]int)
	for _, click := range clicks {
		days[click.ClickedAt.UTC().Format("2006-01-02")] = struct{}{}
		counts[click.LinkID]++
	}

	breakdown := make([]LinkBreakdown, 0, len(counts))
	for linkID, count := range counts {
		title, ok := titles[linkID]
		if !ok {
			title = DeletedLinkTitle
		}
		breakdown = append(breakdown, LinkBreakdown{LinkID: linkID, Title: title, Count: count})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].LinkID < breakdown[j].LinkID
	})

	return &Overview{
		Window:         window,
		TotalClicks:    len(clicks),
		UniqueVisitors: len(days),
		Breakdown:      breakdown,
	}, nil
}
