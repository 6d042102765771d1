package services

import (
	"context"
	"sort"
	"time"

	"github.com/omnireach/crm-backend/internal/models"
	"github.com/omnireach/crm-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// dayNames is the fixed bucket order of the activity series. Day names are
// derived from time.Weekday, never from host locale.
var dayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// AnalyticsService reduces the communication log store into campaign
// statistics on demand. There is no materialized view; every call rescans.
type AnalyticsService struct {
	logRepo repositories.CommunicationLogRepository
	loc     *time.Location
}

// NewAnalyticsService creates a new AnalyticsService. Day bucketing happens
// in loc; pass nil for UTC.
func NewAnalyticsService(logRepo repositories.CommunicationLogRepository, loc *time.Location) *AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsService{
		logRepo: logRepo,
		loc:     loc,
	}
}

// RealtimeStats computes point-in-time statistics over a campaign's entire
// log history. Rates are ratios over sent, zero when nothing was sent.
// The series always has exactly 7 zero-filled Mon..Sun slots; rows with a
// zero sentAt are excluded from the series but still counted in the totals.
func (s *AnalyticsService) RealtimeStats(ctx context.Context, campaignID primitive.ObjectID) (*models.CampaignStats, error) {
	logs, err := s.logRepo.FindByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	stats := &models.CampaignStats{}
	buckets := make(map[string]*models.DayBucket, len(dayNames))
	for _, day := range dayNames {
		buckets[day] = &models.DayBucket{Day: day}
	}

	for _, l := range logs {
		if l.Status == models.LogStatusSent {
			stats.Sent++
		}
		if l.OpenedAt != nil {
			stats.Opened++
		}
		if l.ClickedAt != nil {
			stats.Clicked++
		}

		bucket, ok := buckets[s.dayName(l.SentAt)]
		if !ok {
			continue
		}
		if l.Status == models.LogStatusSent {
			bucket.Delivered++
		}
		if l.OpenedAt != nil {
			bucket.Opened++
		}
		if l.ClickedAt != nil {
			bucket.Clicked++
		}
	}

	if stats.Sent > 0 {
		stats.AvgOpenRate = float64(stats.Opened) / float64(stats.Sent)
		stats.AvgClickRate = float64(stats.Clicked) / float64(stats.Sent)
		stats.AvgEngagementRate = float64(stats.Opened+stats.Clicked) / float64(stats.Sent)
	}

	stats.GraphData = make([]models.DayBucket, 0, len(dayNames))
	for _, day := range dayNames {
		stats.GraphData = append(stats.GraphData, *buckets[day])
	}
	return stats, nil
}

// WeeklyActivity buckets every log in the store into the 7-slot series
func (s *AnalyticsService) WeeklyActivity(ctx context.Context) ([]models.DayBucket, error) {
	logs, err := s.logRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*models.DayBucket, len(dayNames))
	for _, day := range dayNames {
		buckets[day] = &models.DayBucket{Day: day}
	}
	for _, l := range logs {
		bucket, ok := buckets[s.dayName(l.SentAt)]
		if !ok {
			continue
		}
		if l.Status == models.LogStatusSent {
			bucket.Delivered++
		}
		if l.OpenedAt != nil {
			bucket.Opened++
		}
		if l.ClickedAt != nil {
			bucket.Clicked++
		}
	}

	series := make([]models.DayBucket, 0, len(dayNames))
	for _, day := range dayNames {
		series = append(series, *buckets[day])
	}
	return series, nil
}

// PerformanceSeries groups every log in the store by calendar date
func (s *AnalyticsService) PerformanceSeries(ctx context.Context) ([]models.PerformancePoint, error) {
	logs, err := s.logRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*models.PerformancePoint)
	for _, l := range logs {
		if l.SentAt.IsZero() {
			continue
		}
		date := l.SentAt.In(s.loc).Format("2006-01-02")
		point, ok := byDate[date]
		if !ok {
			point = &models.PerformancePoint{Date: date}
			byDate[date] = point
		}
		point.Sent++
		if l.Status == models.LogStatusSent {
			point.Delivered++
		}
		if l.OpenedAt != nil {
			point.Opened++
		}
		if l.ClickedAt != nil {
			point.Clicked++
		}
	}

	series := make([]models.PerformancePoint, 0, len(byDate))
	for _, point := range byDate {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series, nil
}

// dayName returns the Mon..Sun bucket for a timestamp, or "Unknown" for
// the zero time so malformed rows fall outside the fixed series
func (s *AnalyticsService) dayName(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	switch t.In(s.loc).Weekday() {
	case time.Monday:
		return "Mon"
	case time.Tuesday:
		return "Tue"
	case time.Wednesday:
		return "Wed"
	case time.Thursday:
		return "Thu"
	case time.Friday:
		return "Fri"
	case time.Saturday:
		return "Sat"
	default:
		return "Sun"
	}
}
