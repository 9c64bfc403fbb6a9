package repository

import (
	"testing"
	"time"

	"placedin/model"
)

func TestUpdateDailyMetricsAccumulates(t *testing.T) {
	coll := newTestCollection(t, "testDailyAnalytics")
	repo := &AnalyticsRepo{MongoCollection: coll}

	day := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	if err := repo.UpdateDailyMetrics(day, model.MetricDeltas{PageViews: 1}); err != nil {
		t.Fatalf("UpdateDailyMetrics() error: %v", err)
	}
	if err := repo.UpdateDailyMetrics(day, model.MetricDeltas{PageViews: 1}); err != nil {
		t.Fatalf("UpdateDailyMetrics() error: %v", err)
	}

	got, err := repo.GetDailyMetrics(day)
	if err != nil {
		t.Fatalf("GetDailyMetrics() error: %v", err)
	}
	if got == nil {
		t.Fatal("GetDailyMetrics() returned nil for a day with writes")
	}
	if got.Counters.PageViews != 2 {
		t.Errorf("PageViews = %d, want 2", got.Counters.PageViews)
	}
	if !got.Date.Equal(model.TruncateToDay(day)) {
		t.Errorf("Date = %v, want %v", got.Date, model.TruncateToDay(day))
	}
}

func TestUpdateDailyMetricsSameDaySharesDocument(t *testing.T) {
	coll := newTestCollection(t, "testDailyAnalyticsShared")
	repo := &AnalyticsRepo{MongoCollection: coll}

	morning := time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)

	if err := repo.UpdateDailyMetrics(morning, model.MetricDeltas{Registrations: 1}); err != nil {
		t.Fatalf("UpdateDailyMetrics() error: %v", err)
	}
	if err := repo.UpdateDailyMetrics(evening, model.MetricDeltas{Logins: 3}); err != nil {
		t.Fatalf("UpdateDailyMetrics() error: %v", err)
	}

	got, err := repo.GetDailyMetrics(morning)
	if err != nil {
		t.Fatalf("GetDailyMetrics() error: %v", err)
	}
	if got == nil {
		t.Fatal("GetDailyMetrics() returned nil")
	}
	if got.Counters.Registrations != 1 || got.Counters.Logins != 3 {
		t.Errorf("counters = %+v, want registrations 1 and logins 3", got.Counters)
	}

	docs, err := repo.GetMetricsRange(morning, evening)
	if err != nil {
		t.Fatalf("GetMetricsRange() error: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("GetMetricsRange() returned %d documents, want 1 per day", len(docs))
	}
}

func TestGetDailyMetricsMissReturnsNil(t *testing.T) {
	coll := newTestCollection(t, "testDailyAnalyticsMiss")
	repo := &AnalyticsRepo{MongoCollection: coll}

	got, err := repo.GetDailyMetrics(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetDailyMetrics() error: %v", err)
	}
	if got != nil {
		t.Errorf("GetDailyMetrics() = %+v, want nil for an unwritten day", got)
	}
}

func TestSetTopLists(t *testing.T) {
	coll := newTestCollection(t, "testDailyAnalyticsTop")
	repo := &AnalyticsRepo{MongoCollection: coll}

	day := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	companies := []model.LabelCount{{Label: "Acme Corp", Count: 4}, {Label: "Initech", Count: 2}}
	years := []model.LabelCount{{Label: "2026", Count: 5}}

	if err := repo.SetTopLists(day, companies, years); err != nil {
		t.Fatalf("SetTopLists() error: %v", err)
	}

	got, err := repo.GetDailyMetrics(day)
	if err != nil {
		t.Fatalf("GetDailyMetrics() error: %v", err)
	}
	if got == nil {
		t.Fatal("GetDailyMetrics() returned nil")
	}
	if len(got.TopCompanies) != 2 || got.TopCompanies[0].Label != "Acme Corp" {
		t.Errorf("TopCompanies = %+v, want %+v", got.TopCompanies, companies)
	}
	if len(got.TopGraduationYears) != 1 || got.TopGraduationYears[0].Count != 5 {
		t.Errorf("TopGraduationYears = %+v, want %+v", got.TopGraduationYears, years)
	}
}

func TestTruncateToDay(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2026, 3, 15, 2, 30, 0, 0, loc)

	got := model.TruncateToDay(local)
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("TruncateToDay(%v) = %v, want %v", local, got, want)
	}
}
