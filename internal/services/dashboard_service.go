package services

import (
	"time"

	"cashplan/internal/projection"
)

// dashboardService runs the projection core over a fresh ledger snapshot.
// Every view takes its own snapshot at request time; there is no caching and
// no shared state, so concurrent requests are fully independent.
type dashboardService struct {
	transactions TransactionServicer
	settings     SettingsServicer
	debts        DebtServicer

	// now is the clock used for the window start; overridable in tests.
	now func() time.Time
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(transactions TransactionServicer, settings SettingsServicer, debts DebtServicer) DashboardServicer {
	return &dashboardService{
		transactions: transactions,
		settings:     settings,
		debts:        debts,
		now:          time.Now,
	}
}

// project takes one snapshot and runs the engine. All dashboard views go
// through here so they can never disagree on the numbers.
func (s *dashboardService) project(windowDays int) (projection.Result, error) {
	rules, err := s.transactions.FetchAllCashFlowRules()
	if err != nil {
		return projection.Result{}, err
	}
	initialBalance, err := s.settings.InitialBalance()
	if err != nil {
		return projection.Result{}, err
	}
	return projection.Project(rules, initialBalance, s.now(), windowDays), nil
}

// Timeline returns the chart view of the projection window.
func (s *dashboardService) Timeline(windowDays int) (*projection.Timeline, error) {
	result, err := s.project(windowDays)
	if err != nil {
		return nil, err
	}
	timeline := projection.BuildTimeline(result)
	return &timeline, nil
}

// Stats returns the scalar summary view, including the total outstanding debt.
func (s *dashboardService) Stats(windowDays int) (*projection.Stats, error) {
	result, err := s.project(windowDays)
	if err != nil {
		return nil, err
	}
	totalDebt, err := s.debts.TotalRemainingDebt()
	if err != nil {
		return nil, err
	}
	stats := projection.BuildStats(result, totalDebt)
	return &stats, nil
}

// UpcomingTransactions returns the per-occurrence detail view, ordered by
// effective date ascending.
func (s *dashboardService) UpcomingTransactions(windowDays int) (*UpcomingTransactions, error) {
	result, err := s.project(windowDays)
	if err != nil {
		return nil, err
	}
	entries := result.Entries
	if entries == nil {
		entries = []projection.Occurrence{}
	}
	return &UpcomingTransactions{
		WindowStart: result.WindowStart,
		WindowDays:  result.WindowDays,
		Entries:     entries,
		Warnings:    result.Warnings,
	}, nil
}
