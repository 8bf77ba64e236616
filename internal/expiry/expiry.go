// Package expiry classifies document expiry dates and aggregates them into
// the dashboard alert feed. Everything here is pure: same snapshot plus same
// "now" always yields the same output.
package expiry

import (
	"sort"
	"time"

	"fleetdocs/internal/model"
)

// Status is the display classification of a document's expiry date.
type Status string

const (
	// StatusNone means the document carries no expiry date. It never
	// appears in alerts and is rendered as a dash.
	StatusNone     Status = "none"
	StatusExpired  Status = "expired"
	StatusExpiring Status = "expiring"
	StatusValid    Status = "valid"
)

// ExpiringWindowDays is the inclusive number of days ahead within which a
// document counts as expiring soon.
const ExpiringWindowDays = 30

// DaysUntil returns the whole-day difference between the expiry date and now,
// comparing calendar dates only. A document expiring today yields 0; one that
// expired yesterday yields -1.
func DaysUntil(expiry, now time.Time) int {
	// Unix seconds rather than Sub: a time.Duration saturates for spans
	// beyond ~292 years, which would misclassify absurd far-future dates.
	e := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC).Unix()
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Unix()
	return int((e - n) / 86400)
}

// Classify maps an optional expiry date to a status and the signed day count.
// A nil date is StatusNone. Day 0 (expires today) and day 30 are both
// StatusExpiring; anything past 30 days out is StatusValid.
func Classify(expiry *time.Time, now time.Time) (Status, int) {
	if expiry == nil {
		return StatusNone, 0
	}
	days := DaysUntil(*expiry, now)
	switch {
	case days < 0:
		return StatusExpired, days
	case days <= ExpiringWindowDays:
		return StatusExpiring, days
	default:
		return StatusValid, days
	}
}

// ClassifyDocument classifies a document's expiry date.
func ClassifyDocument(doc model.Document, now time.Time) (Status, int) {
	if doc.ExpiryDate == nil {
		return StatusNone, 0
	}
	t := doc.ExpiryDate.Time
	return Classify(&t, now)
}

// BuildSummary scans a user's vehicles and produces the alert feed. Documents
// without an expiry date are skipped entirely. The alert list is sorted
// ascending by daysUntilExpiry, which puts the most overdue documents first
// and the soonest-to-expire after them.
func BuildSummary(vehicles []model.VehicleWithDocuments, now time.Time) model.AlertSummary {
	summary := model.AlertSummary{Alerts: []model.Alert{}}

	for _, v := range vehicles {
		for _, doc := range v.Documents {
			status, days := ClassifyDocument(doc, now)
			switch status {
			case StatusExpired:
				summary.ExpiredCount++
			case StatusExpiring:
				summary.ExpiringSoonCount++
			default:
				continue
			}
			summary.Alerts = append(summary.Alerts, model.Alert{
				Vehicle:         v.Vehicle,
				Document:        doc,
				DaysUntilExpiry: days,
				Status:          string(status),
			})
		}
	}

	sort.SliceStable(summary.Alerts, func(i, j int) bool {
		return summary.Alerts[i].DaysUntilExpiry < summary.Alerts[j].DaysUntilExpiry
	})

	return summary
}
