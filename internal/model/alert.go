package model

// Alert flags a document that is expired or expiring within the warning
// window. Alerts are derived on every read and never persisted.
type Alert struct {
	Vehicle         Vehicle  `json:"vehicle"`
	Document        Document `json:"document"`
	DaysUntilExpiry int      `json:"daysUntilExpiry"`
	Status          string   `json:"status"`
}

// AlertSummary is the dashboard feed: aggregate counts plus the full alert
// list sorted most-urgent first. Presentation may truncate the list; the
// counts always cover everything.
type AlertSummary struct {
	ExpiredCount      int     `json:"expiredCount"`
	ExpiringSoonCount int     `json:"expiringSoonCount"`
	Alerts            []Alert `json:"alerts"`
}
