package models

import "time"

// Message is an inbound text to analyze. Built at ingress, never persisted.
type Message struct {
	UserID     int64     `json:"user_id"`
	Text       string    `json:"text"`
	ReceivedAt time.Time `json:"received_at"`
}

// Entitlement is a user's premium record. PremiumUntil is always UTC.
// A record whose PremiumUntil is absent or in the past means "not premium";
// records are never deleted on expiry.
type Entitlement struct {
	UserID       int64      `json:"user_id"`
	Premium      bool       `json:"premium"`
	PremiumUntil *time.Time `json:"premium_until,omitempty"`
}

// Usage is a user's daily check counter. Day is a UTC calendar date in
// YYYY-MM-DD form; the record is overwritten, not appended, when the day
// rolls over.
type Usage struct {
	UserID int64  `json:"user_id"`
	Day    string `json:"day"`
	Count  int    `json:"count"`
}

// DayFormat is the layout used for Usage.Day.
const DayFormat = "2006-01-02"
