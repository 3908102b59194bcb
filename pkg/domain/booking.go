package domain

import "time"

// Booking is one appointment request. Records are written to an append-only
// ledger; the ledger only ever grows.
type Booking struct {
	Timestamp time.Time `json:"timestamp"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Clinic    string    `json:"clinic"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
}
