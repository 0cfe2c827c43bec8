package model

import "time"

// PickupLine is a canned line tagged with the tone it fits.
type PickupLine struct {
	Text string    `json:"text"`
	Tone ToneLevel `json:"tone"`
}

// HistoryEntry records a generated line. Histories are kept most recent first.
type HistoryEntry struct {
	Scenario  string    `json:"scenario"`
	Line      string    `json:"line"`
	Tone      ToneLevel `json:"tone"`
	Timestamp time.Time `json:"timestamp"`
}
