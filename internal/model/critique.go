package model

import "encoding/base64"

// Vibe is the coarse verdict on a profile picture.
type Vibe string

const (
	VibeW   Vibe = "W"
	VibeMid Vibe = "Mid"
	VibeL   Vibe = "L"
)

// Swipe predicts whether a viewer would swipe right.
type Swipe string

const (
	SwipeYes   Swipe = "Yes"
	SwipeMaybe Swipe = "Maybe"
	SwipeNo    Swipe = "No"
)

// ImageCritique is the structured feedback for one analyzed image. It is never persisted.
type ImageCritique struct {
	Vibe               Vibe     `json:"vibe"`
	Score              float64  `json:"score"`
	Feedback           string   `json:"feedback"`
	CaptionSuggestions []string `json:"caption_suggestions"`
	WouldSwipe         Swipe    `json:"would_swipe"`
	Improvements       []string `json:"improvements"`
}

// Attachment is an inline binary part sent along with a prompt.
type Attachment struct {
	MIMEType string
	Data     []byte
}

// Base64 returns the standard encoding of the payload as the completion API expects it.
func (a Attachment) Base64() string {
	return base64.StdEncoding.EncodeToString(a.Data)
}
