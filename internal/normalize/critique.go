// Package normalize turns free-form model output into the shapes the features render.
//
// Nothing here returns an error. When a field cannot be found the documented default is used,
// so callers always get a complete result.
package normalize

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/huzzai/rizz-coach/internal/model"
)

const (
	DefaultScore       = 7.0
	FeedbackLimit      = 150
	FeedbackEllipsis   = "..."
	MaxSuggestions     = 3
	minSegmentLength   = 5
	maxCaptionLength   = 100
	swipeRightPhrase   = "swipe right"
	degenerateMinRunes = 10
)

var (
	DefaultCaptions = []string{
		"Vibes don't lie",
		"Living my best life",
		"Too busy looking at the stars",
	}
	DefaultImprovements = []string{
		"Try a different angle",
		"Adjust lighting for better visibility",
		"Consider a more engaging pose",
	}
)

var (
	scorePattern      = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*10`)
	captionLabel      = regexp.MustCompile(`(?i)\bcaptions?(?:\s+(?:suggestions?|ideas?|options?))?\s*:`)
	improvementLabel  = regexp.MustCompile(`(?i)\bimprovements?(?:\s+(?:suggestions?|tips?|ideas?))?\s*:`)
	suggestionLabel   = regexp.MustCompile(`(?i)(\bcaptions?\s+)?\bsuggestions?\s*:`)
	segmentDelimiters = regexp.MustCompile(`[\n\d+.)"*-]`)
	listItem          = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•"])`)
	jsonFence         = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*\\})\\s*```")
)

// Critique parses the reply to the image prompt. A JSON object with the critique keys is used
// as-is; anything else goes through the heuristics.
func Critique(text string) model.ImageCritique {
	if c, ok := parseStructured(text); ok {
		return c
	}
	return model.ImageCritique{
		Vibe:               Vibe(text),
		Score:              Score(text),
		Feedback:           Feedback(text),
		CaptionSuggestions: Captions(text),
		WouldSwipe:         WouldSwipe(text),
		Improvements:       Improvements(text),
	}
}

// FailedCritique is shown when the completion call itself failed.
func FailedCritique() model.ImageCritique {
	return model.ImageCritique{
		Vibe:               model.VibeMid,
		Score:              5.0,
		Feedback:           "Sorry, I couldn't analyze this image. Please check your API key or try again.",
		CaptionSuggestions: []string{"Check your API key", "Try again later", "Contact support"},
		WouldSwipe:         model.SwipeMaybe,
		Improvements:       []string{"Verify API permissions", "Try a different image"},
	}
}

// Score returns the first number written as "N/10", or DefaultScore.
func Score(text string) float64 {
	m := scorePattern.FindStringSubmatch(text)
	if m == nil {
		return DefaultScore
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return DefaultScore
	}
	return v
}

// Vibe is a plain case-sensitive substring check: any "W" wins, then any "L", else Mid.
// Ordinary words such as "Well" or "Looks" trigger it; that is known and kept.
func Vibe(text string) model.Vibe {
	switch {
	case strings.Contains(text, "W"):
		return model.VibeW
	case strings.Contains(text, "L"):
		return model.VibeL
	default:
		return model.VibeMid
	}
}

// Feedback is the first FeedbackLimit characters followed by an ellipsis, cut mid-word if need be.
func Feedback(text string) string {
	if utf8.RuneCountInString(text) <= FeedbackLimit {
		return text + FeedbackEllipsis
	}
	return string([]rune(text)[:FeedbackLimit]) + FeedbackEllipsis
}

func WouldSwipe(text string) model.Swipe {
	if strings.Contains(strings.ToLower(text), swipeRightPhrase) {
		return model.SwipeYes
	}
	return model.SwipeMaybe
}

// Captions reads the section after a "Caption(s):" label.
func Captions(text string) []string {
	loc := captionLabel.FindStringIndex(text)
	if loc == nil {
		return clone(DefaultCaptions)
	}
	captions := segments(section(text[loc[1]:]), func(n int) bool {
		return n > minSegmentLength && n < maxCaptionLength
	})
	if len(captions) == 0 {
		return clone(DefaultCaptions)
	}
	return captions
}

// Improvements reads the section after an "Improvement(s):" label, or failing that a
// "Suggestion(s):" label that is not part of "Caption suggestions:".
func Improvements(text string) []string {
	start := -1
	if loc := improvementLabel.FindStringIndex(text); loc != nil {
		start = loc[1]
	} else {
		for _, m := range suggestionLabel.FindAllStringSubmatchIndex(text, -1) {
			if m[2] >= 0 {
				continue
			}
			start = m[1]
			break
		}
	}
	if start < 0 {
		return clone(DefaultImprovements)
	}
	items := segments(section(text[start:]), func(n int) bool { return n > minSegmentLength })
	if len(items) == 0 {
		return clone(DefaultImprovements)
	}
	return items
}

// Degenerate reports whether a short-text reply should be replaced by a local fallback line.
func Degenerate(text string) bool {
	return strings.TrimSpace(text) == "" ||
		strings.Contains(text, "Sorry") ||
		utf8.RuneCountInString(text) < degenerateMinRunes
}

// section is the rest of the label's line plus any list items directly below it. Another
// labelled field on the next line is not part of the section.
func section(rest string) string {
	lines := strings.Split(strings.TrimLeft(rest, " \t\r\n"), "\n")
	n := 1
	for n < len(lines) && listItem.MatchString(lines[n]) {
		n++
	}
	return strings.Join(lines[:n], "\n")
}

func segments(s string, keep func(runes int) bool) []string {
	var out []string
	for _, part := range segmentDelimiters.Split(s, -1) {
		part = strings.TrimSpace(part)
		if !keep(utf8.RuneCountInString(part)) {
			continue
		}
		out = append(out, part)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}

type structuredCritique struct {
	Vibe               *string  `json:"vibe"`
	Score              *float64 `json:"score"`
	Feedback           *string  `json:"feedback"`
	CaptionSuggestions []string `json:"caption_suggestions"`
	WouldSwipe         string   `json:"would_swipe"`
	Improvements       []string `json:"improvements"`
}

// parseStructured accepts the reply only when it is a JSON object carrying a valid vibe, a score
// and feedback. Optional lists are capped and defaulted.
func parseStructured(text string) (model.ImageCritique, bool) {
	raw := strings.TrimSpace(text)
	if m := jsonFence.FindStringSubmatch(raw); m != nil {
		raw = m[1]
	}
	if !strings.HasPrefix(raw, "{") {
		return model.ImageCritique{}, false
	}

	var s structuredCritique
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return model.ImageCritique{}, false
	}
	if s.Vibe == nil || s.Score == nil || s.Feedback == nil {
		return model.ImageCritique{}, false
	}

	vibe := model.Vibe(*s.Vibe)
	if vibe != model.VibeW && vibe != model.VibeMid && vibe != model.VibeL {
		return model.ImageCritique{}, false
	}

	c := model.ImageCritique{
		Vibe:               vibe,
		Score:              clampScore(*s.Score),
		Feedback:           *s.Feedback,
		CaptionSuggestions: capList(s.CaptionSuggestions, DefaultCaptions),
		WouldSwipe:         model.SwipeMaybe,
		Improvements:       capList(s.Improvements, DefaultImprovements),
	}
	switch sw := model.Swipe(s.WouldSwipe); sw {
	case model.SwipeYes, model.SwipeMaybe, model.SwipeNo:
		c.WouldSwipe = sw
	}
	return c, true
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

func capList(items, fallback []string) []string {
	var out []string
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
		if len(out) == MaxSuggestions {
			break
		}
	}
	if len(out) == 0 {
		return clone(fallback)
	}
	return out
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
