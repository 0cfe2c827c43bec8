// Package model defines the data types shared by the coaching features.
package model

import "fmt"

// ToneLevel is the five-step flirtiness scale shared by every feature that accepts a tone.
type ToneLevel int

const (
	ToneSubtle ToneLevel = iota
	ToneCasual
	ToneFlirty
	ToneBold
	ToneSpicy
)

// MinTone and MaxTone bound the scale.
const (
	MinTone = ToneSubtle
	MaxTone = ToneSpicy
)

var toneDescriptors = [...]string{
	ToneSubtle: "ultra casual, respectful, and subtle with a hint of interest",
	ToneCasual: "casual and playful with light flirtation",
	ToneFlirty: "moderately flirty, teasing, and confident",
	ToneBold:   "bold, suggestive, and very flirtatious",
	ToneSpicy:  "extremely spicy, bold, and confident with straight W-rizz",
}

var toneLabels = [...]string{
	ToneSubtle: "Subtle",
	ToneCasual: "Casual",
	ToneFlirty: "Flirty",
	ToneBold:   "Bold",
	ToneSpicy:  "Spicy",
}

// ParseToneLevel validates a raw slider value.
func ParseToneLevel(v int) (ToneLevel, error) {
	t := ToneLevel(v)
	if !t.Valid() {
		return 0, fmt.Errorf("tone must be between %d and %d, got %d", MinTone, MaxTone, v)
	}
	return t, nil
}

func (t ToneLevel) Valid() bool {
	return t >= MinTone && t <= MaxTone
}

// Descriptor returns the prompt phrase for the level. Out-of-range values clamp to the nearest end.
func (t ToneLevel) Descriptor() string {
	return toneDescriptors[t.clamp()]
}

// Label returns the short slider label.
func (t ToneLevel) Label() string {
	return toneLabels[t.clamp()]
}

func (t ToneLevel) clamp() ToneLevel {
	if t < MinTone {
		return MinTone
	}
	if t > MaxTone {
		return MaxTone
	}
	return t
}

// AllTones lists every level in ascending order.
func AllTones() []ToneLevel {
	return []ToneLevel{ToneSubtle, ToneCasual, ToneFlirty, ToneBold, ToneSpicy}
}
