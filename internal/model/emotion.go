package model

import (
	"fmt"
	"sort"
	"strings"
)

type EmotionType string

const (
	EmotionHappy   EmotionType = "HAPPY"
	EmotionGloomy  EmotionType = "GLOOMY"
	EmotionAngry   EmotionType = "ANGRY"
	EmotionAnxious EmotionType = "ANXIOUS"

	// EmotionUnknown is only used to look up the fallback icon. It is never stored on an entry.
	EmotionUnknown EmotionType = "UNKNOWN"
)

var EmotionTypes = []EmotionType{EmotionHappy, EmotionGloomy, EmotionAngry, EmotionAnxious}

func (e EmotionType) Valid() bool {
	for _, t := range EmotionTypes {
		if e == t {
			return true
		}
	}
	return false
}

func ParseEmotionType(s string) (EmotionType, error) {
	e := EmotionType(strings.ToUpper(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", fmt.Errorf("emotionType must be one of %s", joinEmotions(EmotionTypes))
	}
	return e, nil
}

// SortEmotions returns a deduplicated, alphabetically sorted copy.
func SortEmotions(emotions []EmotionType) []EmotionType {
	seen := make(map[EmotionType]struct{}, len(emotions))
	out := make([]EmotionType, 0, len(emotions))
	for _, e := range emotions {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func joinEmotions(emotions []EmotionType) string {
	s := make([]string, len(emotions))
	for i, e := range emotions {
		s[i] = string(e)
	}
	return strings.Join(s, ", ")
}

type RewardStyle string

const (
	StyleWatercolor   RewardStyle = "WATERCOLOR"
	StyleCrayon       RewardStyle = "CRAYON"
	StylePastel       RewardStyle = "PASTEL"
	StylePixelArt     RewardStyle = "PIXEL_ART"
	StylePencilSketch RewardStyle = "PENCIL_SKETCH"
	StyleOilPainting  RewardStyle = "OIL_PAINTING"
)

var RewardStyles = []RewardStyle{
	StyleWatercolor, StyleCrayon, StylePastel, StylePixelArt, StylePencilSketch, StyleOilPainting,
}

func (s RewardStyle) Valid() bool {
	for _, style := range RewardStyles {
		if s == style {
			return true
		}
	}
	return false
}
