package emotion

import "strings"

// Label 은 프론트엔드와 공유하는 감정 라벨.
type Label string

const (
	Neutral Label = "neutral"
	Happy   Label = "happy"
	Sad     Label = "sad"
	Angry   Label = "angry"
)

// Result carries the classified emotion with the stub confidence figures.
type Result struct {
	Emotion    Label
	Confidence float32
	Intensity  float32
}

// The classifier is keyword-based until a real sentiment model ships with
// the agent service. Confidence and intensity are therefore constants.
const (
	defaultConfidence = 0.8
	defaultIntensity  = 0.7
)

// keywordBuckets holds trigger substrings per emotion. Order matters:
// buckets are checked in the order listed and the first hit wins.
var keywordBuckets = []struct {
	label    Label
	keywords []string
}{
	{Happy, []string{"기쁘", "좋"}},
	{Sad, []string{"슬프", "우울"}},
	{Angry, []string{"화나", "분노"}},
}

// Analyze classifies the text into one of the four labels.
func Analyze(text string) Result {
	for _, bucket := range keywordBuckets {
		for _, word := range bucket.keywords {
			if strings.Contains(text, word) {
				return Result{Emotion: bucket.label, Confidence: defaultConfidence, Intensity: defaultIntensity}
			}
		}
	}
	return Result{Emotion: Neutral, Confidence: defaultConfidence, Intensity: defaultIntensity}
}
