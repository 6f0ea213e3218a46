// Package types provides type definitions for structured data used throughout the style-remixer system.
package types

// Dimension names one of the four style dimensions of a StyleMix.
type Dimension string

// Style dimensions, in the fixed order used for ranking ties.
const (
	DimensionStructure    Dimension = "structure"
	DimensionPerception   Dimension = "perception"
	DimensionMeaning      Dimension = "meaning"
	DimensionDistribution Dimension = "distribution"
)

// Dimensions lists every style dimension in canonical order.
// Ranking is stable over this order, so equal scores keep it.
var Dimensions = []Dimension{
	DimensionStructure,
	DimensionPerception,
	DimensionMeaning,
	DimensionDistribution,
}

// Label returns the bilingual display label used in plans and prompts.
func (d Dimension) Label() string {
	switch d {
	case DimensionStructure:
		return "结构（Structure）"
	case DimensionPerception:
		return "感知（Perception）"
	case DimensionMeaning:
		return "意义（Meaning）"
	case DimensionDistribution:
		return "传播（Distribution）"
	default:
		return string(d)
	}
}

// StyleMix holds the four non-negative style weights, conventionally 0-100.
// The weights are not required to sum to 100; the allocation engine re-normalizes them.
type StyleMix struct {
	Structure    float64 `json:"structure" yaml:"structure" validate:"gte=0,lte=100"`
	Perception   float64 `json:"perception" yaml:"perception" validate:"gte=0,lte=100"`
	Meaning      float64 `json:"meaning" yaml:"meaning" validate:"gte=0,lte=100"`
	Distribution float64 `json:"distribution" yaml:"distribution" validate:"gte=0,lte=100"`
}

// Get returns the weight for a dimension. Unknown dimensions weigh 0.
func (m StyleMix) Get(d Dimension) float64 {
	switch d {
	case DimensionStructure:
		return m.Structure
	case DimensionPerception:
		return m.Perception
	case DimensionMeaning:
		return m.Meaning
	case DimensionDistribution:
		return m.Distribution
	default:
		return 0
	}
}

// Total returns the sum of the four weights.
func (m StyleMix) Total() float64 {
	return m.Structure + m.Perception + m.Meaning + m.Distribution
}

// LanguageSkin holds the three tone sliders, each 0-100.
type LanguageSkin struct {
	SentenceLength float64 `json:"sentenceLength" yaml:"sentenceLength" validate:"gte=0,lte=100"`
	Abstraction    float64 `json:"abstraction" yaml:"abstraction" validate:"gte=0,lte=100"`
	Emotion        float64 `json:"emotion" yaml:"emotion" validate:"gte=0,lte=100"`
}

// Skin slider band thresholds. Values in [SkinLowThreshold, SkinHighThreshold] are the mid band.
const (
	SkinLowThreshold  = 40
	SkinHighThreshold = 70
)

// Band partitions a slider value into low / mid / high.
type Band int

// Slider bands.
const (
	BandLow Band = iota
	BandMid
	BandHigh
)

// BandOf returns the band a slider value falls into.
func BandOf(value float64) Band {
	switch {
	case value < SkinLowThreshold:
		return BandLow
	case value > SkinHighThreshold:
		return BandHigh
	default:
		return BandMid
	}
}

// ContentType is the kind of content being remixed. Only it affects allocation bias.
type ContentType string

// Content types.
const (
	ContentNews       ContentType = "news"
	ContentNovel      ContentType = "novel"
	ContentNonfiction ContentType = "nonfiction"
	ContentCommentary ContentType = "commentary"
	ContentAudio      ContentType = "audio"
)

// PrimaryGoal is carried through to the enhancement prompt; the engine ignores it.
type PrimaryGoal string

// Primary goals.
const (
	GoalClarity   PrimaryGoal = "clarity"
	GoalMoving    PrimaryGoal = "moving"
	GoalThinking  PrimaryGoal = "thinking"
	GoalViral     PrimaryGoal = "viral"
	GoalLongValue PrimaryGoal = "long_value"
)

// TaskMeta describes the remix task.
type TaskMeta struct {
	ContentType ContentType `json:"contentType" yaml:"contentType" validate:"omitempty,oneof=news novel nonfiction commentary audio"`
	PrimaryGoal PrimaryGoal `json:"primaryGoal" yaml:"primaryGoal" validate:"omitempty,oneof=clarity moving thinking viral long_value"`
	Audience    float64     `json:"audience" yaml:"audience" validate:"gte=0,lte=100"`
}

// DefaultMix is the mix used when no style is supplied.
func DefaultMix() StyleMix {
	return StyleMix{Structure: 72, Perception: 58, Meaning: 52, Distribution: 34}
}

// DefaultSkin is the skin used when no style is supplied.
func DefaultSkin() LanguageSkin {
	return LanguageSkin{SentenceLength: 56, Abstraction: 48, Emotion: 32}
}

// DefaultTask is the task used when no style is supplied.
func DefaultTask() TaskMeta {
	return TaskMeta{ContentType: ContentNews, PrimaryGoal: GoalClarity, Audience: 55}
}
