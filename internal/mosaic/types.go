package mosaic

import (
	"time"

	"github.com/abhisek/essence/internal/images"
	"github.com/abhisek/essence/internal/insight"
	"github.com/abhisek/essence/internal/lessons"
)

// DefaultHeroImage is used when a lesson has no images.
const DefaultHeroImage = "/feature.svg"

// Lesson is one generated cultural unit. It is immutable once returned.
type Lesson struct {
	Topic string `json:"topic"`
	lessons.Content

	Images           []images.Image    `json:"images"`
	HeroImage        string            `json:"heroImage"`
	CulturalInsights []insight.Insight `json:"culturalInsights"`
	Metadata         Metadata          `json:"metadata"`
}

// Metadata records when and from which sources a lesson was built.
type Metadata struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Sources     Sources   `json:"apiSources"`

	// Fallback is set when the pipeline itself failed and the whole lesson
	// is mock content.
	Fallback bool `json:"fallback,omitempty"`
}

// Sources reports which data sources returned live data.
type Sources struct {
	Insight        bool `json:"insight"`
	TextGeneration bool `json:"textGeneration"`
	Images         bool `json:"images"`
}
