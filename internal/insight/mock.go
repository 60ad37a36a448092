package insight

import "fmt"

// MockInsights returns the deterministic insights used when the service is
// unavailable.
func MockInsights(topic string) []Insight {
	return []Insight{
		{
			Name:        fmt.Sprintf("%s Cultural Heritage", topic),
			Description: fmt.Sprintf("Deep exploration of %s traditions and cultural significance", topic),
			Category:    "heritage",
			Confidence:  0.9,
		},
		{
			Name:        fmt.Sprintf("%s Modern Practices", topic),
			Description: fmt.Sprintf("Contemporary expressions and evolution of %s", topic),
			Category:    "contemporary",
			Confidence:  0.8,
		},
		{
			Name:        fmt.Sprintf("%s Historical Context", topic),
			Description: fmt.Sprintf("Historical development and cultural impact of %s", topic),
			Category:    "historical",
			Confidence:  0.9,
		},
	}
}

// DefaultRecommendations is the static list served when recommendations
// cannot be fetched.
func DefaultRecommendations() []Topic {
	return []Topic{
		{Title: "Japanese Tea Ceremony", Description: "Traditional Japanese cultural practice", Confidence: 0.8},
		{Title: "Italian Renaissance Art", Description: "Masterpieces of Renaissance Italy", Confidence: 0.9},
		{Title: "Indian Classical Dance", Description: "Sacred dance traditions of India", Confidence: 0.8},
		{Title: "Mexican Day of the Dead", Description: "Día de los Muertos celebrations", Confidence: 0.9},
		{Title: "Chinese Calligraphy", Description: "Ancient art of Chinese writing", Confidence: 0.7},
		{Title: "African Storytelling", Description: "Oral traditions of Africa", Confidence: 0.8},
	}
}

// DefaultTrending is the static list served when trending topics cannot be
// fetched.
func DefaultTrending() []Topic {
	return []Topic{
		{Title: "K-Pop Culture", Description: "South Korean pop culture phenomenon", Popularity: 0.95},
		{Title: "Mindfulness Meditation", Description: "Buddhist mindfulness practices", Popularity: 0.88},
		{Title: "Street Art Culture", Description: "Urban artistic expression", Popularity: 0.82},
		{Title: "Sustainable Living", Description: "Eco-conscious lifestyle practices", Popularity: 0.87},
		{Title: "Digital Nomadism", Description: "Remote work cultural movement", Popularity: 0.79},
		{Title: "Plant-Based Cuisine", Description: "Vegetarian culinary traditions", Popularity: 0.84},
		{Title: "Indigenous Wisdom", Description: "Traditional ecological knowledge", Popularity: 0.86},
		{Title: "Tiny House Movement", Description: "Minimalist living philosophy", Popularity: 0.78},
	}
}
