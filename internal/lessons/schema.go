package lessons

import "github.com/abhisek/essence/internal/llm"

var termSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"term":       map[string]any{"type": "string"},
		"definition": map[string]any{"type": "string"},
	},
	"required":             []any{"term", "definition"},
	"additionalProperties": false,
}

// LessonSchema defines the JSON schema for cultural lesson generation.
var LessonSchema = &llm.Schema{
	Name:        "cultural-lesson",
	Description: "A cultural lesson with summary, study guide, flashcards and an 8-question quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "The lesson topic",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "A compelling 2-3 sentence summary of the topic",
			},
			"studyGuide": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"keyFacts": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"keyTerms": map[string]any{
						"type":  "array",
						"items": termSchema,
					},
					"timeline": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"period": map[string]any{"type": "string"},
								"event":  map[string]any{"type": "string"},
							},
							"required":             []any{"period", "event"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"keyFacts", "keyTerms", "timeline"},
				"additionalProperties": false,
			},
			"flashcards": map[string]any{
				"type":     "array",
				"items":    termSchema,
				"minItems": FlashcardCount,
				"maxItems": FlashcardCount,
			},
			"quiz": map[string]any{
				"type":     "array",
				"minItems": QuizLength,
				"maxItems": QuizLength,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"correctAnswer": map[string]any{"type": "string"},
						"explanation":   map[string]any{"type": "string"},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{string(Easy), string(Medium), string(Hard)},
						},
					},
					"required":             []any{"question", "options", "correctAnswer", "explanation", "difficulty"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "summary", "studyGuide", "flashcards", "quiz"},
		"additionalProperties": false,
	},
}
