package lessons

import (
	"encoding/json"
	"strings"

	"github.com/abhisek/essence/internal/insight"
)

const lessonSystemPrompt = `You are an expert cultural educator who creates accurate, engaging, and respectful educational content about world cultures.`

// lessonPromptTemplate uses {{topic}} and {{insights}} placeholders.
const lessonPromptTemplate = `You are a world-class cultural education expert and instructional designer. Based on the cultural topic "{{topic}}" and the following cultural insights, create a comprehensive, engaging educational lesson.

Cultural Insights: {{insights}}

Create a lesson that is:
- Culturally sensitive and accurate
- Engaging for adult learners
- Educational and informative
- Well-structured with clear learning objectives

Respond with ONLY valid JSON in this exact format:
{
  "title": "{{topic}}",
  "summary": "A compelling 2-3 sentence summary that captures the essence and importance of {{topic}}",
  "studyGuide": {
    "keyFacts": [
      "5 important, specific facts about {{topic}} that learners should know",
      "Each fact should be concise but informative",
      "Focus on historical, cultural, and social significance",
      "Include practical applications or modern relevance",
      "Make facts memorable and engaging"
    ],
    "keyTerms": [
      {
        "term": "Important cultural term related to {{topic}}",
        "definition": "Clear, accessible definition that explains significance"
      },
      {
        "term": "Another key concept",
        "definition": "Another clear definition with cultural context"
      },
      {
        "term": "Third important term",
        "definition": "Definition that helps understand the practice/tradition"
      }
    ],
    "timeline": [
      {
        "period": "Ancient/Early period",
        "event": "Key historical development or origin of {{topic}}"
      },
      {
        "period": "Medieval/Classical period",
        "event": "Important evolution or milestone"
      },
      {
        "period": "Modern period",
        "event": "Contemporary development or current state"
      }
    ]
  },
  "flashcards": [
    {
      "term": "Key concept about {{topic}}",
      "definition": "Clear, memorable definition for spaced repetition learning"
    }
  ],
  "quiz": [
    {
      "question": "Engaging multiple choice question about {{topic}}",
      "options": ["Correct answer", "Plausible distractor", "Another distractor", "Third distractor"],
      "correctAnswer": "Correct answer",
      "explanation": "Clear explanation of why this answer is correct and educational context",
      "difficulty": "easy"
    }
  ]
}

Requirements:
- Create exactly 5 flashcards covering different aspects of {{topic}}
- Create exactly 8 quiz questions: 3 easy, 3 medium, 2 hard
- Every question has exactly 4 options and correctAnswer is copied verbatim from the options
- Make content culturally accurate and respectful
- Ensure educational value and engagement
- Use clear, accessible language
- Include both historical and contemporary perspectives`

// buildLessonUserMessage renders the prompt for topic, embedding the
// insights as indented JSON or a generic line when there are none.
func buildLessonUserMessage(topic string, insights []insight.Insight) string {
	context := "General information about " + topic
	if len(insights) > 0 {
		if b, err := json.MarshalIndent(insights, "", "  "); err == nil {
			context = string(b)
		}
	}

	r := strings.NewReplacer("{{topic}}", topic, "{{insights}}", context)
	return r.Replace(lessonPromptTemplate)
}
