package lessons

import "fmt"

// MockContent returns the deterministic lesson used whenever generation is
// unavailable or its output fails validation. The topic appears in the
// summary, the key facts and the flashcard terms.
func MockContent(topic string) Content {
	return Content{
		Title:   topic,
		Summary: fmt.Sprintf("%s is a fascinating cultural tradition that has been practiced for centuries. This ancient art form encompasses various aspects of cultural life, from ceremonial practices to daily rituals. Understanding %s gives us insight into the values, beliefs, and artistic expressions of its culture.", topic, topic),
		StudyGuide: StudyGuide{
			KeyFacts: []string{
				fmt.Sprintf("%s has ancient origins dating back centuries", topic),
				"This cultural practice involves specific rituals and ceremonies",
				"It holds deep spiritual and social significance",
				"The tradition has evolved while maintaining core elements",
				"It continues to influence modern cultural expressions",
			},
			KeyTerms: []Term{
				{Term: topic + " Master", Definition: fmt.Sprintf("A skilled practitioner who has dedicated years to mastering %s", topic)},
				{Term: "Cultural Heritage", Definition: "The legacy of cultural practices passed down through generations"},
				{Term: "Ritualistic Elements", Definition: "The ceremonial components that give cultural practices their meaning"},
			},
			Timeline: []TimelineEntry{
				{Period: "Ancient Times", Event: fmt.Sprintf("%s first developed as a cultural practice", topic)},
				{Period: "Modern Era", Event: fmt.Sprintf("%s adapted to contemporary society while preserving traditions", topic)},
			},
		},
		Flashcards: []Term{
			{Term: topic + " Origins", Definition: fmt.Sprintf("The historical background and cultural significance of %s", topic)},
			{Term: "Cultural Practice", Definition: "The traditional methods and customs associated with this cultural element"},
			{Term: "Modern Relevance", Definition: "How this tradition continues to influence contemporary culture"},
			{Term: "Sacred Elements", Definition: "The spiritual and ceremonial aspects of the cultural practice"},
			{Term: "Community Impact", Definition: "How this cultural tradition affects and unites communities"},
		},
		Quiz: mockQuiz(topic),
	}
}

func mockQuiz(topic string) []Question {
	return []Question{
		{
			Question:      fmt.Sprintf("What is the primary cultural significance of %s?", topic),
			Options:       []string{"Spiritual and ceremonial importance", "Economic benefits only", "Entertainment purposes", "Political control"},
			CorrectAnswer: "Spiritual and ceremonial importance",
			Explanation:   "Most traditional cultural practices have deep spiritual and ceremonial roots",
			Difficulty:    Easy,
		},
		{
			Question:      fmt.Sprintf("How has %s evolved in modern times?", topic),
			Options:       []string{"It has completely disappeared", "It remains exactly the same", "It has adapted while keeping core traditions", "It is only practiced by tourists"},
			CorrectAnswer: "It has adapted while keeping core traditions",
			Explanation:   "Cultural traditions typically evolve and adapt while maintaining their essential character",
			Difficulty:    Easy,
		},
		{
			Question:      fmt.Sprintf("What role does %s play in community building?", topic),
			Options:       []string{"It divides communities", "It has no social impact", "It brings people together through shared experiences", "It only affects individual practitioners"},
			CorrectAnswer: "It brings people together through shared experiences",
			Explanation:   "Cultural practices often serve as bonding experiences that strengthen community ties",
			Difficulty:    Easy,
		},
		{
			Question:      fmt.Sprintf("Which aspect is most important for preserving %s?", topic),
			Options:       []string{"Commercial exploitation", "Passing knowledge to younger generations", "Modernizing all traditional elements", "Restricting access to outsiders"},
			CorrectAnswer: "Passing knowledge to younger generations",
			Explanation:   "Cultural preservation depends on intergenerational knowledge transfer",
			Difficulty:    Medium,
		},
		{
			Question:      fmt.Sprintf("What distinguishes authentic %s from superficial imitations?", topic),
			Options:       []string{"Higher price points", "Modern equipment usage", "Deep understanding of cultural context and meaning", "Celebrity endorsements"},
			CorrectAnswer: "Deep understanding of cultural context and meaning",
			Explanation:   "Authenticity in cultural practices comes from genuine understanding and respect for traditions",
			Difficulty:    Medium,
		},
		{
			Question:      fmt.Sprintf("How do practitioners typically achieve mastery in %s?", topic),
			Options:       []string{"Through online courses only", "Years of dedicated practice and mentorship", "Reading books exclusively", "Watching videos"},
			CorrectAnswer: "Years of dedicated practice and mentorship",
			Explanation:   "Traditional cultural mastery requires long-term commitment and guidance from experienced practitioners",
			Difficulty:    Medium,
		},
		{
			Question:      fmt.Sprintf("What is the most complex aspect of %s that scholars still debate?", topic),
			Options:       []string{"Its commercial value", "Its origins and earliest forms", "Its entertainment value", "Its modern applications"},
			CorrectAnswer: "Its origins and earliest forms",
			Explanation:   "The deepest historical roots of cultural practices often involve scholarly debate and ongoing research",
			Difficulty:    Hard,
		},
		{
			Question:      fmt.Sprintf("Which factor most threatens the continuation of traditional %s?", topic),
			Options:       []string{"Too much academic study", "Lack of interest from younger generations", "Government support", "International recognition"},
			CorrectAnswer: "Lack of interest from younger generations",
			Explanation:   "Cultural traditions face their greatest threat when younger generations lose interest and connection",
			Difficulty:    Hard,
		},
	}
}
