package mosaic

// Course is a preset mosaic offered on the courses page.
type Course struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Courses returns the preset courses. The title doubles as the lesson
// topic.
func Courses() []Course {
	return []Course{
		{ID: 1, Title: "Japanese Tea Ceremony", Description: "Traditional Japanese tea ceremony and its cultural significance", Image: "/japan.svg"},
		{ID: 2, Title: "Italian Renaissance Art", Description: "Explore the masterpieces and cultural impact of Renaissance Italy", Image: "/italian.jpg"},
		{ID: 3, Title: "Mexican Day of the Dead", Description: "Understanding Día de los Muertos traditions and celebrations", Image: "/mexican.jpg"},
		{ID: 4, Title: "Indian Classical Dance", Description: "Learn about Bharatanatyam and its spiritual significance", Image: "/indian.svg"},
	}
}
