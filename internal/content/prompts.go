package content

import "fmt"

// IdeaCount is the number of ideas requested per topic.
const IdeaCount = 5

// DraftPrompt asks for a short blog post with the given title.
func DraftPrompt(title string) string {
	return fmt.Sprintf("Write a short blog post with the title: %s", title)
}

// IdeasPrompt asks for blog post ideas about topic.
func IdeasPrompt(topic string) string {
	return fmt.Sprintf("Generate %d blog post ideas about: %s", IdeaCount, topic)
}
