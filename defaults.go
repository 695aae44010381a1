package storybook

// defaultStories are shown whenever no story has been persisted yet.
// They are never written to the backend.
var defaultStories = []Story{
	{
		ID:         1,
		Name:       "Elena",
		Country:    "Italy",
		Age:        AgeOf(42),
		Sex:        "female",
		Experience: "The summer I learned to sail alone. No engine, no GPS, just the wind and my own judgment. Three weeks on the Mediterranean taught me that fear and freedom are the same door—you just have to choose which way to walk through it.",
		Fear:       "That I'll wake up at 80 and realize I spent my whole life preparing for a moment that never came. That safety was just another word for standing still.",
		CreatedAt:  MustParseTimestamp("2024-03-15T10:30:00.000Z"),
		IsDefault:  true,
	},
	{
		ID:         2,
		Name:       "Marcus",
		Country:    "Canada",
		Age:        AgeOf(29),
		Sex:        "male",
		Experience: "Holding my daughter for the first time. In that moment, every selfish thing I'd ever done made sense—it was all just practice for learning how to love someone more than myself.",
		Fear:       "Not being there when she needs me most. Missing the moments that matter because I was chasing moments that don't.",
		CreatedAt:  MustParseTimestamp("2024-05-22T14:15:00.000Z"),
		IsDefault:  true,
	},
	{
		ID:         3,
		Name:       "Yuki",
		Country:    "Japan",
		Age:        AgeOf(35),
		Sex:        "female",
		Experience: "Quitting my corporate job to become a ceramicist. Everyone said I was throwing away my future. But the first time I sold a piece I'd made with my own hands, I understood—I wasn't throwing anything away. I was finally picking myself up.",
		Fear:       "Conformity. Becoming so comfortable with other people's expectations that I forget I ever had my own dreams.",
		CreatedAt:  MustParseTimestamp("2024-02-08T09:45:00.000Z"),
		IsDefault:  true,
	},
	{
		ID:         4,
		Name:       "Samuel",
		Country:    "Nigeria",
		Age:        AgeOf(56),
		Sex:        "male",
		Experience: `Forgiving my father on his deathbed. Thirty years of silence, and in the end, all it took was five words: "I understand now. Thank you." The weight I'd been carrying wasn't his to remove. It was mine to set down.`,
		Fear:       "Passing down the same wounds I inherited. Breaking the cycle requires seeing it first, and some days I'm not sure I can see clearly enough.",
		CreatedAt:  MustParseTimestamp("2024-01-30T16:20:00.000Z"),
		IsDefault:  true,
	},
	{
		ID:         5,
		Name:       "Astrid",
		Country:    "Norway",
		Age:        AgeOf(24),
		Sex:        "female",
		Experience: "Surviving a avalanche while hiking alone. For three hours under the snow, I had nothing but my breath and my thoughts. When they pulled me out, colors looked different. Food tasted different. I'd gift anyone that clarity—without the avalanche.",
		Fear:       "Wasting the second chance. Going back to sleep when I've finally woken up. Letting the ordinary make me forget how extraordinary it is to be alive.",
		CreatedAt:  MustParseTimestamp("2024-04-11T11:00:00.000Z"),
		IsDefault:  true,
	},
}

// DefaultStories returns a copy of the fallback stories, in their fixed order
func DefaultStories() []Story {
	out := make([]Story, len(defaultStories))
	copy(out, defaultStories)
	return out
}

// DefaultStory returns the first fallback story
func DefaultStory() Story {
	return defaultStories[0]
}
