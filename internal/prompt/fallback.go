package prompt

import "fmt"

// FallbackWishPrompt is the hand-assembled variant of the wish parser prompt,
// used when the template cannot be rendered.
func FallbackWishPrompt(data WishPromptData) string {
	return fmt.Sprintf(`You are a parser for a Hindu baby-name discovery site.
Parse the user's naming request into JSON with these exact keys:
gender: "boy" | "girl" | "unisex",
syllables: number | null,
deity: "None" | "Vishnu" | "Shiva" | "Devi" | "Ganesha" | "Murugan" | "Rama" | "Krishna" | "Multiple",
sources: string[] (from: Vedas, Upanishads, Puranas, Epics, Sahasranama, Regional, Sanskrit),
startLetters: string[] (capitalized name fragments in order of appearance),
vibe: "soft" | "strong" | "any",
raw: string (the original text unchanged)

User request:
"%s"

Return only valid JSON.`, data.Text)
}
