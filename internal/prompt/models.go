package prompt

// WishPromptData holds variables for the wish parser prompt template.
type WishPromptData struct {
	Text string
}
