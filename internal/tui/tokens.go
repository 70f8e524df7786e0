package tui

// j1ContextTokens is the Jurassic-1 context window, prompt plus completion
const j1ContextTokens = 2048

// estimateTokens returns approximate token count (~4 chars per token)
func estimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// promptBudget reports the estimated prompt size and whether it leaves
// room for a completion of maxCompletion tokens.
func promptBudget(prompt string, maxCompletion int) (tokens int, fits bool) {
	tokens = estimateTokens(prompt)
	return tokens, tokens+maxCompletion <= j1ContextTokens
}
