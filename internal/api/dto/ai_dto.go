package dto

// AIGenerateRequest payload for the generative relay.
type AIGenerateRequest struct {
	Prompt string `json:"prompt"`
}

// AIGenerateResponse wraps the generated text.
type AIGenerateResponse struct {
	Text string `json:"text"`
}
