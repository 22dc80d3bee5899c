package relay

import "encoding/json"

// Message is one turn of a conversation in the upstream wire format (role + parts).
// It is forwarded as-is and never inspected.
type Message = json.RawMessage

// AskRequest is what the browser client posts to /ask.
// Exactly one of Prompt or Contents is expected.
type AskRequest struct {
	Prompt   string    `json:"prompt,omitempty"`
	Contents []Message `json:"contents,omitempty"`
}

// AskResponse is the single answer sent back to the client.
type AskResponse struct {
	Text string `json:"text"`
}

// UpstreamRequest is the generateContent body.
type UpstreamRequest struct {
	Contents          []Message         `json:"contents"`
	SystemInstruction SystemInstruction `json:"system_instruction"`
	GenerationConfig  GenerationConfig  `json:"generationConfig"`
}

// SystemInstruction carries the persona text injected into every request.
type SystemInstruction struct {
	Parts []TextPart `json:"parts"`
}

type TextPart struct {
	Text string `json:"text"`
}

type GenerationConfig struct {
	ThinkingConfig ThinkingConfig `json:"thinking_config"`
}

type ThinkingConfig struct {
	ThinkingLevel string `json:"thinking_level"`
}

// userMessage is the shape a bare prompt is wrapped into.
type userMessage struct {
	Role  string     `json:"role"`
	Parts []TextPart `json:"parts"`
}
