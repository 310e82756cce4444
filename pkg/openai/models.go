package openai

import goopenai "github.com/sashabaranov/go-openai"

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"

	Temperature = 0.7
	MaxTokens   = 1000
)

const (
	chatMessageRoleSystem    = goopenai.ChatMessageRoleSystem
	chatMessageRoleUser      = goopenai.ChatMessageRoleUser
	chatMessageRoleAssistant = goopenai.ChatMessageRoleAssistant
)

const genericProviderFailure = "Failed to get response from ChatGPT"
