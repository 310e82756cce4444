package domain

import "fmt"

type Turn struct {
	Role Role
	Text string
}

// CompletionRequest is built fresh for every call and never stored.
// DocumentExcerpt duplicates the excerpt already embedded in SystemPrompt so
// that relayed calls can forward it on its own.
type CompletionRequest struct {
	SystemPrompt    string
	Turns           []Turn
	NewUserText     string
	DocumentExcerpt string
}

func DocumentReceivedText(sourceName string) string {
	return fmt.Sprintf(documentReceivedFormat, sourceName)
}

func CompletionFailedText(err error) string {
	return fmt.Sprintf(completionFailedFormat, err)
}
