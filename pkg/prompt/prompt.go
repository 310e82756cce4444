// Package prompt turns conversation state into a completion request.
package prompt

import (
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dskvich/game-analyst/pkg/domain"
)

const (
	// HistoryWindow is how many committed messages are sent as prior turns.
	HistoryWindow = 10
	// MaxDocumentChars bounds the document excerpt. The excerpt is a prefix,
	// so whatever sits past the budget never reaches the model.
	MaxDocumentChars = 8000
)

const documentPreamble = "\n\nAdditionally, the user has uploaded a PDF document with the following content " +
	"that you should reference when answering questions about the document:\n\n"

var analystFacts = buildAnalystFacts(domain.TopGames, domain.GenreDistribution)

func buildAnalystFacts(games []domain.Game, genres []domain.GenreShare) string {
	p := message.NewPrinter(language.English)

	var sb strings.Builder
	sb.WriteString("You are a Gaming AI Analyst expert. You have access to gaming data showing:\n\n")
	sb.WriteString("Top PC Games Data:\n")
	for _, g := range games {
		p.Fprintf(&sb, "%d. %s: %d hours average playtime, %d/100 rating, %s players, %s genre\n",
			g.Rank, g.Name, g.AvgPlaytimeHours, g.Rating, g.Players, g.Genre)
	}

	shares := lo.Map(genres, func(g domain.GenreShare, _ int) string {
		return p.Sprintf("%s (%d%%)", g.Genre, g.Percent)
	})
	sb.WriteString("\nGenre Distribution: " + strings.Join(shares, ", ") + "\n\n")
	sb.WriteString("Provide detailed, insightful analysis about gaming trends, game comparisons, and recommendations. " +
		"Be enthusiastic about gaming while providing data-driven insights.")

	return sb.String()
}

// Excerpt returns at most MaxDocumentChars characters from the start of text.
func Excerpt(text string) string {
	if len(text) <= MaxDocumentChars {
		return text
	}

	runes := []rune(text)
	if len(runes) <= MaxDocumentChars {
		return text
	}
	return string(runes[:MaxDocumentChars])
}

// SystemPrompt is the analyst facts block, followed by the excerpt when one is given.
func SystemPrompt(excerpt string) string {
	if strings.TrimSpace(excerpt) == "" {
		return analystFacts
	}
	return analystFacts + documentPreamble + excerpt
}

// Window keeps the last HistoryWindow messages, oldest first, as turns.
// Messages with an unknown role are dropped.
func Window(history []domain.Message) []domain.Turn {
	recent := lo.Subset(history, -HistoryWindow, HistoryWindow)

	return lo.FilterMap(recent, func(m domain.Message, _ int) (domain.Turn, bool) {
		switch m.Role {
		case domain.RoleUser, domain.RoleAssistant:
			return domain.Turn{Role: m.Role, Text: m.Text}, true
		default:
			return domain.Turn{}, false
		}
	})
}

// Compose builds a request from already windowed turns and raw document text.
func Compose(documentText string, prior []domain.Turn, newUserText string) domain.CompletionRequest {
	excerpt := Excerpt(documentText)
	if strings.TrimSpace(excerpt) == "" {
		excerpt = ""
	}

	return domain.CompletionRequest{
		SystemPrompt:    SystemPrompt(excerpt),
		Turns:           prior,
		NewUserText:     newUserText,
		DocumentExcerpt: excerpt,
	}
}

// Assemble builds the request for newUserText. The new text must not already
// be part of state.History; it is sent as the final turn only.
func Assemble(state domain.ConversationState, newUserText string) domain.CompletionRequest {
	var documentText string
	if state.Document != nil {
		documentText = state.Document.RawText
	}

	return Compose(documentText, Window(state.History), newUserText)
}
