package relay

import (
	"github.com/samber/lo"

	"github.com/dskvich/game-analyst/pkg/domain"
)

const (
	entryTypeUser = "user"
	entryTypeBot  = "bot"
)

type HistoryEntry struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Request is the body accepted by the relay endpoint.
type Request struct {
	Message    string         `json:"message"`
	Messages   []HistoryEntry `json:"messages"`
	PDFContext string         `json:"pdfContext,omitempty"`
}

// Response carries either the answer or an error description.
type Response struct {
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

func EntriesFromTurns(turns []domain.Turn) []HistoryEntry {
	return lo.FilterMap(turns, func(t domain.Turn, _ int) (HistoryEntry, bool) {
		switch t.Role {
		case domain.RoleUser:
			return HistoryEntry{Type: entryTypeUser, Content: t.Text}, true
		case domain.RoleAssistant:
			return HistoryEntry{Type: entryTypeBot, Content: t.Text}, true
		default:
			return HistoryEntry{}, false
		}
	})
}

// TurnsFromEntries maps relay history back to turns, dropping unknown types.
func TurnsFromEntries(entries []HistoryEntry) []domain.Turn {
	return lo.FilterMap(entries, func(e HistoryEntry, _ int) (domain.Turn, bool) {
		switch e.Type {
		case entryTypeUser:
			return domain.Turn{Role: domain.RoleUser, Text: e.Content}, true
		case entryTypeBot:
			return domain.Turn{Role: domain.RoleAssistant, Text: e.Content}, true
		default:
			return domain.Turn{}, false
		}
	})
}
