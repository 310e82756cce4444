// Package extractor recovers a rough plain-text view of an uploaded document.
//
// It is a byte-range heuristic, not a PDF parser: only literal runs of
// printable ASCII survive. Text inside compressed object streams, text drawn
// with custom font encodings and any page structure are lost. Callers needing
// faithful extraction must swap in a structural parser.
package extractor

import (
	"strings"

	"github.com/dskvich/game-analyst/pkg/domain"
)

// MinTextLength is the shortest result still considered readable.
const MinTextLength = 50

// Extract scans every byte of data, keeps printable ASCII, maps line breaks to
// spaces and collapses whitespace. It fails with *domain.ExtractionError when
// fewer than MinTextLength characters remain.
func Extract(data []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(data))

	pendingSpace := false
	for _, b := range data {
		switch {
		case b == ' ' || b == '\n' || b == '\r':
			pendingSpace = true
		case b > ' ' && b <= '~':
			if pendingSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			pendingSpace = false
			sb.WriteByte(b)
		}
	}

	text := sb.String()
	if len(text) < MinTextLength {
		return "", &domain.ExtractionError{Length: len(text), Min: MinTextLength}
	}

	return text, nil
}
