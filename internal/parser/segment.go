package parser

import (
	"strings"

	"pokervr-matchlog/internal/parser/extractors"
)

const handSeparator = "\n\n"

// Block is one hand's lines as they appeared in the log.
type Block struct {
	Index int
	Lines []string
}

// Segment splits a match log into hand blocks. Hands are separated by a blank
// line; empty blocks (a trailing separator, or runs of blank lines) are
// dropped. Each block's lines are trimmed and empty lines skipped.
func Segment(text string) ([]Block, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	if strings.TrimSpace(text) == "" {
		return nil, &extractors.LineError{Kind: extractors.ErrMalformedLog, Offset: -1, Reason: "log is empty"}
	}
	if !strings.Contains(text, handSeparator) {
		return nil, &extractors.LineError{Kind: extractors.ErrMalformedLog, Offset: -1, Reason: "log has no hand separator"}
	}

	raw := strings.Split(text, handSeparator)
	blocks := make([]Block, 0, len(raw))
	for _, chunk := range raw {
		lines := splitLines(chunk)
		if len(lines) == 0 {
			continue
		}
		blocks = append(blocks, Block{Index: len(blocks), Lines: lines})
	}
	if len(blocks) == 0 {
		return nil, &extractors.LineError{Kind: extractors.ErrMalformedLog, Offset: -1, Reason: "log holds no hands"}
	}
	return blocks, nil
}

func splitLines(chunk string) []string {
	parts := strings.Split(chunk, "\n")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	return lines
}
