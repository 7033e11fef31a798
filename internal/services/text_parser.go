package services

import (
	"coordinate-converter-service/internal/domain"
	"errors"
	"fmt"
	"strings"
)

// ErrUnableToParse is matched by every *ParseError.
var ErrUnableToParse = errors.New("unable to parse the coordinate format")

// ParseError means a recognizer matched text it could not turn into numbers.
// The whole parse is abandoned; Text keeps the input for the user to correct.
type ParseError struct {
	Text   string
	Format domain.Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse text: %s recognizer: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrUnableToParse }

// recognizer finds every occurrence of one coordinate notation in text.
type recognizer struct {
	format domain.Format
	match  func(text string) ([]domain.ParsedMatch, error)
}

// Recognizer families in priority order. The first family with any result wins
// so a fragment is never reported under two interpretations.
var cascade = []recognizer{
	{domain.FormatDMS, matchDMS},
	{domain.FormatDMSDirectionFirst, matchDMSDirectionFirst},
	{domain.FormatDecimal, matchDecimal},
	{domain.FormatLabeled, matchLabeled},
	{domain.FormatDecimalMinutes, matchDecimalMinutes},
}

var typographicMarks = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"′", "'",
	"“", `"`,
	"”", `"`,
	"″", `"`,
	"º", "°",
)

// ParseText extracts coordinate pairs embedded in free-form text.
//
// An empty result with a nil error means nothing recognizable was found.
// A non-nil error is always a *ParseError.
func ParseText(text string) ([]domain.ParsedMatch, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []domain.ParsedMatch{}, nil
	}

	text = typographicMarks.Replace(text)

	for _, r := range cascade {
		matches, err := r.match(text)
		if err != nil {
			return nil, &ParseError{Text: text, Format: r.format, Err: err}
		}
		if len(matches) > 0 {
			return matches, nil
		}
	}

	return []domain.ParsedMatch{}, nil
}
