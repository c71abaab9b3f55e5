package parser

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/conorfennell/smartlearner/internal/domain"
)

const (
	questionPrefix = "Q:"
	answerPrefix   = "A:"
	contextPrefix  = "C:"
	separator      = "---"
)

type state int

const (
	seeking state = iota
	readingQuestion
	readingAnswer
	readingContext
)

// ParseFile reads a markdown file and extracts all cards.
func ParseFile(path string) ([]domain.Card, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse extracts cards from Q:/A:/C: blocks. The question becomes the front
// and the answer the back; a context block is appended to the back after a
// blank line. Only text is filled in: callers schedule the cards.
func Parse(r io.Reader) ([]domain.Card, error) {
	scanner := bufio.NewScanner(r)
	var cards []domain.Card
	var question, answer, context string
	var block []string
	current := seeking

	flushBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.Join(block, "\n")
		switch current {
		case readingQuestion:
			question = content
		case readingAnswer:
			answer = content
		case readingContext:
			context = content
		}
		block = nil
	}

	finishCard := func() {
		flushBlock()
		if question != "" {
			back := strings.TrimRight(answer, "\n")
			if context != "" {
				back += "\n\n" + strings.TrimRight(context, "\n")
			}
			cards = append(cards, domain.Card{
				Front: domain.Field{Text: strings.TrimRight(question, "\n")},
				Back:  domain.Field{Text: back},
			})
		}
		question, answer, context = "", "", ""
		current = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		if line == separator {
			finishCard()
			continue
		}

		next, rest, ok := prefixed(line)
		if !ok {
			if current != seeking {
				block = append(block, line)
			}
			continue
		}

		if next == readingQuestion && current != seeking {
			// A new question always starts a new card.
			finishCard()
		}
		flushBlock()
		current = next
		block = append(block, rest)
	}

	finishCard()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

// prefixed reports which block a line opens and the text after its prefix.
func prefixed(line string) (state, string, bool) {
	for _, p := range []struct {
		prefix string
		state  state
	}{
		{questionPrefix, readingQuestion},
		{answerPrefix, readingAnswer},
		{contextPrefix, readingContext},
	} {
		if rest, ok := strings.CutPrefix(line, p.prefix); ok {
			return p.state, strings.TrimPrefix(rest, " "), true
		}
	}
	return seeking, "", false
}
