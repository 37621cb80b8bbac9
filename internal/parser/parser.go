// Package parser turns markdown question files into ordered question
// lists. Questions are separated by ## / ### headers, numbered items, or
// **Question N** markers. Multiple-choice options use A)-D) style labels
// with the correct one marked bold, italic, "(correct)", "[correct]", or
// with a checkmark; fill-in-blank questions carry an "Answer:" line.
package parser

import (
	"regexp"
	"strings"

	"github.com/cjbarker/trivia-app/internal/domain"
)

var (
	splitPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\n##\s+`),
		regexp.MustCompile(`\n###\s+`),
		regexp.MustCompile(`\n\d+\.\s+`),
		regexp.MustCompile(`\n\*\*Question\s+\d+\*\*`),
	}

	titleOnly    = regexp.MustCompile(`^#[^#].*$`)
	headerPrefix = regexp.MustCompile(`^#{1,6}\s*`)

	questionPrefixes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(Question\s+\d+[:.]?\s*)`),
		regexp.MustCompile(`^\d+\.\s*`),
	}
	boldWrap = regexp.MustCompile(`^\*\*(.*?)\*\*`)

	optionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^[A-Da-d]\)\s+(.+)`),
		regexp.MustCompile(`^[1-4]\)\s+(.+)`),
		regexp.MustCompile(`^-\s*[A-Da-d][).]?\s+(.+)`),
		regexp.MustCompile(`^\*\s*[A-Da-d][).]?\s+(.+)`),
	}

	correctMarkers = []*regexp.Regexp{
		regexp.MustCompile(`\*\*.*?\*\*`),
		regexp.MustCompile(`_.*?_`),
		regexp.MustCompile(`(?i)\(correct\)`),
		regexp.MustCompile(`(?i)\[correct\]`),
		regexp.MustCompile(`✓`),
	}

	answerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^Answer:\s*(.+)`),
		regexp.MustCompile(`(?i)^Correct\s*Answer:\s*(.+)`),
		regexp.MustCompile(`(?i)^Solution:\s*(.+)`),
		regexp.MustCompile(`(?i)^\*\*Answer\*\*:\s*(.+)`),
		regexp.MustCompile(`(?i)^\*\*Answer:\s*(.+?)\*\*$`),
	}

	boldOnly        = regexp.MustCompile(`^\*\*(.*?)\*\*$`)
	trailingCorrect = regexp.MustCompile(`(?i)\s*[([]correct[)\]]\s*$`)
)

// Parse extracts questions from markdown content. Blocks that yield no
// question text are skipped.
func Parse(content string) []domain.Question {
	var questions []domain.Question
	for _, block := range splitBlocks(content) {
		if q, ok := parseBlock(block); ok {
			questions = append(questions, q)
		}
	}
	return questions
}

func splitBlocks(content string) []string {
	for _, pattern := range splitPatterns {
		if !pattern.MatchString(content) {
			continue
		}
		var blocks []string
		for _, block := range pattern.Split(content, -1) {
			block = strings.TrimSpace(block)
			// Drop empty blocks and the file's own title line.
			if block == "" || titleOnly.MatchString(block) {
				continue
			}
			blocks = append(blocks, block)
		}
		return blocks
	}
	if trimmed := strings.TrimSpace(content); trimmed != "" {
		return []string{trimmed}
	}
	return nil
}

func parseBlock(block string) (domain.Question, bool) {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return domain.Question{}, false
	}

	// The first block keeps its header marker because the splitter only
	// matches headers preceded by a newline.
	text := headerPrefix.ReplaceAllString(lines[0], "")
	for _, prefix := range questionPrefixes {
		text = prefix.ReplaceAllString(text, "")
	}
	text = boldWrap.ReplaceAllString(text, "$1")
	if text == "" {
		return domain.Question{}, false
	}

	if isMultipleChoice(lines) {
		return parseMultipleChoice(text, lines), true
	}
	return domain.Question{
		Text:          text,
		Type:          domain.FillInBlank,
		CorrectAnswer: findAnswerLine(lines),
	}, true
}

func isMultipleChoice(lines []string) bool {
	for _, line := range lines[1:] {
		for _, pattern := range optionPatterns {
			if pattern.MatchString(line) {
				return true
			}
		}
	}
	return false
}

func parseMultipleChoice(text string, lines []string) domain.Question {
	var options []string
	var correct string

	for _, line := range lines[1:] {
		var optionText string
		for _, pattern := range optionPatterns {
			if m := pattern.FindStringSubmatch(line); m != nil {
				optionText = strings.TrimSpace(m[1])
				break
			}
		}
		if optionText == "" {
			continue
		}
		clean := cleanOption(optionText)
		options = append(options, clean)
		if correct == "" && isMarkedCorrect(line) {
			correct = clean
		}
	}

	if correct == "" {
		correct = findAnswerLine(lines)
	}

	return domain.Question{
		Text:          text,
		Type:          domain.MultipleChoice,
		Options:       options,
		CorrectAnswer: correct,
	}
}

// cleanOption strips bold wrapping and correctness markers so the
// stored option text matches what players see and type.
func cleanOption(text string) string {
	text = boldOnly.ReplaceAllString(text, "$1")
	text = trailingCorrect.ReplaceAllString(text, "")
	text = strings.TrimSuffix(strings.TrimSpace(text), "✓")
	return strings.TrimSpace(text)
}

func isMarkedCorrect(line string) bool {
	for _, marker := range correctMarkers {
		if marker.MatchString(line) {
			return true
		}
	}
	return false
}

func findAnswerLine(lines []string) string {
	for _, line := range lines {
		for _, pattern := range answerPatterns {
			if m := pattern.FindStringSubmatch(line); m != nil {
				answer := strings.TrimSpace(m[1])
				return boldOnly.ReplaceAllString(answer, "$1")
			}
		}
	}
	return ""
}
