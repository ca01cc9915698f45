package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/verbapilot/internal/export"
	"github.com/at-ishikawa/verbapilot/internal/language"
	"github.com/at-ishikawa/verbapilot/internal/phrase"
	"github.com/at-ishikawa/verbapilot/internal/quiz"
)

// NoHitsMessage is shown when no known expression occurs in the text.
const NoHitsMessage = "No idioms or slang from our list were found."

var (
	headingColor = color.New(color.Bold, color.FgCyan)
	phraseColor  = color.New(color.Bold)
	labelColor   = color.New(color.Faint)
)

// RenderTranslation prints every target of report followed by the expressions it contains.
func RenderTranslation(w io.Writer, report export.Report) {
	if report.SourceLanguage != "" {
		_, _ = labelColor.Fprintf(w, "Source language: %s\n", report.SourceLanguage)
	}
	for i, t := range report.Targets {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		title := t.Language
		if t.Name != "" {
			title = fmt.Sprintf("%s (%s)", t.Name, t.Language)
		}
		_, _ = headingColor.Fprintln(w, title)
		_, _ = fmt.Fprintln(w, t.Text)
	}
	_, _ = fmt.Fprintln(w)
	RenderHits(w, report.Expressions)
}

func RenderHits(w io.Writer, hits []phrase.Entry) {
	if len(hits) == 0 {
		_, _ = fmt.Fprintln(w, NoHitsMessage)
		return
	}
	_, _ = headingColor.Fprintln(w, "Idioms and slang")
	for _, hit := range hits {
		_, _ = fmt.Fprintf(w, "- %s %s %s\n",
			phraseColor.Sprint(hit.Phrase),
			labelColor.Sprintf("[%s]", hit.Category),
			hit.Meaning,
		)
	}
}

func RenderLanguages(w io.Writer, languages []language.Language) {
	width := 0
	for _, l := range languages {
		width = max(width, len(l.Code))
	}
	for _, l := range languages {
		_, _ = fmt.Fprintf(w, "%-*s  %s\n", width, l.Code, l.Name)
	}
}

// RenderChallengeResult prints the score, the reference translations and the running XP total.
func RenderChallengeResult(w io.Writer, round *quiz.Round, result quiz.Result, totalXP int) {
	_, _ = fmt.Fprintln(w)
	line := result.Summary()
	if result.Correct == result.Total {
		_, _ = color.New(color.FgGreen, color.Bold).Fprintln(w, line)
	} else {
		_, _ = color.New(color.FgYellow, color.Bold).Fprintln(w, line)
	}

	for i, item := range round.Items {
		mark := "\u274C"
		// items past the end of the reference have nothing to match
		if i < len(result.Gold) && quiz.Score([]string{item.Answer}, []string{item.Gold}) == 1 {
			mark = "\u2705"
		}
		answer := item.Answer
		if strings.TrimSpace(answer) == "" {
			answer = "(no answer)"
		}
		_, _ = fmt.Fprintf(w, "%s %d. %s\n     correct: %s\n     yours:   %s\n",
			mark, i+1, item.Phrase, phraseColor.Sprint(item.Gold), answer)
	}
	_, _ = fmt.Fprintf(w, "XP: %d\n", totalXP)
}

// RenderXP prints the persisted total.
func RenderXP(w io.Writer, rounds int, totalXP int) {
	_, _ = fmt.Fprintf(w, "Rounds played: %d\nTotal XP: %s\n", rounds, phraseColor.Sprint(totalXP))
}

func trimLine(line string) string {
	return strings.TrimSpace(line)
}
