// Package quiz scores translation challenges and manages challenge rounds.
package quiz

import "strings"

// XPPerCorrect is the experience awarded for each correct answer.
const XPPerCorrect = 10

// Score counts the answers equal to their gold translation after trimming and case folding.
// Answers and gold are paired by position; the longer list's tail is ignored.
func Score(answers, gold []string) int {
	n := min(len(answers), len(gold))
	correct := 0
	for i := 0; i < n; i++ {
		if normalizeAnswer(answers[i]) == normalizeAnswer(gold[i]) {
			correct++
		}
	}
	return correct
}

func XP(correct int) int {
	return correct * XPPerCorrect
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
