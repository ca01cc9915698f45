package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/verbapilot/internal/export"
	"github.com/at-ishikawa/verbapilot/internal/language"
	"github.com/at-ishikawa/verbapilot/internal/phrase"
	"github.com/at-ishikawa/verbapilot/internal/quiz"
)

func TestRenderHits(t *testing.T) {
	disableColor(t)

	tests := []struct {
		name string
		hits []phrase.Entry
		want string
	}{
		{
			name: "no hits",
			want: NoHitsMessage + "\n",
		},
		{
			name: "hits",
			hits: []phrase.Entry{
				{Phrase: "break the ice", Meaning: "start a conversation", Category: phrase.CategoryIdiom},
				{Phrase: "lit", Meaning: "exciting", Category: phrase.CategorySlang},
			},
			want: "Idioms and slang\n" +
				"- break the ice [idiom] start a conversation\n" +
				"- lit [slang] exciting\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			RenderHits(&out, tt.hits)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRenderTranslation(t *testing.T) {
	disableColor(t)

	var out bytes.Buffer
	RenderTranslation(&out, export.Report{
		Text:           "Hello",
		SourceLanguage: "en",
		Targets: []export.Target{
			{Language: "es", Name: "Spanish", Text: "Hola"},
			{Language: "fr", Text: "Bonjour"},
		},
	})
	assert.Equal(t, "Source language: en\nSpanish (es)\nHola\n\nfr\nBonjour\n\n"+NoHitsMessage+"\n", out.String())
}

func TestRenderLanguages(t *testing.T) {
	var out bytes.Buffer
	RenderLanguages(&out, []language.Language{
		{Code: "es", Name: "Spanish"},
		{Code: "zh-Hans", Name: "Chinese Simplified"},
	})
	assert.Equal(t, "es       Spanish\nzh-Hans  Chinese Simplified\n", out.String())
}

func TestRenderChallengeResult(t *testing.T) {
	disableColor(t)

	tests := []struct {
		name   string
		items  []quiz.Item
		result quiz.Result
		want   string
	}{
		{
			name: "answered and unanswered",
			items: []quiz.Item{
				{Phrase: "Thank you", Gold: "Gracias", Answer: "gracias"},
				{Phrase: "Good night", Gold: "Buenas noches", Answer: ""},
			},
			result: quiz.Result{Correct: 1, Total: 2, XP: 10, Gold: []string{"Gracias", "Buenas noches"}},
			want: "\nYou got 1/2 correct! (+10 XP)\n" +
				"✅ 1. Thank you\n     correct: Gracias\n     yours:   gracias\n" +
				"❌ 2. Good night\n     correct: Buenas noches\n     yours:   (no answer)\n" +
				"XP: 40\n",
		},
		{
			name: "fewer reference lines than items",
			items: []quiz.Item{
				{Phrase: "Thank you", Gold: "Gracias", Answer: "gracias"},
				{Phrase: "Good night", Answer: ""},
			},
			result: quiz.Result{Correct: 1, Total: 2, XP: 10, Gold: []string{"Gracias"}},
			want: "\nYou got 1/2 correct! (+10 XP)\n" +
				"✅ 1. Thank you\n     correct: Gracias\n     yours:   gracias\n" +
				"❌ 2. Good night\n     correct: \n     yours:   (no answer)\n" +
				"XP: 40\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			RenderChallengeResult(&out, &quiz.Round{Items: tt.items}, tt.result, 40)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRenderXP(t *testing.T) {
	disableColor(t)

	var out bytes.Buffer
	RenderXP(&out, 3, 50)
	assert.Equal(t, "Rounds played: 3\nTotal XP: 50\n", out.String())
}
