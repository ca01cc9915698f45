package phrase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, data string) Source {
	t.Helper()
	source, err := ParseSource([]byte(data))
	require.NoError(t, err)
	return source
}

func TestDatabase_Match(t *testing.T) {
	tests := []struct {
		name   string
		idioms string
		slang  string
		text   string
		want   []Entry
	}{
		{
			name:   "single idiom hit",
			idioms: `{"break a leg": "good luck", "piece of cake": "easy"}`,
			slang:  `{}`,
			text:   "She said break a leg before the show",
			want: []Entry{
				{Phrase: "break a leg", Meaning: "good luck", Category: CategoryIdiom},
			},
		},
		{
			name:   "case-insensitive text",
			idioms: `{"Piece of Cake": "easy"}`,
			slang:  `[]`,
			text:   "That exam was a PIECE OF CAKE.",
			want: []Entry{
				{Phrase: "piece of cake", Meaning: "easy", Category: CategoryIdiom},
			},
		},
		{
			name:   "idioms before slang in dictionary order",
			idioms: `[{"phrase": "hit the sack", "meaning": "go to bed"}, {"phrase": "under the weather", "meaning": "ill"}]`,
			slang:  `{"lit": "exciting", "no cap": "no lie"}`,
			text:   "No cap, I'm under the weather so I'll hit the sack after this lit party",
			want: []Entry{
				{Phrase: "hit the sack", Meaning: "go to bed", Category: CategoryIdiom},
				{Phrase: "under the weather", Meaning: "ill", Category: CategoryIdiom},
				{Phrase: "lit", Meaning: "exciting", Category: CategorySlang},
				{Phrase: "no cap", Meaning: "no lie", Category: CategorySlang},
			},
		},
		{
			name:   "phrase in both categories is reported twice",
			idioms: `{"chill": "calm down"}`,
			slang:  `{"chill": "relaxed"}`,
			text:   "just chill",
			want: []Entry{
				{Phrase: "chill", Meaning: "calm down", Category: CategoryIdiom},
				{Phrase: "chill", Meaning: "relaxed", Category: CategorySlang},
			},
		},
		{
			name:   "substring inside a longer word matches",
			idioms: `{}`,
			slang:  `{"cat": "a cool person"}`,
			text:   "Pick a category",
			want: []Entry{
				{Phrase: "cat", Meaning: "a cool person", Category: CategorySlang},
			},
		},
		{
			name:   "no hit",
			idioms: `{"break a leg": "good luck"}`,
			slang:  `{"lit": "exciting"}`,
			text:   "Nothing to see here",
			want:   nil,
		},
		{
			name:   "empty text",
			idioms: `{"break a leg": "good luck"}`,
			slang:  `{"lit": "exciting"}`,
			text:   "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := NewDatabase(mustParse(t, tt.idioms), mustParse(t, tt.slang))
			got := db.Match(tt.text)
			assert.Equal(t, tt.want, got)

			folded := strings.ToLower(tt.text)
			for _, entry := range got {
				assert.Contains(t, folded, entry.Phrase)
			}
		})
	}
}

func TestDatabase_MatchWords(t *testing.T) {
	db := NewDatabase(
		mustParse(t, `{"break a leg": "good luck"}`),
		mustParse(t, `{"cat": "a cool person", "lit": "exciting"}`),
	)

	tests := []struct {
		name string
		text string
		want []Entry
	}{
		{
			name: "word inside a longer word does not match",
			text: "Pick a category",
			want: nil,
		},
		{
			name: "word surrounded by punctuation matches",
			text: "That party was lit!",
			want: []Entry{{Phrase: "lit", Meaning: "exciting", Category: CategorySlang}},
		},
		{
			name: "later bounded occurrence is found",
			text: "literally a cool cat",
			want: []Entry{{Phrase: "cat", Meaning: "a cool person", Category: CategorySlang}},
		},
		{
			name: "multi-word phrase at the start",
			text: "Break a leg, Sam",
			want: []Entry{{Phrase: "break a leg", Meaning: "good luck", Category: CategoryIdiom}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, db.MatchWords(tt.text))
		})
	}
}

func TestNewDatabase_Normalization(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		wantOrder  []string
		wantValues map[string]string
	}{
		{
			name:      "mapping keys are trimmed and lower-cased",
			source:    `{"  Break A Leg ": " good luck ", "": "empty", "   ": "blank"}`,
			wantOrder: []string{"break a leg"},
			wantValues: map[string]string{
				"break a leg": "good luck",
			},
		},
		{
			name:      "duplicates differing by case collapse and the later meaning wins",
			source:    `{"Spill the beans": "reveal a secret", "hit the road": "leave", "spill the BEANS": "tell everything"}`,
			wantOrder: []string{"spill the beans", "hit the road"},
			wantValues: map[string]string{
				"spill the beans": "tell everything",
				"hit the road":    "leave",
			},
		},
		{
			name: "malformed records are skipped one by one",
			source: `[
				{"phrase": "on cloud nine", "meaning": "very happy"},
				{"meaning": "no phrase"},
				{"phrase": 42, "meaning": "not a string"},
				"just a string",
				null,
				{"phrase": "   ", "meaning": "blank"},
				{"phrase": "Once in a blue moon"}
			]`,
			wantOrder: []string{"on cloud nine", "once in a blue moon"},
			wantValues: map[string]string{
				"on cloud nine":       "very happy",
				"once in a blue moon": "",
			},
		},
		{
			name:      "mapping members without a string meaning are skipped",
			source:    `{"bet": "okay", "sus": 3, "salty": null}`,
			wantOrder: []string{"bet"},
			wantValues: map[string]string{
				"bet": "okay",
			},
		},
		{
			name:       "scalar document is empty",
			source:     `"not a dictionary"`,
			wantOrder:  nil,
			wantValues: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := NewDatabase(mustParse(t, tt.source), Source{})
			table := db.Idioms()
			assert.Equal(t, tt.wantOrder, table.Phrases())
			assert.Equal(t, len(tt.wantValues), table.Len())
			for phrase, meaning := range tt.wantValues {
				got, ok := table.Meaning(phrase)
				assert.True(t, ok, phrase)
				assert.Equal(t, meaning, got)
			}
			assert.Equal(t, 0, db.Slang().Len())
		})
	}
}

func TestEmptyDatabase(t *testing.T) {
	db := EmptyDatabase()
	assert.Equal(t, 0, db.Idioms().Len())
	assert.Equal(t, 0, db.Slang().Len())
	assert.Empty(t, db.Match("break a leg"))
	assert.Empty(t, db.MatchWords("break a leg"))
}
