// Package phrase holds the idiom and slang dictionary and matches it against free text.
package phrase

import (
	"strings"
)

type Category string

const (
	CategoryIdiom Category = "idiom"
	CategorySlang Category = "slang"
)

// Entry is a dictionary phrase found in a text.
type Entry struct {
	Phrase   string   `json:"phrase"`
	Meaning  string   `json:"meaning"`
	Category Category `json:"category"`
}

// Table maps lower-cased phrases to meanings and remembers insertion order.
// A repeated phrase keeps its first position and takes the later meaning.
type Table struct {
	phrases  []string
	meanings map[string]string
}

func newTable() Table {
	return Table{meanings: make(map[string]string)}
}

func (t *Table) put(phrase, meaning string) {
	if _, ok := t.meanings[phrase]; !ok {
		t.phrases = append(t.phrases, phrase)
	}
	t.meanings[phrase] = meaning
}

func (t Table) Len() int {
	return len(t.phrases)
}

func (t Table) Meaning(phrase string) (string, bool) {
	meaning, ok := t.meanings[normalizeKey(phrase)]
	return meaning, ok
}

// Phrases returns the phrases in insertion order.
func (t Table) Phrases() []string {
	return append([]string(nil), t.phrases...)
}

// Database is an immutable snapshot of the idiom and slang tables.
type Database struct {
	idioms Table
	slang  Table
}

// EmptyDatabase has no idioms and no slang.
func EmptyDatabase() *Database {
	return &Database{idioms: newTable(), slang: newTable()}
}

// NewDatabase normalizes the two raw sources into a database.
// Malformed members are skipped one by one.
func NewDatabase(idioms, slang Source) *Database {
	return &Database{
		idioms: normalize(idioms),
		slang:  normalize(slang),
	}
}

func (db *Database) Idioms() Table {
	return db.idioms
}

func (db *Database) Slang() Table {
	return db.slang
}

// Match returns every entry whose phrase occurs anywhere in text, ignoring case.
// Idioms come before slang, each in dictionary order. A phrase present in both
// tables is reported twice.
func (db *Database) Match(text string) []Entry {
	return db.match(text, strings.Contains)
}

// MatchWords is Match restricted to occurrences that are not part of a longer word,
// so "cat" no longer matches inside "category".
func (db *Database) MatchWords(text string) []Entry {
	return db.match(text, containsWord)
}

func (db *Database) match(text string, contains func(text, phrase string) bool) []Entry {
	folded := strings.ToLower(text)
	var found []Entry
	for _, table := range []struct {
		table    Table
		category Category
	}{
		{table: db.idioms, category: CategoryIdiom},
		{table: db.slang, category: CategorySlang},
	} {
		for _, phrase := range table.table.phrases {
			if contains(folded, phrase) {
				found = append(found, Entry{
					Phrase:   phrase,
					Meaning:  table.table.meanings[phrase],
					Category: table.category,
				})
			}
		}
	}
	return found
}

func normalize(source Source) Table {
	table := newTable()
	switch source.Kind {
	case SourceMapping:
		for _, pair := range source.Pairs {
			if pair.Meaning == nil {
				continue
			}
			if key := normalizeKey(pair.Phrase); key != "" {
				table.put(key, strings.TrimSpace(*pair.Meaning))
			}
		}
	case SourceRecords:
		for _, record := range source.Records {
			if record.Phrase == nil {
				continue
			}
			key := normalizeKey(*record.Phrase)
			if key == "" {
				continue
			}
			var meaning string
			if record.Meaning != nil {
				meaning = strings.TrimSpace(*record.Meaning)
			}
			table.put(key, meaning)
		}
	}
	return table
}

func normalizeKey(phrase string) string {
	return strings.ToLower(strings.TrimSpace(phrase))
}
