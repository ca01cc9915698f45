package phrase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string {
	return &s
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Source
		wantErr bool
	}{
		{
			name: "mapping keeps file order",
			data: `{"zeta": "last letter", "alpha": "first letter", "n": 1}`,
			want: Source{
				Kind: SourceMapping,
				Pairs: []Pair{
					{Phrase: "zeta", Meaning: ptr("last letter")},
					{Phrase: "alpha", Meaning: ptr("first letter")},
					{Phrase: "n", Meaning: nil},
				},
			},
		},
		{
			name: "records",
			data: `[{"phrase": "a", "meaning": "b"}, {"phrase": "c"}, 7]`,
			want: Source{
				Kind: SourceRecords,
				Records: []Record{
					{Phrase: ptr("a"), Meaning: ptr("b")},
					{Phrase: ptr("c")},
					{},
				},
			},
		},
		{
			name: "nested values in a mapping are ignored",
			data: `{"a": {"meaning": "x"}, "b": ["y"]}`,
			want: Source{
				Kind: SourceMapping,
				Pairs: []Pair{
					{Phrase: "a"},
					{Phrase: "b"},
				},
			},
		},
		{
			name: "null document",
			data: `null`,
			want: Source{Kind: SourceEmpty},
		},
		{
			name: "number document",
			data: `12`,
			want: Source{Kind: SourceEmpty},
		},
		{
			name:    "empty document",
			data:    ``,
			wantErr: true,
		},
		{
			name:    "broken JSON",
			data:    `{"break a leg": `,
			wantErr: true,
		},
		{
			name:    "trailing data after a mapping",
			data:    `{"a": "b"} garbage`,
			wantErr: true,
		},
		{
			name:    "trailing data after records",
			data:    `[{"phrase": "a"}] [{"phrase": "b"}]`,
			wantErr: true,
		},
		{
			name:    "trailing data after a scalar",
			data:    `12 13`,
			wantErr: true,
		},
		{
			name: "trailing whitespace",
			data: "{\"a\": \"b\"}\n\t ",
			want: Source{
				Kind:  SourceMapping,
				Pairs: []Pair{{Phrase: "a", Meaning: ptr("b")}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSource([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
