package extract

import (
	"reflect"
	"testing"
)

func TestPhones(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "international format",
			// The plain pattern also matches the national substring;
			// both literals are kept, as the union semantics demand.
			text: "Call +44-123-456-7890 today",
			want: []string{"+44-123-456-7890", "123-456-7890"},
		},
		{
			name: "us parenthesized format",
			text: "Phone: (555) 123-4567",
			want: []string{"(555) 123-4567"},
		},
		{
			name: "plain dashed format",
			text: "tel 555-123-4567",
			want: []string{"555-123-4567"},
		},
		{
			name: "uk format",
			text: "ring 01234 567890 anytime",
			want: []string{"01234 567890"},
		},
		{
			name: "no numbers",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Phones(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Phones(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// The same number written in two formats is two entries: dedup is by
// literal string identity, never by semantic equality.
func TestPhonesLiteralDedup(t *testing.T) {
	text := "(555) 123-4567 or 555-123-4567, again (555) 123-4567"
	got := Phones(text)
	if len(got) != 2 {
		t.Fatalf("expected 2 distinct literals, got %v", got)
	}
}
