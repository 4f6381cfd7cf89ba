package keywords

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		word string
		want Category
	}{
		{"select", Reserved},
		{"from", Reserved},
		{"start", Unreserved},
		{"int", Unreserved},
		{"users", None},
		{"SELECT", None},
	}
	for _, tt := range tests {
		if got := Lookup(tt.word); got != tt.want {
			t.Errorf("Lookup(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
	if !IsKeyword("cache") || IsReserved("cache") {
		t.Error("cache should be an unreserved keyword")
	}
}
