package suggestions

import (
	"reflect"
	"testing"
)

func TestRankOrdersByQualityThenCount(t *testing.T) {
	buckets := []bucket{
		{Name: "coconut chocolate milk", Count: 9},
		{Name: "chocolate milk", Count: 4},
		{Name: "cocoa", Count: 2},
		{Name: "chocolate", Count: 1},
		{Name: "milk", Count: 12},
	}

	got := Rank("c", buckets)
	// "milk" does not match "c" at all; everything else is a prefix hit,
	// so occurrence count decides, then the name.
	want := []string{"coconut chocolate milk", "chocolate milk", "cocoa", "chocolate"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank(c) = %v, want %v", got, want)
	}
}

func TestRankExactBeatsPrefixBeatsContains(t *testing.T) {
	buckets := []bucket{
		{Name: "coconut milk", Count: 50},
		{Name: "milk", Count: 1},
		{Name: "milkshake", Count: 20},
	}
	got := Rank("milk", buckets)
	want := []string{"milk", "milkshake", "coconut milk"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank(milk) = %v, want %v", got, want)
	}
}

func TestRankTruncates(t *testing.T) {
	var buckets []bucket
	names := []string{"ca", "cb", "cc", "cd", "ce", "cf", "cg", "ch", "ci"}
	for _, n := range names {
		buckets = append(buckets, bucket{Name: n, Count: 1})
	}
	got := Rank("c", buckets)
	if len(got) != MaxSuggestions {
		t.Fatalf("len = %d, want %d", len(got), MaxSuggestions)
	}
	// Same quality, same count: lexical order picks the survivors.
	want := []string{"ca", "cb", "cc", "cd", "ce", "cf", "cg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank(c) = %v, want %v", got, want)
	}
}

func TestRankDropsNonMatches(t *testing.T) {
	got := Rank("egg", []bucket{{Name: "milk", Count: 3}, {Name: "flour", Count: 2}})
	if len(got) != 0 {
		t.Errorf("Rank should drop non-matching terms, got %v", got)
	}
}

func TestMatchQuality(t *testing.T) {
	cases := []struct {
		canon, name string
		want        int
	}{
		{"milk", "milk", 3},
		{"milk", "milkshake", 2},
		{"milk", "coconut milk", 1},
		{"milk", "flour", 0},
	}
	for _, tc := range cases {
		if got := matchQuality(tc.canon, tc.name); got != tc.want {
			t.Errorf("matchQuality(%q, %q) = %d, want %d", tc.canon, tc.name, got, tc.want)
		}
	}
}
