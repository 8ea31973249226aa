package match

import "testing"

func TestJaccard_Identical(t *testing.T) {
	if got := Jaccard("black leather wallet", "black leather wallet"); got != 1.0 {
		t.Fatalf("expected 1.0 for identical titles, got %f", got)
	}
}

func TestJaccard_CaseAndWhitespaceInsensitive(t *testing.T) {
	if got := Jaccard("Black  Leather Wallet", "black leather   WALLET"); got != 1.0 {
		t.Fatalf("expected 1.0 regardless of case/spacing, got %f", got)
	}
}

func TestJaccard_Disjoint(t *testing.T) {
	if got := Jaccard("red passport", "blue wallet"); got != 0.0 {
		t.Fatalf("expected 0.0 for disjoint titles, got %f", got)
	}
}

func TestJaccard_PartialOverlap(t *testing.T) {
	// {black,leather,wallet,documents} vs {black,leather,wallet,cards}:
	// intersection 3, union 5 -> 0.6.
	got := Jaccard("black leather wallet documents", "black leather wallet cards")
	if got < 0.599 || got > 0.601 {
		t.Fatalf("expected 0.6, got %f", got)
	}
}

func TestJaccard_Bounds(t *testing.T) {
	cases := [][2]string{
		{"", ""},
		{"a", ""},
		{"one two three", "three four"},
		{"x y z", "x y z w"},
	}
	for _, c := range cases {
		got := Jaccard(c[0], c[1])
		if got < 0 || got > 1 {
			t.Fatalf("Jaccard(%q, %q) = %f out of [0,1]", c[0], c[1], got)
		}
	}
}

func TestLevenshteinDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"AB12345", "AB12346", 1},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}
	for _, c := range cases {
		if got := LevenshteinDistance(c.a, c.b); got != c.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestLevenshteinSimilarity(t *testing.T) {
	if got := LevenshteinSimilarity("AB12345", "AB12345"); got != 100 {
		t.Fatalf("equal strings should score 100, got %d", got)
	}
	// Distance 1 over length 7 -> 100*(1-1/7) = 85.
	if got := LevenshteinSimilarity("AB12345", "AB12346"); got < 80 || got > 90 {
		t.Fatalf("expected ~85 for one edit over seven, got %d", got)
	}
	if got := LevenshteinSimilarity("AB12345", "ZZ00000"); got >= 70 {
		t.Fatalf("unrelated numbers should fall below 70, got %d", got)
	}
}

func TestLevenshteinSimilarity_Bounds(t *testing.T) {
	cases := [][2]string{
		{"", ""},
		{"a", ""},
		{"abcdef", "uvwxyz"},
		{"short", "a much longer string entirely"},
	}
	for _, c := range cases {
		got := LevenshteinSimilarity(c[0], c[1])
		if got < 0 || got > 100 {
			t.Fatalf("LevenshteinSimilarity(%q, %q) = %d out of [0,100]", c[0], c[1], got)
		}
	}
}
