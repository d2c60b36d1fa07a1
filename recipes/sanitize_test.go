package recipes

import (
	"strings"
	"testing"

	"safeplate/apperr"
)

const testBucket = "safeplate-recipes"

func TestSanitizeStripsDisallowedTags(t *testing.T) {
	s := newStepsSanitizer(testBucket)

	clean, err := s.Sanitize(`<p>Mix well</p><script>alert(1)</script><ol><li>Bake</li></ol>`)
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if strings.Contains(clean, "script") {
		t.Errorf("script survived sanitization: %q", clean)
	}
	if !strings.Contains(clean, "<p>Mix well</p>") || !strings.Contains(clean, "<li>Bake</li>") {
		t.Errorf("structural tags were lost: %q", clean)
	}
}

func TestSanitizeStripsEventHandlers(t *testing.T) {
	s := newStepsSanitizer(testBucket)

	clean, err := s.Sanitize(`<div onclick="steal()">Whisk</div>`)
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if strings.Contains(clean, "onclick") {
		t.Errorf("event handler survived: %q", clean)
	}
}

func TestSanitizeImageHosts(t *testing.T) {
	s := newStepsSanitizer(testBucket)

	good := []string{
		`<img src="https://s3.amazonaws.com/safeplate-recipes/cake.png">`,
		`<img src="https://safeplate-recipes.s3.amazonaws.com/steps/2.jpeg" width="400">`,
	}
	for _, html := range good {
		if _, err := s.Sanitize(html); err != nil {
			t.Errorf("bucket-hosted image rejected: %v", err)
		}
	}

	bad := []string{
		`<img src="https://evil.example.com/cake.png">`,
		`<img src="https://s3.amazonaws.com/other-bucket/cake.png">`,
		`<img src="https://s3.amazonaws.com/safeplate-recipes/cake.svg">`,
	}
	for _, html := range bad {
		if _, err := s.Sanitize(html); !apperr.IsValidation(err) {
			t.Errorf("foreign image accepted: %q (err %v)", html, err)
		}
	}
}

func TestNormalizeCreditLink(t *testing.T) {
	cases := map[string]string{
		"":                         "",
		"  ":                       "",
		"https://example.com/blog": "https://example.com/blog",
		"http://example.com":       "http://example.com",
		"cook@example.com":         "mailto:cook@example.com",
		"example.com/recipes":      "https://example.com/recipes",
	}
	for in, want := range cases {
		if got := NormalizeCreditLink(in); got != want {
			t.Errorf("NormalizeCreditLink(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Chocolate Chip Cookies": "chocolate-chip-cookies",
		"  Grandma's  Pie!  ":    "grandmas-pie",
		"Crème Brûlée":           "crme-brle",
		"plain":                  "plain",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugCandidate(t *testing.T) {
	if got := slugCandidate("cake", 1); got != "cake" {
		t.Errorf("first candidate = %q", got)
	}
	if got := slugCandidate("cake", 3); got != "cake-3" {
		t.Errorf("third candidate = %q", got)
	}
}
