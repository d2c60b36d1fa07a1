package recipes

import (
	"fmt"
	"regexp"
	"strings"

	"safeplate/apperr"

	"github.com/microcosm-cc/bluemonday"
)

var (
	imgSrc     = regexp.MustCompile(`(?i)<img[^>]*?src="([^"]*)"`)
	whitespace = regexp.MustCompile(`\s+`)
	nonSlug    = regexp.MustCompile(`[^a-z0-9-]`)
)

// stepsSanitizer strips everything from the steps HTML except safe
// structural tags, and only permits images hosted on the configured bucket.
type stepsSanitizer struct {
	policy    *bluemonday.Policy
	hostForms []*regexp.Regexp
}

func newStepsSanitizer(bucket string) *stepsSanitizer {
	policy := bluemonday.NewPolicy()
	policy.AllowElements(
		"ul", "ol", "li", "p", "pre", "blockquote", "div", "span", "br",
		"sub", "em", "strong", "sup", "code",
		"h1", "h2", "h3", "h4", "h5", "h6", "img",
	)
	policy.AllowAttrs("src", "width", "height").OnElements("img")

	quoted := regexp.QuoteMeta(bucket)
	return &stepsSanitizer{
		policy: policy,
		// Both S3 URL forms the upload flow can produce.
		hostForms: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https://s3\.amazonaws\.com/` + quoted + `/.*\.(png|jpg|jpeg|gif)$`),
			regexp.MustCompile(`(?i)^https://` + quoted + `\.s3\.amazonaws\.com/.*\.(png|jpg|jpeg|gif)$`),
		},
	}
}

// Sanitize returns the cleaned HTML, or a validation error when an image
// points outside the recipe bucket.
func (s *stepsSanitizer) Sanitize(steps string) (string, error) {
	clean := s.policy.Sanitize(steps)
	for _, m := range imgSrc.FindAllStringSubmatch(clean, -1) {
		src := m[1]
		ok := false
		for _, re := range s.hostForms {
			if re.MatchString(src) {
				ok = true
				break
			}
		}
		if !ok {
			return "", apperr.Validation("steps image %q is not hosted on the recipe bucket", src)
		}
	}
	return clean, nil
}

// NormalizeCreditLink turns whatever people paste into a usable href:
// addresses become mailto links, bare domains get a scheme, full URLs pass
// through.
func NormalizeCreditLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	if strings.Contains(link, "://") {
		return link
	}
	if strings.Contains(link, "@") {
		return "mailto:" + link
	}
	return "https://" + link
}

// Slugify derives the id form of a recipe name: lowercase, hyphens for
// whitespace, everything else but [a-z0-9-] dropped.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = whitespace.ReplaceAllString(slug, "-")
	slug = nonSlug.ReplaceAllString(slug, "")
	return slug
}

// slugCandidate appends the numeric disambiguation suffix.
func slugCandidate(base string, n int) string {
	if n <= 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
