package content

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

var validSlug = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

type scaffoldFrontmatter struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Tags    []string `yaml:"tags"`
	Excerpt string   `yaml:"excerpt"`
	Draft   bool     `yaml:"draft"`
}

// TitleFromSlug turns "my-first_post" into "My First Post".
func TitleFromSlug(slug string) string {
	words := strings.ReplaceAll(strings.ReplaceAll(slug, "-", " "), "_", " ")
	return cases.Title(language.English).String(words)
}

// Scaffold returns the source of a new draft post for slug.
func Scaffold(slug string, now time.Time) ([]byte, error) {
	if !validSlug.MatchString(slug) {
		return nil, fmt.Errorf("invalid slug %q: use lowercase letters, digits, '-' and '_'", slug)
	}
	fm, err := yaml.Marshal(scaffoldFrontmatter{
		Title: TitleFromSlug(slug),
		Date:  now.Format("2006-01-02"),
		Tags:  []string{},
		Draft: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	return []byte(fmt.Sprintf("---\n%s---\n\nWrite your post here.\n", fm)), nil
}
