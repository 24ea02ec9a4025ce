// Package skillfile reads SKILL.md documentation artifacts: YAML
// frontmatter describing the skill plus a markdown body. Used by the
// validate command's --docs check to confirm that catalog entries point
// at real, well-formed documentation.
package skillfile

import (
	"bytes"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// Doc is a parsed SKILL.md: frontmatter fields plus the markdown body.
type Doc struct {
	Name        string
	Description string
	Body        string
}

// Load reads and parses a SKILL.md file.
func Load(path string) (*Doc, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}
	return Parse(content)
}

// Parse parses SKILL.md content. Frontmatter with a name and description
// is required.
func Parse(content []byte) (*Doc, error) {
	md := goldmark.New(goldmark.WithExtensions(meta.Meta))

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, errors.New("missing frontmatter")
	}

	name, _ := metaData["name"].(string)
	description, _ := metaData["description"].(string)
	if name == "" {
		return nil, errors.New("skill name is required in frontmatter")
	}
	if description == "" {
		return nil, errors.New("skill description is required in frontmatter")
	}

	return &Doc{
		Name:        name,
		Description: description,
		Body:        extractBody(string(content)),
	}, nil
}

// extractBody removes the YAML frontmatter block and returns the markdown
// body.
func extractBody(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[end+1:], "\n"), "\n")
}
