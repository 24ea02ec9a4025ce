package catalog

import (
	"os"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load reads and parses the catalog file at path. Error precedence follows
// the load pipeline: NotFoundError, EmptyError, ParseError,
// MissingSectionError, then ValidationError.
func Load(path string) (*Catalog, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, errors.Wrapf(err, "failed to stat catalog %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalog %s", path)
	}

	cat, err := Parse(data)
	if err != nil {
		var empty *EmptyError
		if errors.As(err, &empty) {
			return nil, &EmptyError{Path: path}
		}
		return nil, err
	}
	return cat, nil
}

// Parse parses and validates a catalog from raw YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, newParseError(err)
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, &EmptyError{}
	}

	root := doc.Content[0]
	if root.Tag == "!!null" {
		return nil, &EmptyError{}
	}
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{Message: "top-level catalog must be a mapping", Line: root.Line}
	}

	cat := &Catalog{
		Skills:     map[string]*Skill{},
		Tasks:      map[string]*Task{},
		Categories: map[string]*Category{},
	}

	var sawSkills bool
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "skills":
			sawSkills = true
			if err := decodeSkills(value, cat); err != nil {
				return nil, err
			}
		case "tasks":
			if err := decodeTasks(value, cat); err != nil {
				return nil, err
			}
		case "categories":
			if err := decodeCategories(value, cat); err != nil {
				return nil, err
			}
		}
	}

	if !sawSkills {
		return nil, &MissingSectionError{Section: "skills"}
	}

	if issues := Validate(cat); issues != nil {
		return nil, &ValidationError{Issues: issues}
	}

	return cat, nil
}

func decodeSkills(node *yaml.Node, cat *Catalog) error {
	return eachEntry(node, "skills", func(name string, value *yaml.Node) error {
		skill := &Skill{Name: name}
		if err := value.Decode(skill); err != nil {
			return newParseError(err)
		}
		cat.Skills[name] = skill
		cat.SkillOrder = append(cat.SkillOrder, name)
		return nil
	})
}

func decodeTasks(node *yaml.Node, cat *Catalog) error {
	return eachEntry(node, "tasks", func(name string, value *yaml.Node) error {
		task := &Task{Name: name}
		if err := value.Decode(task); err != nil {
			return newParseError(err)
		}
		cat.Tasks[name] = task
		cat.TaskOrder = append(cat.TaskOrder, name)
		return nil
	})
}

func decodeCategories(node *yaml.Node, cat *Catalog) error {
	return eachEntry(node, "categories", func(name string, value *yaml.Node) error {
		category := &Category{Name: name}
		if err := value.Decode(category); err != nil {
			return newParseError(err)
		}
		cat.Categories[name] = category
		cat.CategoryOrder = append(cat.CategoryOrder, name)
		return nil
	})
}

// eachEntry walks a section mapping in document order. Null sections are
// treated as empty.
func eachEntry(node *yaml.Node, section string, fn func(name string, value *yaml.Node) error) error {
	if node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return &ParseError{
			Message: "section " + strconv.Quote(section) + " must be a mapping",
			Line:    node.Line,
		}
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i].Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// newParseError converts a yaml.v3 error into a ParseError, lifting the
// line hint out of the message when the parser supplies one.
func newParseError(err error) *ParseError {
	msg := err.Error()
	line := 0
	if m := yamlLineRe.FindStringSubmatch(msg); m != nil {
		line, _ = strconv.Atoi(m[1])
	}
	return &ParseError{Message: msg, Line: line}
}
