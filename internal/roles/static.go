package roles

import (
	"context"
	"strings"
)

// RoleMapping associates a lowercase skill with the job titles it suggests.
type RoleMapping map[string][]string

// DefaultRoleMapping returns the built-in skill-to-role table.
func DefaultRoleMapping() RoleMapping {
	return RoleMapping{
		"python": {"Python Developer", "Data Scientist", "Automation Engineer"},
		"java":   {"Java Developer", "Backend Engineer"},
		"ml":     {"Machine Learning Engineer", "AI Researcher"},
		"react":  {"Frontend Developer", "Full Stack Engineer"},
		"sql":    {"Database Engineer", "Data Analyst"},
		"aws":    {"Cloud Engineer", "DevOps Engineer"},
		"excel":  {"Business Analyst", "Project Manager"},
	}
}

// StaticDeriver derives roles from a fixed mapping table, no network needed.
type StaticDeriver struct {
	mapping RoleMapping
}

// NewStaticDeriver constructs a StaticDeriver. A nil mapping selects the
// built-in table.
func NewStaticDeriver(mapping RoleMapping) *StaticDeriver {
	if mapping == nil {
		mapping = DefaultRoleMapping()
	}
	return &StaticDeriver{mapping: mapping}
}

// Derive unions the titles mapped from each detected skill. Duplicates are
// removed keeping first-seen order, so identical input always yields an
// identical list.
func (d *StaticDeriver) Derive(_ context.Context, _ string, skills []string) (Output, error) {
	seen := make(map[string]struct{})
	var out []Role
	for _, skill := range skills {
		for _, title := range d.mapping[strings.ToLower(skill)] {
			if _, ok := seen[title]; ok {
				continue
			}
			seen[title] = struct{}{}
			out = append(out, Role{Title: title})
		}
	}
	return RolesOutput(out), nil
}
