// Package roles derives candidate job titles from resume text and detected
// skills, and normalizes generative-model output into a predictable shape.
package roles

import (
	"context"
	"encoding/json"
	"fmt"
)

// Deriver produces candidate roles from resume text and detected skills.
type Deriver interface {
	Derive(ctx context.Context, text string, skills []string) (Output, error)
}

// DerivationError reports a failed or unusable external generation call.
// The pipeline folds it into a partial result; it never aborts a request.
type DerivationError struct {
	Provider string
	Err      error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("derive roles via %s: %v", e.Provider, e.Err)
}

func (e *DerivationError) Unwrap() error { return e.Err }

// Role is one candidate job title. Model output is polymorphic: a role may
// arrive as a bare string or as an object carrying extra fields. Roles with
// no metadata marshal back to a bare string so responses mirror what the
// model produced.
type Role struct {
	Title string
	Meta  map[string]any
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var title string
	if err := json.Unmarshal(data, &title); err == nil {
		r.Title = title
		r.Meta = nil
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if title, ok := obj["title"].(string); ok {
		r.Title = title
		delete(obj, "title")
	}
	if len(obj) > 0 {
		r.Meta = obj
	}
	return nil
}

func (r Role) MarshalJSON() ([]byte, error) {
	if len(r.Meta) == 0 {
		return json.Marshal(r.Title)
	}
	obj := make(map[string]any, len(r.Meta)+1)
	for k, v := range r.Meta {
		obj[k] = v
	}
	obj["title"] = r.Title
	return json.Marshal(obj)
}

// Output kinds.
type Kind int

const (
	KindRoles Kind = iota
	KindRaw
	KindError
)

// Output is the tagged model-output variant: a role list, a raw passthrough
// of unparseable model text, or an error payload for a failed derivation.
type Output struct {
	Kind  Kind
	Roles []Role
	Raw   string
	Err   string
}

// RolesOutput wraps a role list in an Output.
func RolesOutput(roles []Role) Output {
	return Output{Kind: KindRoles, Roles: roles}
}

// RawOutput wraps unparseable model text in an Output.
func RawOutput(raw string) Output {
	return Output{Kind: KindRaw, Raw: raw}
}

// ErrorOutput wraps a stage failure in an Output.
func ErrorOutput(err error) Output {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Output{Kind: KindError, Err: msg}
}

// Titles returns the role titles, in order, for a role-list output. Other
// kinds yield nil.
func (o Output) Titles() []string {
	if o.Kind != KindRoles {
		return nil
	}
	titles := make([]string, 0, len(o.Roles))
	for _, r := range o.Roles {
		if r.Title != "" {
			titles = append(titles, r.Title)
		}
	}
	return titles
}

func (o Output) MarshalJSON() ([]byte, error) {
	switch o.Kind {
	case KindRaw:
		return json.Marshal(map[string]string{"raw_output": o.Raw})
	case KindError:
		return json.Marshal(map[string]string{"error": o.Err})
	default:
		if o.Roles == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(o.Roles)
	}
}
