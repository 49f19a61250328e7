package roles

import (
	"context"
	"fmt"
	"strings"
)

const (
	systemPrompt = "You are a career recommendation engine."

	// maxPromptTextBytes bounds the resume excerpt embedded in a prompt so
	// oversized uploads cannot blow the provider's context window.
	maxPromptTextBytes = 12000
)

// BuildPrompt constructs the user message for a generative derivation call.
func BuildPrompt(text string, skills []string, minRoles, maxRoles int) string {
	excerpt := text
	if len(excerpt) > maxPromptTextBytes {
		excerpt = excerpt[:maxPromptTextBytes]
	}

	var b strings.Builder
	b.WriteString("You are a career recommendation assistant.\n")
	fmt.Fprintf(&b, "Analyze this resume text and detected skills: [%s].\n", strings.Join(skills, ", "))
	fmt.Fprintf(&b, "Suggest %d-%d job roles that match the candidate.\n", minRoles, maxRoles)
	b.WriteString("Return ONLY a JSON object of the form {\"job_roles\": [\"Role One\", \"Role Two\"]}.\n")
	b.WriteString("Do not include explanations, markdown, or text before or after the JSON.\n")
	b.WriteString("Resume text: ")
	b.WriteString(excerpt)
	return b.String()
}

// Generator sends a system+user conversation to a text-generation provider
// and returns the raw model response.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// GenerativeDeriver derives roles by prompting a Generator and normalizing
// whatever comes back.
type GenerativeDeriver struct {
	Provider string
	Gen      Generator
	MinRoles int
	MaxRoles int
}

// Derive prompts the provider. Transport failures become *DerivationError;
// unusable-but-delivered output is handled by normalization rather than
// treated as failure.
func (d *GenerativeDeriver) Derive(ctx context.Context, text string, skills []string) (Output, error) {
	prompt := BuildPrompt(text, skills, d.MinRoles, d.MaxRoles)
	raw, err := d.Gen.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		return Output{}, &DerivationError{Provider: d.Provider, Err: err}
	}
	return Normalize(raw), nil
}
