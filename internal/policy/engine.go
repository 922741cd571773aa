// Package policy validates feature requests with an OPA/Rego policy.
package policy

import (
	"context"
	"fmt"
	"sort"

	"github.com/open-policy-agent/opa/rego"
)

// Input is the document a request is evaluated against.
// MinCount and MaxCount bound Count for quizzes and flashcards.
type Input struct {
	Kind     string `json:"kind"`
	Text     string `json:"text"`
	Choice   string `json:"choice"`
	Count    int    `json:"count"`
	MinCount int    `json:"min_count"`
	MaxCount int    `json:"max_count"`
}

func (in Input) toMap() map[string]interface{} {
	return map[string]interface{}{
		"kind":      in.Kind,
		"text":      in.Text,
		"choice":    in.Choice,
		"count":     in.Count,
		"min_count": in.MinCount,
		"max_count": in.MaxCount,
	}
}

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.study_policy.violations"),
		rego.Module("study_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate returns the warnings for a request, required-field warnings first.
// An empty slice means the request is allowed.
func (e *Engine) Evaluate(ctx context.Context, input Input) ([]string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input.toMap()))
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return nil, nil
	}

	set, ok := results[0].Expressions[0].Value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected policy result type %T", results[0].Expressions[0].Value)
	}

	type violation struct {
		order   int
		message string
	}
	violations := make([]violation, 0, len(set))
	for _, item := range set {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		msg, _ := obj["message"].(string)
		violations = append(violations, violation{order: orderOf(obj["order"]), message: msg})
	}
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].order != violations[j].order {
			return violations[i].order < violations[j].order
		}
		return violations[i].message < violations[j].message
	})

	warnings := make([]string, 0, len(violations))
	for _, v := range violations {
		warnings = append(warnings, v.message)
	}
	return warnings, nil
}

// orderOf reads the numeric order field; OPA hands numbers back as json.Number.
func orderOf(v interface{}) int {
	switch n := v.(type) {
	case interface{ Int64() (int64, error) }:
		i, _ := n.Int64()
		return int(i)
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

// DefaultPolicy is the request validation policy. Text is the topic, or the
// notes for a summary; choice is the complexity, format or difficulty.
const DefaultPolicy = `
package study_policy

topic_kinds := {"Explanation", "Quiz", "Flashcards"}

complexities := {"simple", "intermediate", "advanced"}

summary_formats := {"bullet points", "paragraph", "key points only"}

difficulties := {"easy", "medium", "hard"}

violations[v] {
	topic_kinds[input.kind]
	trim_space(input.text) == ""
	v := {"order": 0, "message": "Please enter a topic"}
}

violations[v] {
	input.kind == "Summary"
	trim_space(input.text) == ""
	v := {"order": 0, "message": "Please paste some notes"}
}

violations[v] {
	input.kind == "Explanation"
	not complexities[input.choice]
	v := {"order": 1, "message": sprintf("Unknown complexity %q: choose simple, intermediate or advanced", [input.choice])}
}

violations[v] {
	input.kind == "Summary"
	not summary_formats[input.choice]
	v := {"order": 1, "message": sprintf("Unknown summary format %q: choose bullet points, paragraph or key points only", [input.choice])}
}

violations[v] {
	input.kind == "Quiz"
	not difficulties[input.choice]
	v := {"order": 1, "message": sprintf("Unknown difficulty %q: choose easy, medium or hard", [input.choice])}
}

violations[v] {
	input.kind == "Quiz"
	out_of_range(input.count, input.min_count, input.max_count)
	v := {"order": 1, "message": sprintf("Number of questions must be between %d and %d", [input.min_count, input.max_count])}
}

violations[v] {
	input.kind == "Flashcards"
	out_of_range(input.count, input.min_count, input.max_count)
	v := {"order": 1, "message": sprintf("Number of cards must be between %d and %d", [input.min_count, input.max_count])}
}

out_of_range(n, lo, hi) {
	n < lo
}

out_of_range(n, lo, hi) {
	n > hi
}
`
