package service

import (
	"context"
	"fmt"

	"github.com/xiaot623/gogo/studybuddy/internal/domain"
	"github.com/xiaot623/gogo/studybuddy/internal/parser"
	"github.com/xiaot623/gogo/studybuddy/internal/policy"
	"github.com/xiaot623/gogo/studybuddy/internal/prompt"
)

// Explain generates a concept explanation and records it.
func (s *Service) Explain(ctx context.Context, req domain.ExplainRequest) (*domain.FeatureResult, error) {
	req.Complexity = domain.NormalizeComplexity(string(req.Complexity))
	if req.Complexity == "" {
		req.Complexity = domain.DefaultComplexity
	}

	if err := s.validate(ctx, domain.KindExplanation, req.Topic, string(req.Complexity), 0, 0, 0); err != nil {
		return nil, err
	}

	session, err := s.run(ctx, domain.KindExplanation, req.Topic, prompt.Explanation(req.Topic, req.Complexity))
	if err != nil {
		return nil, err
	}
	return &domain.FeatureResult{Session: *session}, nil
}

// Summarize generates a summary of the notes and records it. Summaries carry
// no topic.
func (s *Service) Summarize(ctx context.Context, req domain.SummarizeRequest) (*domain.FeatureResult, error) {
	req.Format = domain.NormalizeSummaryFormat(string(req.Format))
	if req.Format == "" {
		req.Format = domain.DefaultSummaryFormat
	}

	if err := s.validate(ctx, domain.KindSummary, req.Notes, string(req.Format), 0, 0, 0); err != nil {
		return nil, err
	}

	session, err := s.run(ctx, domain.KindSummary, "", prompt.Summary(req.Notes, req.Format))
	if err != nil {
		return nil, err
	}
	return &domain.FeatureResult{Session: *session}, nil
}

// Quiz generates a quiz and records it. The question stems found in the
// response are returned alongside but are not stored.
func (s *Service) Quiz(ctx context.Context, req domain.QuizRequest) (*domain.FeatureResult, error) {
	req.Difficulty = domain.NormalizeDifficulty(string(req.Difficulty))
	if req.Difficulty == "" {
		req.Difficulty = domain.DefaultDifficulty
	}
	numQuestions := domain.IntOrDefault(req.NumQuestions, domain.DefaultQuizQuestions)

	if err := s.validate(ctx, domain.KindQuiz, req.Topic, string(req.Difficulty),
		numQuestions, domain.MinQuizQuestions, domain.MaxQuizQuestions); err != nil {
		return nil, err
	}

	session, err := s.run(ctx, domain.KindQuiz, req.Topic, prompt.Quiz(req.Topic, numQuestions, req.Difficulty))
	if err != nil {
		return nil, err
	}
	questions := parser.ParseQuiz(session.Content)
	s.logger.Debug("quiz parsed", "index", session.Index, "questions", len(questions))
	return &domain.FeatureResult{Session: *session, Questions: questions}, nil
}

// Flashcards generates flashcard pairs and records them. Parsed cards are
// returned alongside but are not stored.
func (s *Service) Flashcards(ctx context.Context, req domain.FlashcardsRequest) (*domain.FeatureResult, error) {
	numCards := domain.IntOrDefault(req.NumCards, domain.DefaultFlashcards)

	if err := s.validate(ctx, domain.KindFlashcards, req.Topic, "",
		numCards, domain.MinFlashcards, domain.MaxFlashcards); err != nil {
		return nil, err
	}

	session, err := s.run(ctx, domain.KindFlashcards, req.Topic, prompt.Flashcards(req.Topic, numCards))
	if err != nil {
		return nil, err
	}
	return &domain.FeatureResult{Session: *session, Cards: parser.ParseFlashcards(session.Content)}, nil
}

// validate returns a *domain.ValidationError when the policy rejects the input.
// count is checked against [lo, hi] for the kinds that take one.
func (s *Service) validate(ctx context.Context, kind domain.Kind, text, choice string, count, lo, hi int) error {
	warnings, err := s.policyEngine.Evaluate(ctx, policy.Input{
		Kind:     string(kind),
		Text:     text,
		Choice:   choice,
		Count:    count,
		MinCount: lo,
		MaxCount: hi,
	})
	if err != nil {
		return fmt.Errorf("failed to validate request: %w", err)
	}
	if len(warnings) > 0 {
		s.logger.Info("feature rejected", "kind", kind, "warnings", warnings)
		return &domain.ValidationError{Warnings: warnings}
	}
	return nil
}

// run makes the single completion call and appends the outcome. A sentinel
// error string is recorded exactly like a real answer.
func (s *Service) run(ctx context.Context, kind domain.Kind, topic, promptText string) (*domain.StudySession, error) {
	// The upstream timeout is the only bound on a call once issued.
	res := s.completer.CompleteResult(context.WithoutCancel(ctx), promptText, "")

	session := &domain.StudySession{
		Kind:      kind,
		Topic:     topic,
		Content:   res.Text,
		CreatedAt: s.now(),
		Failed:    res.Failed(),
	}
	if err := s.store.Append(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	s.logger.Info("feature completed", "kind", kind, "index", session.Index, "failed", session.Failed)
	return session, nil
}
