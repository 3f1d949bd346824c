package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/studybuddy/studybuddy-server/internal/logger"
	"github.com/studybuddy/studybuddy-server/internal/model"
)

const (
	summaryPrompt = "Summarize this file."
	quizPrompt    = `Generate ONE multiple choice question based on text. Format exactly: {"question": "...", "options": ["A", "B", "C", "D"], "answer": "B", "explanation": "..."}`
)

// Study offers one-shot tools over the uploaded document.
type Study struct {
	conversation *Conversation
	logger       *logger.Logger
}

func NewStudy(conversation *Conversation, logger *logger.Logger) *Study {
	return &Study{
		conversation: conversation,
		logger:       logger,
	}
}

// QuizResult is the outcome of answering the current quiz.
type QuizResult struct {
	Correct     bool   `json:"correct"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation"`
}

func (s *Study) Summarize(ctx context.Context, ws *model.Workspace) (string, error) {
	contextText, err := documentContext(ws)
	if err != nil {
		return "", err
	}
	return s.conversation.Converse(ctx, summaryPrompt, contextText, nil), nil
}

func (s *Study) Explain(ctx context.Context, ws *model.Workspace, topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", model.ErrMissingFields
	}
	contextText, err := documentContext(ws)
	if err != nil {
		return "", err
	}
	return s.conversation.Converse(ctx, fmt.Sprintf("Explain %s simply.", topic), contextText, nil), nil
}

// GenerateQuiz asks for one multiple choice question and keeps it in the
// workspace for CheckAnswer.
func (s *Study) GenerateQuiz(ctx context.Context, ws *model.Workspace) (model.Quiz, error) {
	contextText, err := documentContext(ws)
	if err != nil {
		return model.Quiz{}, err
	}

	reply := s.conversation.Converse(ctx, quizPrompt, contextText, nil)
	quiz, err := ParseQuiz(reply)
	if err != nil {
		s.logger.Warn("Study service: quiz generation failed",
			"username", ws.Username,
			"error", err.Error())
		return model.Quiz{}, err
	}

	ws.Lock()
	defer ws.Unlock()

	// the lock is released while generating; an upload in between replaces
	// the document this quiz was drawn from
	if ws.ContextText != contextText {
		s.logger.Info("Study service: document changed during quiz generation",
			"username", ws.Username)
		return model.Quiz{}, fmt.Errorf("%w: document changed during generation", model.ErrQuizGeneration)
	}
	ws.Quiz = &quiz

	return quiz, nil
}

// CheckAnswer compares choice with the answer of the current quiz.
func (s *Study) CheckAnswer(ws *model.Workspace, choice string) (QuizResult, error) {
	ws.Lock()
	defer ws.Unlock()

	if ws.Quiz == nil {
		return QuizResult{}, model.ErrNoQuiz
	}
	return QuizResult{
		Correct:     choice == ws.Quiz.Answer,
		Answer:      ws.Quiz.Answer,
		Explanation: ws.Quiz.Explanation,
	}, nil
}

// ParseQuiz decodes a model reply, tolerating markdown code fences.
func ParseQuiz(reply string) (model.Quiz, error) {
	cleaned := strings.ReplaceAll(reply, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var quiz model.Quiz
	if err := json.Unmarshal([]byte(cleaned), &quiz); err != nil {
		return model.Quiz{}, fmt.Errorf("%w: %w", model.ErrQuizGeneration, err)
	}
	if quiz.Question == "" || len(quiz.Options) == 0 || quiz.Answer == "" {
		return model.Quiz{}, fmt.Errorf("%w: incomplete question", model.ErrQuizGeneration)
	}
	return quiz, nil
}

func documentContext(ws *model.Workspace) (string, error) {
	ws.Lock()
	defer ws.Unlock()

	if ws.ContextText == "" {
		return "", model.ErrNoContext
	}
	return ws.ContextText, nil
}
