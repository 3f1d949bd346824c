package handler

import (
	"context"
	"net/http"

	"github.com/studybuddy/studybuddy-server/internal/logger"
	"github.com/studybuddy/studybuddy-server/internal/model"
	"github.com/studybuddy/studybuddy-server/internal/service"
)

// StudyService defines the document study tools.
type StudyService interface {
	Summarize(ctx context.Context, ws *model.Workspace) (string, error)
	Explain(ctx context.Context, ws *model.Workspace, topic string) (string, error)
	GenerateQuiz(ctx context.Context, ws *model.Workspace) (model.Quiz, error)
	CheckAnswer(ws *model.Workspace, choice string) (service.QuizResult, error)
}

type Study struct {
	studyService StudyService
	resolver     workspaceResolver
	logger       *logger.Logger
}

func NewStudy(
	studyService StudyService,
	workspaces model.WorkspaceStore,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Study {
	return &Study{
		studyService: studyService,
		resolver:     workspaceResolver{workspaces: workspaces, contextManager: contextManager},
		logger:       logger,
	}
}

type textResponse struct {
	Text string `json:"text"`
}

type explainRequest struct {
	Topic string `json:"topic"`
}

// quizResponse omits the answer until the user has chosen.
type quizResponse struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type answerRequest struct {
	Choice string `json:"choice"`
}

func (h *Study) Summary(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.resolver.workspace(w, r)
	if !ok {
		return
	}

	text, err := h.studyService.Summarize(r.Context(), ws)
	if err != nil {
		handleError(w, err)
		return
	}

	JSON(w, http.StatusOK, textResponse{Text: text})
}

func (h *Study) Explain(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.resolver.workspace(w, r)
	if !ok {
		return
	}

	var req explainRequest
	if err := decode(r, &req); err != nil {
		handleError(w, err)
		return
	}

	text, err := h.studyService.Explain(r.Context(), ws, req.Topic)
	if err != nil {
		handleError(w, err)
		return
	}

	JSON(w, http.StatusOK, textResponse{Text: text})
}

func (h *Study) Quiz(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.resolver.workspace(w, r)
	if !ok {
		return
	}

	quiz, err := h.studyService.GenerateQuiz(r.Context(), ws)
	if err != nil {
		h.logger.Warn("Study handler: quiz unavailable",
			"username", ws.Username,
			"error", err.Error())
		handleError(w, err)
		return
	}

	JSON(w, http.StatusOK, quizResponse{Question: quiz.Question, Options: quiz.Options})
}

func (h *Study) Answer(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.resolver.workspace(w, r)
	if !ok {
		return
	}

	var req answerRequest
	if err := decode(r, &req); err != nil {
		handleError(w, err)
		return
	}

	result, err := h.studyService.CheckAnswer(ws, req.Choice)
	if err != nil {
		handleError(w, err)
		return
	}

	JSON(w, http.StatusOK, result)
}
