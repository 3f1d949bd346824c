package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	httpContext "github.com/studybuddy/studybuddy-server/internal/api/http/context"
	"github.com/studybuddy/studybuddy-server/internal/extract"
	"github.com/studybuddy/studybuddy-server/internal/mocks"
	"github.com/studybuddy/studybuddy-server/internal/repository/memory"
	"github.com/studybuddy/studybuddy-server/internal/repository/snapshot"
	"github.com/studybuddy/studybuddy-server/internal/service"
	"github.com/studybuddy/studybuddy-server/internal/storage/file"
	"github.com/studybuddy/studybuddy-server/internal/testutil"
	"github.com/studybuddy/studybuddy-server/internal/token"
)

// env wires real services over a temp directory with a mocked model
// provider and mailer.
type env struct {
	contextManager *httpContext.Manager
	workspaces     *memory.WorkspaceRepository
	accounts       *snapshot.AccountStore
	history        *snapshot.HistoryStore
	generator      *mocks.Generator
	mailer         *mocks.Mailer

	auth    *service.Auth
	reset   *service.Reset
	session *service.Session
	study   *service.Study
}

func newEnv(t *testing.T) *env {
	t.Helper()

	lg := testutil.MakeNoopLogger()
	storage, err := file.NewClient(t.TempDir())
	require.NoError(t, err)

	e := &env{
		contextManager: httpContext.NewManager(),
		workspaces:     memory.NewWorkspaceRepository(),
		accounts:       snapshot.NewAccountStore(storage, "users.json", lg),
		history:        snapshot.NewHistoryStore(storage, "chat_history.json", lg),
		generator:      mocks.NewGenerator(t),
		mailer:         mocks.NewMailer(t),
	}

	conversation := service.NewConversation(e.generator, lg)
	e.auth = service.NewAuth(e.accounts, token.NewJWT("test-secret"), lg)
	e.reset = service.NewReset(e.accounts, memory.NewResetTicketRepository(), e.mailer, lg)
	e.session = service.NewSession(e.history, conversation, extract.NewExtractor(lg), lg)
	e.study = service.NewStudy(conversation, lg)

	return e
}

// request builds a JSON request, authenticated as username when it is set.
func (e *env) request(t *testing.T, method, path string, body any, username string) *http.Request {
	t.Helper()

	var reader io.Reader = http.NoBody
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if username != "" {
		req = req.WithContext(e.contextManager.SetUsernameToContext(req.Context(), username))
	}
	return req
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func (e *env) signup(t *testing.T, username, password, email string) {
	t.Helper()

	_, err := e.auth.Signup(context.Background(), username, password, email)
	require.NoError(t, err)
}
