package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	servermocks "github.com/studybuddy/studybuddy-server/internal/mocks"
	"github.com/studybuddy/studybuddy-server/internal/model"
	"github.com/studybuddy/studybuddy-server/internal/repository/snapshot"
	"github.com/studybuddy/studybuddy-server/internal/storage/file"
	"github.com/studybuddy/studybuddy-server/internal/testutil"
)

func user(content string) model.ChatMessage {
	return model.ChatMessage{Role: model.RoleUser, Content: content}
}

func assistant(content string) model.ChatMessage {
	return model.ChatMessage{Role: model.RoleAssistant, Content: content}
}

func newFileHistory(t *testing.T) *snapshot.HistoryStore {
	t.Helper()

	storage, err := file.NewClient(t.TempDir())
	require.NoError(t, err)
	return snapshot.NewHistoryStore(storage, "chat_history.json", testutil.MakeNoopLogger())
}

func TestSessionName(t *testing.T) {
	assert.Equal(t, "Chat: short...", SessionName("short"))
	assert.Equal(t, "Chat: What is photosynthes...", SessionName("What is photosynthesis and why?"))
	assert.Equal(t, "Chat: "+strings.Repeat("é", 20)+"...", SessionName(strings.Repeat("é", 24)))
}

func TestSession_AskNamesAndPersists(t *testing.T) {
	ctx := context.Background()
	history := newFileHistory(t)

	gen := servermocks.NewGenerator(t)
	gen.On("Generate", mock.Anything, []model.ChatMessage{}, "What is ATP?").Return("Energy currency.", nil).Once()
	gen.On("Generate", mock.Anything, []model.ChatMessage{user("What is ATP?"), assistant("Energy currency.")}, "And ADP?").
		Return("Its spent form.", nil).Once()

	s := NewSession(history, NewConversation(gen, testutil.MakeNoopLogger()), nil, testutil.MakeNoopLogger())
	ws := model.NewWorkspace("alice")

	reply, err := s.Ask(ctx, ws, "What is ATP?")
	require.NoError(t, err)
	assert.Equal(t, "Energy currency.", reply)
	assert.Equal(t, "Chat: What is ATP?...", ws.SessionName)

	_, err = s.Ask(ctx, ws, "And ADP?")
	require.NoError(t, err)
	assert.Equal(t, "Chat: What is ATP?...", ws.SessionName)

	want := []model.ChatMessage{
		user("What is ATP?"), assistant("Energy currency."),
		user("And ADP?"), assistant("Its spent form."),
	}
	stored, ok := history.Load(ctx).Get("Chat: What is ATP?...")
	require.True(t, ok)
	if diff := cmp.Diff(want, stored); diff != "" {
		t.Errorf("stored transcript mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, ws.Messages); diff != "" {
		t.Errorf("workspace transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_AskUsesDocumentContext(t *testing.T) {
	history := servermocks.NewHistoryStore(t)
	history.On("SaveSession", mock.Anything, "Chat: summarize...", mock.Anything).Return(nil)

	gen := servermocks.NewGenerator(t)
	gen.On("Generate", mock.Anything, mock.Anything, "Context: mitochondria notes\n\nQuestion: summarize").Return("ok", nil)

	s := NewSession(history, NewConversation(gen, testutil.MakeNoopLogger()), nil, testutil.MakeNoopLogger())
	ws := model.NewWorkspace("alice")
	ws.ContextText = "mitochondria notes"

	_, err := s.Ask(context.Background(), ws, "summarize")
	require.NoError(t, err)
}

func TestSession_AskGenerationFailureStillRecorded(t *testing.T) {
	history := servermocks.NewHistoryStore(t)
	history.On("SaveSession", mock.Anything, "Chat: hi...", []model.ChatMessage{user("hi"), assistant(FallbackReply)}).Return(nil).Once()

	gen := servermocks.NewGenerator(t)
	gen.On("Generate", mock.Anything, mock.Anything, "hi").Return("", assert.AnError)

	s := NewSession(history, NewConversation(gen, testutil.MakeNoopLogger()), nil, testutil.MakeNoopLogger())

	reply, err := s.Ask(context.Background(), model.NewWorkspace("alice"), "hi")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
}

func TestSession_AskPersistFailure(t *testing.T) {
	history := servermocks.NewHistoryStore(t)
	history.On("SaveSession", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	gen := servermocks.NewGenerator(t)
	gen.On("Generate", mock.Anything, mock.Anything, "hi").Return("hello", nil)

	s := NewSession(history, NewConversation(gen, testutil.MakeNoopLogger()), nil, testutil.MakeNoopLogger())
	ws := model.NewWorkspace("alice")

	reply, err := s.Ask(context.Background(), ws, "hi")
	require.ErrorIs(t, err, model.ErrPersistFailed)
	assert.Equal(t, "hello", reply)
	assert.Len(t, ws.Messages, 2)
}

func TestSession_AskEmptyPrompt(t *testing.T) {
	s := NewSession(servermocks.NewHistoryStore(t), nil, nil, testutil.MakeNoopLogger())

	_, err := s.Ask(context.Background(), model.NewWorkspace("alice"), "   ")
	require.ErrorIs(t, err, model.ErrMissingFields)
}

func TestSession_NewChatKeepsContext(t *testing.T) {
	s := NewSession(servermocks.NewHistoryStore(t), nil, nil, testutil.MakeNoopLogger())
	ws := model.NewWorkspace("alice")
	ws.SessionName = "Chat: x..."
	ws.Messages = []model.ChatMessage{user("x"), assistant("y")}
	ws.ContextText = "notes"

	chat := s.NewChat(context.Background(), ws)
	assert.Equal(t, model.UnnamedSession, chat.Name)
	assert.Empty(t, chat.Messages)
	assert.Equal(t, "notes", ws.ContextText)
}

func TestSession_LoadChat(t *testing.T) {
	ctx := context.Background()
	history := newFileHistory(t)
	require.NoError(t, history.SaveSession(ctx, "Chat: cells...", []model.ChatMessage{user("cells"), assistant("tiny")}))

	s := NewSession(history, nil, nil, testutil.MakeNoopLogger())
	ws := model.NewWorkspace("alice")

	chat, err := s.LoadChat(ctx, ws, "Chat: cells...")
	require.NoError(t, err)
	assert.Equal(t, "Chat: cells...", chat.Name)
	assert.Equal(t, "Chat: cells...", ws.SessionName)
	assert.Len(t, ws.Messages, 2)

	_, err = s.LoadChat(ctx, ws, "missing")
	require.ErrorIs(t, err, model.ErrSessionNotFound)
	assert.Equal(t, "Chat: cells...", ws.SessionName)
}

func TestSession_DeleteChat(t *testing.T) {
	ctx := context.Background()
	history := newFileHistory(t)
	require.NoError(t, history.SaveSession(ctx, "a", []model.ChatMessage{user("1")}))
	require.NoError(t, history.SaveSession(ctx, "b", []model.ChatMessage{user("2")}))

	s := NewSession(history, nil, nil, testutil.MakeNoopLogger())
	ws := model.NewWorkspace("alice")
	_, err := s.LoadChat(ctx, ws, "a")
	require.NoError(t, err)

	require.NoError(t, s.DeleteChat(ctx, ws, "b"))
	assert.Equal(t, "a", ws.SessionName)

	require.NoError(t, s.DeleteChat(ctx, ws, "a"))
	assert.Equal(t, model.UnnamedSession, ws.SessionName)
	assert.Empty(t, ws.Messages)

	require.NoError(t, s.DeleteChat(ctx, ws, "never-existed"))
	assert.Empty(t, s.ListChats(ctx))
}

func TestSession_ListChatsAndStats(t *testing.T) {
	ctx := context.Background()
	history := newFileHistory(t)
	for i, name := range []string{"s1", "s2", "s3", "s4", "s5", "s6"} {
		msgs := make([]model.ChatMessage, 0, 2*(i+1))
		for j := 0; j <= i; j++ {
			msgs = append(msgs, user("q"), assistant("a"))
		}
		require.NoError(t, history.SaveSession(ctx, name, msgs))
	}

	s := NewSession(history, nil, nil, testutil.MakeNoopLogger())

	assert.Equal(t, []string{"s6", "s5", "s4", "s3", "s2", "s1"}, s.ListChats(ctx))

	stats := s.Stats(ctx)
	assert.Equal(t, 6, stats.TotalSessions)
	assert.Equal(t, 21, stats.TotalQueries)
	assert.Equal(t, []SessionActivity{
		{Name: "s2", Messages: 4},
		{Name: "s3", Messages: 6},
		{Name: "s4", Messages: 8},
		{Name: "s5", Messages: 10},
		{Name: "s6", Messages: 12},
	}, stats.Recent)
}

func TestSession_StatsEmpty(t *testing.T) {
	s := NewSession(newFileHistory(t), nil, nil, testutil.MakeNoopLogger())

	stats := s.Stats(context.Background())
	assert.Zero(t, stats.TotalSessions)
	assert.Zero(t, stats.TotalQueries)
	assert.NotNil(t, stats.Recent)
	assert.Empty(t, stats.Recent)
}

func TestSession_SetContext(t *testing.T) {
	upload := model.Upload{Name: "notes.txt", Data: []byte("hello")}

	extractor := servermocks.NewDocumentExtractor(t)
	extractor.On("Extract", mock.Anything, upload).Return(model.Extraction{Format: model.FormatTXT, Text: "hello"}).Once()

	s := NewSession(servermocks.NewHistoryStore(t), nil, extractor, testutil.MakeNoopLogger())
	ws := model.NewWorkspace("alice")
	ws.Quiz = &model.Quiz{Question: "old"}

	res := s.SetContext(context.Background(), ws, upload)
	require.NoError(t, res.Err)
	assert.Equal(t, "hello", ws.ContextText)
	assert.Equal(t, "notes.txt", ws.ContextFile)
	assert.Nil(t, ws.Quiz)
}

func TestSession_SetContextKeepsPartialText(t *testing.T) {
	upload := model.Upload{Name: "deck.pptx", Data: []byte("zip")}

	extractor := servermocks.NewDocumentExtractor(t)
	extractor.On("Extract", mock.Anything, upload).Return(model.Extraction{
		Format: model.FormatPPTX,
		Text:   "slide one\n",
		Err:    model.ErrExtractionFailed,
	})

	s := NewSession(servermocks.NewHistoryStore(t), nil, extractor, testutil.MakeNoopLogger())
	ws := model.NewWorkspace("alice")

	res := s.SetContext(context.Background(), ws, upload)
	assert.ErrorIs(t, res.Err, model.ErrExtractionFailed)
	assert.Equal(t, "slide one\n", ws.ContextText)
}
