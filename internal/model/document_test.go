package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatFromName(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"notes.pdf", FormatPDF},
		{"Notes.PDF", FormatPDF},
		{"essay.docx", FormatDOCX},
		{"deck.PpTx", FormatPPTX},
		{"grades.xlsx", FormatXLSX},
		{"readme.txt", FormatTXT},
		{"archive.tar.txt", FormatTXT},
		{"data.xyz", FormatUnknown},
		{"noext", FormatUnknown},
		{"txt", FormatTXT},
		{"PDF", FormatPDF},
		{"dir.d/pdf", FormatPDF},
		{"trailing.", FormatUnknown},
		{"legacy.doc", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromName(tt.name))
		})
	}
}

func TestResetTicket_Expired(t *testing.T) {
	now := time.Now()

	assert.False(t, ResetTicket{}.Expired(now))
	assert.False(t, ResetTicket{ExpiresAt: now.Add(time.Minute)}.Expired(now))
	assert.True(t, ResetTicket{ExpiresAt: now.Add(-time.Minute)}.Expired(now))
}

func TestWorkspace_Reset(t *testing.T) {
	ws := NewWorkspace("alice")
	ws.SessionName = "Chat: hi..."
	ws.Messages = append(ws.Messages, ChatMessage{Role: RoleUser, Content: "hi"})
	ws.ContextText = "doc"

	ws.Reset()

	assert.Equal(t, UnnamedSession, ws.SessionName)
	assert.Empty(t, ws.Messages)
	assert.Equal(t, "doc", ws.ContextText)
}
