package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/csdept/deptsite-api/internal/form"
	"github.com/csdept/deptsite-api/internal/handlers"
	"github.com/csdept/deptsite-api/internal/models"
	"github.com/csdept/deptsite-api/internal/validation"
	apperrors "github.com/csdept/deptsite-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func liveServer(t *testing.T, directory *MockDirectoryService, submitter form.Submitter) *httptest.Server {
	t.Helper()

	handler := handlers.NewLiveHandler(directory, submitter, validation.NewValidator(), handlers.LiveConfig{
		AllowedOrigins: []string{"https://cs.example.edu"},
		ResetDelay:     time.Hour,
		Debounce:       10 * time.Millisecond,
	})
	router := gin.New()
	router.GET("/live", handler.Serve)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func dialLive(t *testing.T, server *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/live"
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) models.LiveMessage {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg models.LiveMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func liveRoster() []models.FacultyMember {
	return []models.FacultyMember{
		{ID: "ada", Name: "Ada Lovelace", Specialization: "ai"},
		{ID: "alan", Name: "Alan Turing", Specialization: "theory"},
	}
}

func TestLiveHandler_Session(t *testing.T) {
	directory := new(MockDirectoryService)
	directory.On("Roster", mock.Anything).Return(liveRoster(), nil)
	submitted := make(chan *models.ContactMessage, 1)
	submitter := form.SubmitterFunc(func(ctx context.Context, msg *models.ContactMessage) error {
		submitted <- msg
		return nil
	})

	conn := dialLive(t, liveServer(t, directory, submitter), nil)

	session := readMessage(t, conn)
	assert.Equal(t, models.LiveMessageSession, session.Type)
	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, models.LiveMessageForm, readMessage(t, conn).Type)
	initial := readMessage(t, conn)
	require.Equal(t, models.LiveMessageDirectory, initial.Type)
	assert.Equal(t, 2, initial.Directory.Visible)

	require.NoError(t, conn.WriteJSON(models.LiveEvent{Type: models.LiveEventPing}))
	assert.Equal(t, models.LiveMessagePong, readMessage(t, conn).Type)

	require.NoError(t, conn.WriteJSON(models.LiveEvent{Type: models.LiveEventSearch, Search: "turing"}))
	filtered := readMessage(t, conn)
	require.Equal(t, models.LiveMessageDirectory, filtered.Type)
	assert.Equal(t, 1, filtered.Directory.Visible)
	assert.Equal(t, "alan", filtered.Directory.Entries[0].ID)

	for _, ev := range []models.LiveEvent{
		{Type: models.LiveEventInput, Field: models.FieldName, Value: "Jo Student"},
		{Type: models.LiveEventInput, Field: models.FieldEmail, Value: "jo@example.edu"},
		{Type: models.LiveEventInput, Field: models.FieldSubject, Value: "general"},
		{Type: models.LiveEventInput, Field: models.FieldMessage, Value: "Hello department!"},
	} {
		require.NoError(t, conn.WriteJSON(ev))
		assert.Equal(t, models.LiveMessageForm, readMessage(t, conn).Type)
	}

	require.NoError(t, conn.WriteJSON(models.LiveEvent{Type: models.LiveEventSubmit}))
	result := readMessage(t, conn)
	require.Equal(t, models.LiveMessageSubmitted, result.Type)
	assert.True(t, *result.Valid)
	state := readMessage(t, conn)
	assert.True(t, state.Form.SuccessVisible)

	select {
	case msg := <-submitted:
		assert.Equal(t, "Jo Student", msg.Name)
	case <-time.After(time.Second):
		t.Fatal("submission was not recorded")
	}
}

func TestLiveHandler_RejectsForeignOrigin(t *testing.T) {
	directory := new(MockDirectoryService)
	directory.On("Roster", mock.Anything).Return(liveRoster(), nil)
	server := liveServer(t, directory, nil)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/live"
	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"https://evil.example.com"}})

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLiveHandler_AllowsConfiguredOrigin(t *testing.T) {
	directory := new(MockDirectoryService)
	directory.On("Roster", mock.Anything).Return(liveRoster(), nil)

	conn := dialLive(t, liveServer(t, directory, nil), http.Header{"Origin": []string{"https://cs.example.edu"}})

	assert.Equal(t, models.LiveMessageSession, readMessage(t, conn).Type)
}

func TestLiveHandler_RosterUnavailable(t *testing.T) {
	directory := new(MockDirectoryService)
	directory.On("Roster", mock.Anything).Return(nil, apperrors.UnavailableError("faculty cache not initialized"))
	server := liveServer(t, directory, nil)

	resp, err := http.Get(server.URL + "/live")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
