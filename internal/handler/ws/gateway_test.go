package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/hub"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/jwt"
)

const testSecret = "gateway-test-secret"

func encodeToken(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	ta := jwtauth.New("HS256", []byte(testSecret), nil)
	_, tokenString, err := ta.Encode(claims)
	require.NoError(t, err)
	return tokenString
}

func accessToken(t *testing.T, userID int64) string {
	return encodeToken(t, map[string]interface{}{
		"user_id": userID,
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
}

func newTestGateway(t *testing.T) (*hub.Hub, *httptest.Server) {
	t.Helper()
	h := hub.NewHub()
	gw := NewGateway(h, jwt.NewJWTService(testSecret), nil)

	r := chi.NewRouter()
	r.Get("/ws/notifications/{userID}", gw.ServeNotifications)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return h, srv
}

func dial(t *testing.T, srv *httptest.Server, userID string, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/notifications/" + userID + "?token=" + token
	return websocket.DefaultDialer.Dial(url, nil)
}

func waitForMembers(t *testing.T, h *hub.Hub, group string, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return h.GroupSize(group) == want
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGateway_AdmitsAndDeliversPushes(t *testing.T) {
	h, srv := newTestGateway(t)

	conn, _, err := dial(t, srv, "42", accessToken(t, 42))
	require.NoError(t, err)
	defer conn.Close()

	waitForMembers(t, h, hub.UserGroup(42), 1)

	h.Send(hub.UserGroup(42), []byte(`{"message":"hi"}`))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"hi"}`, string(payload))
}

func TestGateway_AcksInboundFrames(t *testing.T) {
	h, srv := newTestGateway(t)

	conn, _, err := dial(t, srv, "7", accessToken(t, 7))
	require.NoError(t, err)
	defer conn.Close()

	waitForMembers(t, h, hub.UserGroup(7), 1)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("anything")))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"ack": "Message received"}`, string(payload))
}

func TestGateway_TwoConnectionsSameUserBothReceive(t *testing.T) {
	h, srv := newTestGateway(t)

	token := accessToken(t, 9)
	conn1, _, err := dial(t, srv, "9", token)
	require.NoError(t, err)
	defer conn1.Close()
	conn2, _, err := dial(t, srv, "9", token)
	require.NoError(t, err)
	defer conn2.Close()

	waitForMembers(t, h, hub.UserGroup(9), 2)

	h.Send(hub.UserGroup(9), []byte(`{"n":1}`))

	for _, conn := range []*websocket.Conn{conn1, conn2} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.JSONEq(t, `{"n":1}`, string(payload))
	}
}

func TestGateway_SubjectMismatchRejectedBeforeJoin(t *testing.T) {
	h, srv := newTestGateway(t)

	// Token for user 42, path claims user 43
	_, resp, err := dial(t, srv, "43", accessToken(t, 42))
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, h.TotalConns())
}

func TestGateway_InvalidTokenRejected(t *testing.T) {
	h, srv := newTestGateway(t)

	_, resp, err := dial(t, srv, "42", "garbage")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, h.TotalConns())
}

func TestGateway_MissingTokenRejected(t *testing.T) {
	h, srv := newTestGateway(t)

	_, resp, err := dial(t, srv, "42", "")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, h.TotalConns())
}

func TestGateway_WrongTokenTypeRejected(t *testing.T) {
	h, srv := newTestGateway(t)

	token := encodeToken(t, map[string]interface{}{
		"user_id": 42,
		"type":    "refresh",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	_, resp, err := dial(t, srv, "42", token)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, h.TotalConns())
}

func TestGateway_DisconnectLeavesGroup(t *testing.T) {
	h, srv := newTestGateway(t)

	conn, _, err := dial(t, srv, "42", accessToken(t, 42))
	require.NoError(t, err)

	waitForMembers(t, h, hub.UserGroup(42), 1)

	conn.Close()

	waitForMembers(t, h, hub.UserGroup(42), 0)
	assert.Equal(t, 0, h.TotalConns())
}
