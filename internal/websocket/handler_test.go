package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "storepulse/internal/errors"
	"storepulse/internal/shared/testutil"
	api "storepulse/pkg/contracts/api/v1"
	"storepulse/pkg/contracts/domain"
	"storepulse/pkg/contracts/events"
)

func newTestServer(t *testing.T, svc *MockFilterService, origins []string) (*httptest.Server, *Hub) {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	hub := startedHub(t)

	handler := NewHandler(hub, newTestDispatcher(t, svc), HandlerConfig{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		AllowedOrigins:  origins,
		Client:          testSettings(),
	}, apierrors.NewErrorHandler(logger, false), logger)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, hub
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestHandler_FilterRoundTrip(t *testing.T) {
	svc := new(MockFilterService)
	svc.On("Dataset").Return(testDataset(), testOptions(), nil)
	clusters := []float64{0}
	svc.On("View", "websocket", api.ViewRequest{Clusters: &clusters}).
		Return(domain.DashboardView{Summary: domain.Summary{RowCount: 1, TotalActualVisits: 150, AverageGapDisplay: "50.0"}}, nil)

	server, hub := newTestServer(t, svc, nil)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var greeting struct {
		Type events.MessageType `json:"type"`
		Data events.DatasetData `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&greeting))
	assert.Equal(t, events.MessageTypeDataset, greeting.Type)
	assert.Equal(t, 2, greeting.Data.Rows)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"id":      "1",
		"type":    "filter",
		"filters": map[string]interface{}{"clusters": []float64{0}},
	}))

	var reply struct {
		ID   string               `json:"id"`
		Type events.MessageType   `json:"type"`
		Data domain.DashboardView `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "1", reply.ID)
	assert.Equal(t, events.MessageTypeView, reply.Type)
	assert.Equal(t, int64(150), reply.Data.Summary.TotalActualVisits)
	assert.Equal(t, "50.0", reply.Data.Summary.AverageGapDisplay)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
	svc.AssertExpectations(t)
}

func TestHandler_CheckOrigin(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		allowed bool
	}{
		{name: "no origin header", origins: []string{"https://dash.example.com"}, origin: "", allowed: true},
		{name: "listed origin", origins: []string{"https://dash.example.com"}, origin: "https://dash.example.com", allowed: true},
		{name: "wildcard", origins: []string{"*"}, origin: "https://other.example.com", allowed: true},
		{name: "no list configured", origins: nil, origin: "https://other.example.com", allowed: true},
		{name: "unlisted origin", origins: []string{"https://dash.example.com"}, origin: "https://evil.example.com", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			h := NewHandler(nil, nil, HandlerConfig{AllowedOrigins: tt.origins}, apierrors.NewErrorHandler(logger, false), logger)

			r := httptest.NewRequest(http.MethodGet, "http://localhost:8080/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.allowed, h.checkOrigin(r))
		})
	}
}

func TestHandler_RejectsPlainHTTP(t *testing.T) {
	svc := new(MockFilterService)
	server, _ := newTestServer(t, svc, nil)

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "json")

	var problem map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&problem))
	assert.Equal(t, apierrors.TypeWebSocketUpgrade, problem["type"])
	assert.Equal(t, "WEBSOCKET_UPGRADE_FAILED", problem["error_code"])
}
