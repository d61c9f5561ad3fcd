package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchcoach/lineup-service/internal/config"
	"github.com/benchcoach/lineup-service/internal/types"
	"github.com/benchcoach/lineup-service/internal/websocket"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	handler := NewLineupHandler(nil, websocket.NewHub(log), &config.Config{CacheTTLMinutes: 60}, log)

	router := gin.New()
	api := router.Group("/api/v1")
	{
		api.POST("/lineups/generate", handler.GenerateLineups)
		api.POST("/lineups/validate", handler.ValidateLineup)
		api.GET("/sports", handler.ListSports)
		api.GET("/lineups/cache-status", handler.GetCacheStatus)
	}
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func rosterOf(count int) []types.Player {
	players := make([]types.Player, count)
	for i := 0; i < count; i++ {
		players[i] = types.Player{ID: fmt.Sprintf("p%d", i+1), Name: fmt.Sprintf("Player %d", i+1)}
	}
	return players
}

func generateRequest(sport string, players []types.Player) types.GenerateLineupsRequest {
	return types.GenerateLineupsRequest{
		Sport:   sport,
		Players: players,
		GameInfo: types.GameInfo{
			GameID: "game-1",
			TeamID: "team-1",
		},
	}
}

func TestGenerateLineups_Baseball(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/lineups/generate", generateRequest("baseball", rosterOf(10)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.GenerateLineupsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.GenerationID)
	assert.Equal(t, "baseball", resp.Sport)
	require.Len(t, resp.Lineups, 3)
	for _, lineup := range resp.Lineups {
		assert.Len(t, lineup.Assignments, 9)
		assert.Len(t, lineup.BenchPlayers, 1)
	}
	require.NotNil(t, resp.Balance)
	assert.Len(t, resp.Balance.PlayerTotals, 10)
}

func TestGenerateLineups_UnknownSport(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/lineups/generate", generateRequest("cricket", rosterOf(9)))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "UNKNOWN_SPORT", resp.Code)
	assert.Equal(t, "cricket", resp.Details["sport"])
}

func TestGenerateLineups_SoccerNotImplemented(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/lineups/generate", generateRequest("soccer", rosterOf(11)))
	require.Equal(t, http.StatusNotImplemented, w.Code)

	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SPORT_NOT_IMPLEMENTED", resp.Code)
}

func TestGenerateLineups_ValidationFailure(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/lineups/generate", generateRequest("baseball", rosterOf(5)))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_FAILED", resp.Code)
	assert.Contains(t, resp.Details["problem_1"], "insufficient players")
}

func TestGenerateLineups_Infeasible(t *testing.T) {
	router := newTestRouter(t)

	// One pitcher, eight locked-in specialists: period 2 has nobody left
	// to put on the mound.
	players := []types.Player{
		{ID: "p1", Name: "Ace", PositionPreferences: []string{"P"}},
		{ID: "s1", Name: "Catcher", PositionPreferences: []string{"C"}},
		{ID: "s2", Name: "First", PositionPreferences: []string{"1B"}},
		{ID: "s3", Name: "Second", PositionPreferences: []string{"2B"}},
		{ID: "s4", Name: "Third", PositionPreferences: []string{"3B"}},
		{ID: "s5", Name: "Short", PositionPreferences: []string{"SS"}},
		{ID: "s6", Name: "Left", PositionPreferences: []string{"LF"}},
		{ID: "s7", Name: "Center", PositionPreferences: []string{"CF"}},
		{ID: "s8", Name: "Right", PositionPreferences: []string{"RF"}},
	}

	w := postJSON(t, router, "/api/v1/lineups/generate", generateRequest("baseball", players))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INFEASIBLE_LINEUP", resp.Code)
}

func TestGenerateLineups_MalformedBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lineups/generate", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
}

func TestValidateLineup_Endpoint(t *testing.T) {
	router := newTestRouter(t)

	// Generate a real lineup, then feed one period back through the
	// validation endpoint.
	w := postJSON(t, router, "/api/v1/lineups/generate", generateRequest("volleyball", rosterOf(6)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var genResp types.GenerateLineupsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &genResp))
	require.NotEmpty(t, genResp.Lineups)

	w = postJSON(t, router, "/api/v1/lineups/validate", types.ValidateLineupRequest{
		Sport:  "volleyball",
		Lineup: genResp.Lineups[0],
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.ValidateLineupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Violations)
}

func TestValidateLineup_ReportsViolations(t *testing.T) {
	router := newTestRouter(t)

	lineup := types.Lineup{
		Period:     1,
		PeriodName: "Innings 1-2",
		Assignments: []types.PositionAssignment{
			{Player: types.Player{ID: "p1", Name: "Alice"}, Position: "C"},
			{Player: types.Player{ID: "p1", Name: "Alice"}, Position: "1B"},
		},
	}

	w := postJSON(t, router, "/api/v1/lineups/validate", types.ValidateLineupRequest{
		Sport:  "baseball",
		Lineup: lineup,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.ValidateLineupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.NotEmpty(t, resp.Violations)
}

func TestListSports(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sports", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Sports []string `json:"sports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"baseball", "volleyball"}, resp.Sports)
}

func TestGetCacheStatus_WithoutRedis(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lineups/cache-status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["connected"])
}
