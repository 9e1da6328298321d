package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenalab/arena-advisor/internal/advisor"
	"github.com/arenalab/arena-advisor/internal/roster"
)

func newTestServer() *Server {
	service := advisor.NewService([]roster.Character{
		{ID: "1", Name: "Striker", Skills: []roster.Skill{
			{Name: "Slash", Description: "Deals 45 damage to one enemy.", Energy: []string{"red"}},
		}},
		{ID: "2", Name: "Medic", Skills: []roster.Skill{
			{Name: "Mend", Description: "Heals one ally for 25 health.", Energy: []string{"white"}},
		}},
		{ID: "3", Name: "Lockdown", Skills: []roster.Skill{
			{Name: "Hold", Description: "Stuns the target for 1 turn.", Energy: []string{"green"}},
		}},
	})
	return NewServer(DefaultConfig(), service)
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.EqualValues(t, 3, body["characters"])
}

func TestListCharacters(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodGet, "/api/v1/characters", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []roster.Character `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 3)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/characters?q=med", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Medic", body.Data[0].Name)
}

func TestGetCharacterNotFound(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/api/v1/characters/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyzeTeam(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodPost, "/api/v1/teams/analyze", map[string]interface{}{
		"characterIds": []string{"1", "2", "3"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			SynergyScore int `json:"synergyScore"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.GreaterOrEqual(t, body.Data.SynergyScore, 0)
	assert.LessOrEqual(t, body.Data.SynergyScore, 100)
}

func TestAnalyzeTeamUnknownID(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/api/v1/teams/analyze", map[string]interface{}{
		"characterIds": []string{"nope"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuggestionsEndpoint(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/api/v1/teams/suggestions", map[string]interface{}{
		"characterIds": []string{"1"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
}

func TestCountersEndpoint(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/api/v1/teams/counters", map[string]interface{}{
		"enemyIds": []string{"3"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []struct {
			CounterReason string `json:"counterReason"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data)
	assert.NotEmpty(t, body.Data[0].CounterReason)
}

func TestMetaEndpoint(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/api/v1/teams/meta", map[string]interface{}{})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []struct {
			Playstyle string `json:"playstyle"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.NotEmpty(t, body.Data[0].Playstyle)
}

func TestSetOwned(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodPut, "/api/v1/owned", map[string]interface{}{
		"characterIds": []string{"1", "2"},
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/teams/suggestions", map[string]interface{}{
		"characterIds": []string{"1"},
	})
	var body struct {
		Data []struct {
			ID roster.ID `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, roster.ID("2"), body.Data[0].ID)
}

func TestContentTypeEnforced(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams/analyze", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
