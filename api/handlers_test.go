package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T, method, url string, body any) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	request, err := http.NewRequest(method, url, bytes.NewReader(data))
	require.NoError(t, err)

	return request, httptest.NewRecorder()
}

func TestTokenHandler(t *testing.T) {
	t.Run("returns token (happy case)", func(t *testing.T) {
		body := map[string]string{
			"username": "judge",
		}

		request, response := newRequest(t, http.MethodPost, "/token", body)

		testServer.TokenHandler(response, request)

		require.Equal(t, http.StatusOK, response.Code)

		var got struct {
			Success bool              `json:"success"`
			Data    map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &got))
		require.True(t, got.Success)
		require.Equal(t, "judge", got.Data["username"])
		require.NotEmpty(t, got.Data["token"])
		require.NotEmpty(t, got.Data["id"])
	})

	t.Run("missing username", func(t *testing.T) {
		request, response := newRequest(t, http.MethodPost, "/token", map[string]string{})

		testServer.TokenHandler(response, request)

		require.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		request, response := newRequest(t, http.MethodGet, "/token", nil)

		testServer.TokenHandler(response, request)

		require.Equal(t, http.StatusMethodNotAllowed, response.Code)
	})
}

func TestMatchesHandler(t *testing.T) {
	request, response := newRequest(t, http.MethodGet, "/matches", nil)

	testServer.MatchesHandler(response, request)

	require.Equal(t, http.StatusOK, response.Code)
}

func TestHealthHandler(t *testing.T) {
	request, response := newRequest(t, http.MethodGet, "/healthz", nil)

	testServer.HealthHandler(response, request)

	require.Equal(t, http.StatusOK, response.Code)
}
