//go:build integration

package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-petr/rentmates/cmd/httpserver"
	"github.com/go-petr/rentmates/pkg/randompkg"
	"github.com/stretchr/testify/require"
)

type account struct {
	Username    string
	Email       string
	AccessToken string
}

func doJSON(t *testing.T, server *httpserver.Server, method, url, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var b []byte
	if body != nil {
		var err error

		b, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(b))
	require.NoError(t, err)

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder, dest any) {
	t.Helper()

	require.NoError(t, json.NewDecoder(recorder.Body).Decode(dest))
}

// signUp registers a random user through the API.
func signUp(t *testing.T, server *httpserver.Server) account {
	t.Helper()

	a := account{
		Username: randompkg.Username(),
		Email:    randompkg.Email(),
	}

	recorder := doJSON(t, server, http.MethodPost, "/users", "", map[string]string{
		"username": a.Username,
		"password": randompkg.String(10),
		"fullname": randompkg.String(8),
		"email":    a.Email,
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var res struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, recorder, &res)

	a.AccessToken = res.AccessToken

	return a
}
