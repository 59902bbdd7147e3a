//nolint:unused
package httpserver_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"mflix/httpserver"
	"mflix/pkg/config"
	"mflix/pkg/jwt"

	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = testJWTSecret
	return cfg
}

func signTestToken() (string, error) {
	return jwt.NewJWTProvider(testJWTSecret, time.Hour).GenerateEditorToken("editor")
}

func decodeAPIResponse(t *testing.T, recorder *httptest.ResponseRecorder) httpserver.APIResponse {
	t.Helper()

	var resp httpserver.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp), recorder.Body.String())
	return resp
}

// decodeAPIResult re-decodes the generic result of an envelope into dst.
func decodeAPIResult(t *testing.T, result interface{}, dst interface{}) {
	t.Helper()

	raw, err := json.Marshal(result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dst))
}
