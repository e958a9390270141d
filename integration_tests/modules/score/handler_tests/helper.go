//go:build integration

package scorehandlerintegrationtests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Black-And-White-Club/hackathon-admin/app"
	authjwt "github.com/Black-And-White-Club/hackathon-admin/app/modules/auth/infrastructure/jwt"
	userdb "github.com/Black-And-White-Club/hackathon-admin/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/hackathon-admin/integration_tests/testutils"
	"github.com/Black-And-White-Club/hackathon-admin/pkg/observability"
)

type TestDeps struct {
	Env        *testutils.TestEnvironment
	App        *app.App
	Server     *httptest.Server
	AdminToken string
	UserToken  string
}

// SetupTestServer wires the whole application on the test database and serves
// it over a real listener.
func SetupTestServer(t *testing.T) TestDeps {
	t.Helper()

	env := testutils.GetOrCreateTestEnv(t)
	env.Reset(t)

	application, err := app.Initialize(env.Ctx, env.Config, observability.NewNoop(), env.DB)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	generator := testutils.NewTestDataGenerator()

	grant, err := application.Modules.Auth.GetService().GrantAdmin(env.Ctx, generator.GenerateEmail(), time.Hour)
	require.NoError(t, err)

	member := &userdb.User{Email: generator.GenerateEmail(), Role: "user"}
	require.NoError(t, userdb.NewRepository(env.DB).Create(env.Ctx, nil, member))
	userToken, err := authjwt.NewProvider(testutils.TestJWTSecret, "").GenerateToken(member.ID, member.Email, time.Hour)
	require.NoError(t, err)

	return TestDeps{
		Env:        env,
		App:        application,
		Server:     srv,
		AdminToken: grant.Token,
		UserToken:  userToken,
	}
}

// do sends a request with an optional bearer token and JSON body.
func (d TestDeps) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, d.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := d.Server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
