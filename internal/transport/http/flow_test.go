package httptransport_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"clinicore/internal/auth/hasher"
	authservice "clinicore/internal/auth/service"
	authstore "clinicore/internal/auth/store"
	"clinicore/internal/auth/store/refresh"
	"clinicore/internal/auth/token"
	patientservice "clinicore/internal/patient/service"
	patientstore "clinicore/internal/patient/store"
	httptransport "clinicore/internal/transport/http"
	"clinicore/pkg/testutil"
)

func newTestRouter() http.Handler {
	patients := patientservice.New(patientstore.NewMemoryStore())
	auth := authservice.New(
		authstore.NewMemoryUserStore(),
		hasher.NewBcryptHasher(bcrypt.MinCost),
		token.NewJWTIssuer("flow-test-key", "clinicore", "clinicore-api", 15*time.Minute),
		authservice.WithRefreshTokenStore(refresh.NewMemoryStore(), 24*time.Hour),
	)
	return httptransport.NewRouter(patients, auth)
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegistrationAndLoginFlow(t *testing.T) {
	testutil.Given(t, "a router backed by real services", func(t *testing.T) {
		router := newTestRouter()

		testutil.When(t, "a user registers and logs in", func(t *testing.T) {
			rec := postJSON(t, router, "/auth/register",
				`{"username": "ana", "email": "ana@example.com", "password": "correct horse"}`)
			require.Equal(t, http.StatusCreated, rec.Code)

			rec = postJSON(t, router, "/auth/login",
				`{"email": "ana@example.com", "password": "correct horse"}`)

			testutil.Then(t, "a signed access token is returned", func(t *testing.T) {
				require.Equal(t, http.StatusOK, rec.Code)
				var result struct {
					AccessToken string `json:"access_token"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
				require.Equal(t, 3, len(strings.Split(result.AccessToken, ".")))
			})
		})

		testutil.When(t, "a logged-in user exchanges the refresh token", func(t *testing.T) {
			rec := postJSON(t, router, "/auth/login",
				`{"email": "ana@example.com", "password": "correct horse"}`)
			require.Equal(t, http.StatusOK, rec.Code)
			var login struct {
				RefreshToken string `json:"refresh_token"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
			require.NotEmpty(t, login.RefreshToken)

			rec = postJSON(t, router, "/auth/refresh",
				`{"refresh_token": "`+login.RefreshToken+`"}`)

			testutil.Then(t, "a rotated pair comes back and the old token dies", func(t *testing.T) {
				require.Equal(t, http.StatusOK, rec.Code)
				var refreshed struct {
					RefreshToken string `json:"refresh_token"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshed))
				require.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

				replay := postJSON(t, router, "/auth/refresh",
					`{"refresh_token": "`+login.RefreshToken+`"}`)
				require.Equal(t, http.StatusUnauthorized, replay.Code)
			})
		})

		testutil.When(t, "a patient registers twice with the same DNI", func(t *testing.T) {
			body := `{
				"first_name": "Ana",
				"last_name": "Muñoz",
				"dni": "12345678Z",
				"date_of_birth": "1990-06-15",
				"email": "ana@example.com",
				"phone": "+34 612 345 678",
				"street": "Calle Mayor 1",
				"city": "Madrid",
				"state": "Madrid",
				"postal_code": "28001",
				"country": "España"
			}`
			rec := postJSON(t, router, "/patients", body)
			require.Equal(t, http.StatusCreated, rec.Code)

			rec = postJSON(t, router, "/patients", body)

			testutil.Then(t, "the second attempt conflicts", func(t *testing.T) {
				require.Equal(t, http.StatusConflict, rec.Code)
			})
		})
	})
}
