package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "slapflip-backend/internal/common/errors"
	"slapflip-backend/internal/features/twitter/models"
	"slapflip-backend/internal/features/twitter/repository/memory"
	userMemory "slapflip-backend/internal/features/user/repository/memory"
	userService "slapflip-backend/internal/features/user/service"
	wlModels "slapflip-backend/internal/features/whitelist/models"
	wlMemory "slapflip-backend/internal/features/whitelist/repository/memory"
	wlService "slapflip-backend/internal/features/whitelist/service"
)

const (
	walletA = "0x1111111111111111111111111111111111111111"
	walletB = "0x2222222222222222222222222222222222222222"
)

type fakeTwitter struct {
	*httptest.Server
	profile     models.Profile
	profileCode int
}

func newFakeTwitter(t *testing.T) *fakeTwitter {
	t.Helper()
	ft := &fakeTwitter{
		profile:     models.Profile{ID: "1001", Username: "slapmaster", Name: "Slap Master"},
		profileCode: http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/2/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.Form.Get("code") != "good-code" || r.Form.Get("code_verifier") == "" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		if user, _, ok := r.BasicAuth(); !ok || user != "client-id" {
			http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access-token","token_type":"bearer","expires_in":7200}`))
	})
	mux.HandleFunc("/2/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if ft.profileCode != http.StatusOK {
			w.WriteHeader(ft.profileCode)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": ft.profile})
	})

	ft.Server = httptest.NewServer(mux)
	t.Cleanup(ft.Close)
	return ft
}

type testEnv struct {
	svc       *twitterService
	sessions  *memory.Repository
	whitelist wlService.WhitelistService
	wlRepo    *wlMemory.Repository
	userRepo  *userMemory.Repository
	twitter   *fakeTwitter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ft := newFakeTwitter(t)

	sessions := memory.NewRepository()
	wlRepo := wlMemory.NewRepository()
	userRepo := userMemory.NewRepository()
	whitelist := wlService.NewWhitelistService(wlRepo, nil, wlService.Options{})
	users := userService.NewUserService(userRepo, nil, time.Minute)

	cfg := Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		CallbackURL:  "http://localhost:8080/api/auth/twitter/callback",
		AuthURL:      ft.URL + "/i/oauth2/authorize",
		TokenURL:     ft.URL + "/2/oauth2/token",
		APIBaseURL:   ft.URL,
		SessionTTL:   10 * time.Minute,
		RedirectURL:  "/whitelist",
	}
	svc := NewTwitterService(cfg, sessions, whitelist, users).(*twitterService)

	return &testEnv{
		svc:       svc,
		sessions:  sessions,
		whitelist: whitelist,
		wlRepo:    wlRepo,
		userRepo:  userRepo,
		twitter:   ft,
	}
}

func stateFrom(t *testing.T, authURL string) string {
	t.Helper()
	u, err := url.Parse(authURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.NotEmpty(t, q.Get("code_challenge"))
	assert.Equal(t, "tweet.read users.read", q.Get("scope"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	require.NotEmpty(t, q.Get("state"))
	return q.Get("state")
}

func TestConnectScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	authURL, err := env.svc.Begin(ctx, walletA)
	require.NoError(t, err)
	state := stateFrom(t, authURL)
	assert.Equal(t, 1, env.sessions.Len())

	loc := env.svc.Complete(ctx, "good-code", state)
	assert.Equal(t, "/whitelist?twitter=connected", loc)

	app, err := env.wlRepo.GetByAddress(ctx, walletA)
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.True(t, app.TwitterConnected)
	assert.Equal(t, "slapmaster", app.TwitterUsername)
	assert.Equal(t, "1001", app.TwitterID)
	assert.Equal(t, wlModels.StatusNone, app.Status)

	user, err := env.userRepo.GetByAddress(ctx, walletA)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, user.TwitterConnected)
	assert.Equal(t, "Slap Master", user.TwitterName)

	assert.Equal(t, 0, env.sessions.Len(), "session must be consumed")
	assert.Equal(t, "/whitelist?error=invalid_state", env.svc.Complete(ctx, "good-code", state))
}

func TestBeginReplacesPriorSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.Begin(ctx, walletA)
	require.NoError(t, err)
	second, err := env.svc.Begin(ctx, "0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, 1, env.sessions.Len())

	assert.Equal(t, "/whitelist?error=invalid_state", env.svc.Complete(ctx, "good-code", stateFrom(t, first)))
	assert.Equal(t, "/whitelist?twitter=connected", env.svc.Complete(ctx, "good-code", stateFrom(t, second)))
}

func TestBeginValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Begin(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	env.svc.oauth.ClientID = ""
	_, err = env.svc.Begin(context.Background(), walletA)
	require.Error(t, err)
	assert.Equal(t, 0, env.sessions.Len())
}

func TestCompleteFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assert.Equal(t, "/whitelist?error=missing_code", env.svc.Complete(ctx, "", "x"))
	assert.Equal(t, "/whitelist?error=missing_state", env.svc.Complete(ctx, "good-code", ""))
	assert.Equal(t, "/whitelist?error=invalid_state", env.svc.Complete(ctx, "good-code", "unknown"))

	authURL, err := env.svc.Begin(ctx, walletA)
	require.NoError(t, err)
	assert.Equal(t, "/whitelist?error=token_exchange_failed", env.svc.Complete(ctx, "bad-code", stateFrom(t, authURL)))

	env.twitter.profileCode = http.StatusTooManyRequests
	authURL, err = env.svc.Begin(ctx, walletA)
	require.NoError(t, err)
	assert.Equal(t, "/whitelist?error=profile_fetch_failed", env.svc.Complete(ctx, "good-code", stateFrom(t, authURL)))

	app, err := env.wlRepo.GetByAddress(ctx, walletA)
	require.NoError(t, err)
	assert.Nil(t, app)
}

func TestCompleteExpiredSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	authURL, err := env.svc.Begin(ctx, walletA)
	require.NoError(t, err)

	env.svc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }
	assert.Equal(t, "/whitelist?error=invalid_state", env.svc.Complete(ctx, "good-code", stateFrom(t, authURL)))
	assert.Equal(t, 0, env.sessions.Len())
}

func TestCompleteRejectsAlreadyLinkedTwitter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	authURL, err := env.svc.Begin(ctx, walletA)
	require.NoError(t, err)
	require.Equal(t, "/whitelist?twitter=connected", env.svc.Complete(ctx, "good-code", stateFrom(t, authURL)))

	authURL, err = env.svc.Begin(ctx, walletB)
	require.NoError(t, err)
	assert.Equal(t, "/whitelist?error=twitter_already_linked", env.svc.Complete(ctx, "good-code", stateFrom(t, authURL)))
	assert.Equal(t, 0, env.sessions.Len(), "the rejected state is consumed and cannot be replayed")

	app, err := env.wlRepo.GetByAddress(ctx, walletB)
	require.NoError(t, err)
	assert.Nil(t, app, "no writes for the second wallet")
	user, err := env.userRepo.GetByAddress(ctx, walletB)
	require.NoError(t, err)
	assert.Nil(t, user)

	// relinking the same wallet is allowed
	authURL, err = env.svc.Begin(ctx, walletA)
	require.NoError(t, err)
	assert.Equal(t, "/whitelist?twitter=connected", env.svc.Complete(ctx, "good-code", stateFrom(t, authURL)))
}

func TestLocationKeepsAbsoluteRedirect(t *testing.T) {
	env := newTestEnv(t)
	env.svc.redirect = "https://slapflip.example/whitelist?ref=x"

	assert.Equal(t, "https://slapflip.example/whitelist?error=missing_code&ref=x", env.svc.Complete(context.Background(), "", ""))
}
