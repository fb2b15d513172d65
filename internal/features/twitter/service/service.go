package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	apperrors "slapflip-backend/internal/common/errors"
	"slapflip-backend/internal/common/logger"
	"slapflip-backend/internal/common/validation"
	"slapflip-backend/internal/features/twitter/models"
	"slapflip-backend/internal/features/twitter/repository"
	"slapflip-backend/internal/utils/format"
	"slapflip-backend/internal/utils/random"
)

const stateBytes = 32

var scopes = []string{"tweet.read", "users.read"}

type Config struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
	AuthURL      string
	TokenURL     string
	APIBaseURL   string
	SessionTTL   time.Duration
	// RedirectURL is where the browser lands after the callback.
	RedirectURL string
}

// WhitelistLinker is the part of the whitelist service the callback writes to.
type WhitelistLinker interface {
	FindLinkedAddress(ctx context.Context, username, except string) (string, error)
	ConnectTwitter(ctx context.Context, address string, profile models.Profile) error
}

type UserLinker interface {
	LinkTwitter(ctx context.Context, address string, profile models.Profile) error
}

type TwitterService interface {
	// Begin stores a fresh session for address and returns the authorization URL.
	Begin(ctx context.Context, address string) (string, error)
	// Complete finishes the handshake and returns the redirect location.
	// Every failure is encoded in the location's error parameter.
	Complete(ctx context.Context, code, state string) string
}

type twitterService struct {
	sessions   repository.SessionRepository
	whitelist  WhitelistLinker
	users      UserLinker
	oauth      *oauth2.Config
	apiBase    string
	sessionTTL time.Duration
	redirect   string
	httpClient *http.Client
	now        func() time.Time
}

func NewTwitterService(cfg Config, sessions repository.SessionRepository, whitelist WhitelistLinker, users UserLinker) TwitterService {
	return &twitterService{
		sessions:  sessions,
		whitelist: whitelist,
		users:     users,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		apiBase:    strings.TrimRight(cfg.APIBaseURL, "/"),
		sessionTTL: cfg.SessionTTL,
		redirect:   cfg.RedirectURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

func (s *twitterService) Begin(ctx context.Context, address string) (string, error) {
	addr, err := validation.ValidateAddress(address)
	if err != nil {
		return "", apperrors.NewValidationError("address", err.Error())
	}
	if s.oauth.ClientID == "" {
		return "", apperrors.New(apperrors.ErrCodeInternal, "Twitter client is not configured")
	}

	state, err := random.Token(stateBytes)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to generate state")
	}
	verifier := oauth2.GenerateVerifier()

	session := &models.AuthSession{
		Address:      addr,
		State:        state,
		CodeVerifier: verifier,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", apperrors.NewDatabaseError("save auth session", err)
	}

	logger.Debug().Str("address", format.Address(addr)).Msg("Twitter auth session started")
	return s.oauth.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier)), nil
}

func (s *twitterService) Complete(ctx context.Context, code, state string) string {
	if code == "" {
		return s.failure(models.ErrMissingCode)
	}
	if state == "" {
		return s.failure(models.ErrMissingState)
	}

	session, err := s.sessions.Consume(ctx, state)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load twitter auth session")
		return s.failure(models.ErrInternal)
	}
	if session == nil || s.expired(session) {
		return s.failure(models.ErrInvalidState)
	}
	log := logger.Component("twitter").With().Str("address", format.Address(session.Address)).Logger()

	token, err := s.oauth.Exchange(ctx, code, oauth2.VerifierOption(session.CodeVerifier))
	if err != nil {
		log.Warn().Err(err).Msg("Twitter token exchange failed")
		return s.failure(models.ErrTokenExchangeFailed)
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("Twitter profile fetch failed")
		return s.failure(models.ErrProfileFetchFailed)
	}

	holder, err := s.whitelist.FindLinkedAddress(ctx, profile.Username, session.Address)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check twitter uniqueness")
		return s.failure(models.ErrInternal)
	}
	if holder != "" {
		log.Warn().Str("twitter", profile.Username).Str("holder", format.Address(holder)).Msg("Twitter account already linked")
		return s.failure(models.ErrTwitterAlreadyLinked)
	}

	// The two writes are not transactional; a failure in between leaves the
	// whitelist record linked and the user record stale.
	if err := s.whitelist.ConnectTwitter(ctx, session.Address, *profile); err != nil {
		log.Error().Err(err).Msg("Failed to link twitter to whitelist")
		return s.failure(models.ErrInternal)
	}
	if err := s.users.LinkTwitter(ctx, session.Address, *profile); err != nil {
		log.Error().Err(err).Msg("Failed to link twitter to user")
		return s.failure(models.ErrInternal)
	}

	log.Info().Str("twitter", profile.Username).Msg("Twitter account linked")
	return s.location("twitter", "connected")
}

func (s *twitterService) expired(session *models.AuthSession) bool {
	return s.sessionTTL > 0 && s.now().Sub(session.CreatedAt) > s.sessionTTL
}

type meResponse struct {
	Data *models.Profile `json:"data"`
}

func (s *twitterService) fetchProfile(ctx context.Context, token *oauth2.Token) (*models.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiBase+"/2/users/me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile request: %w", err)
	}
	token.SetAuthHeader(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get profile: status %d", resp.StatusCode)
	}

	var me meResponse
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if me.Data == nil || me.Data.ID == "" || me.Data.Username == "" {
		return nil, fmt.Errorf("profile response has no user")
	}
	return me.Data, nil
}

func (s *twitterService) failure(code string) string {
	return s.location("error", code)
}

func (s *twitterService) location(key, value string) string {
	u, err := url.Parse(s.redirect)
	if err != nil {
		return "/whitelist?" + url.Values{key: {value}}.Encode()
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
