package provider

//go:generate go run go.uber.org/mock/mockgen -source=./token.go -destination=./mocks/token_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"agenda/config"
	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/shared/constant"
	"agenda/shared/timezone"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const tokenRow = "provider"

// Token is the cached provider access token. It is persisted so that every
// process instance shares one credential instead of refreshing separately.
type Token struct {
	ID          string    `db:"id"`
	AccessToken string    `db:"access_token"`
	ExpiresAt   time.Time `db:"expires_at"`
	ModifiedAt  time.Time `db:"modified_at"`
}

type TokenStore interface {
	Get(ctx context.Context) (Token, error)
	Save(ctx context.Context, token Token) error
}

type tokenStoreImpl struct {
	db *postgres.Connection
}

func NewTokenStore(db *postgres.Connection) TokenStore {
	return &tokenStoreImpl{db: db}
}

func (s *tokenStoreImpl) Get(ctx context.Context) (Token, error) {
	var token Token

	err := s.db.Read.GetContext(ctx, &token, "SELECT id, access_token, expires_at, modified_at FROM oauth_tokens WHERE id = $1", tokenRow)
	if errors.Is(err, sql.ErrNoRows) {
		return Token{}, nil
	}

	if err != nil {
		return Token{}, fmt.Errorf("failed to get oauth token: %w", err)
	}

	return token, nil
}

func (s *tokenStoreImpl) Save(ctx context.Context, token Token) error {
	query := `INSERT INTO oauth_tokens (id, access_token, expires_at, modified_at)
		VALUES (:id, :access_token, :expires_at, :modified_at)
		ON CONFLICT (id) DO UPDATE SET access_token = EXCLUDED.access_token, expires_at = EXCLUDED.expires_at, modified_at = EXCLUDED.modified_at`

	if _, err := s.db.Write.NamedExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("failed to save oauth token: %w", err)
	}

	return nil
}

// TokenSource hands out a valid provider access token, refreshing it through
// the provider's OAuth endpoint when the cached one is about to expire.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

type tokenSourceImpl struct {
	cfg    *config.Config
	store  TokenStore
	client *http.Client
	otel   otel.Otel
	group  singleflight.Group
}

func NewTokenSource(cfg *config.Config, store TokenStore, ot otel.Otel) TokenSource {
	return &tokenSourceImpl{
		cfg:   cfg,
		store: store,
		client: &http.Client{
			Timeout: time.Duration(cfg.Provider.RequestTimeoutSeconds) * time.Second,
		},
		otel: ot,
	}
}

func (t *tokenSourceImpl) margin() time.Duration {
	return time.Duration(t.cfg.Provider.TokenMarginSeconds) * time.Second
}

// AccessToken returns the cached token when it still has more than the safety
// margin of validity left. Concurrent cold-cache callers share one refresh.
func (t *tokenSourceImpl) AccessToken(ctx context.Context) (string, error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".AccessToken")
	defer scope.End()

	token, err := t.store.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read cached provider token")
	}

	if token.AccessToken != "" && time.Until(token.ExpiresAt) > t.margin() {
		return token.AccessToken, nil
	}

	value, err, _ := t.group.Do(tokenRow, func() (any, error) {
		return t.refresh(ctx)
	})
	if err != nil {
		scope.TraceError(err)

		return "", err
	}

	refreshed, _ := value.(Token)

	return refreshed.AccessToken, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (t *tokenSourceImpl) refresh(ctx context.Context) (Token, error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".refreshToken")
	defer scope.End()

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", t.cfg.Provider.ClientID)
	form.Set("client_secret", t.cfg.Provider.ClientSecret)
	form.Set("refresh_token", t.cfg.Provider.RefreshToken)

	endpoint := strings.TrimSuffix(t.cfg.Provider.AccountsBaseURL, "/") + "/oauth2/token"

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, fmt.Errorf("%w: %w", ErrTokenRefresh, err)
	}

	request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeFormURLEncoded)

	response, err := t.client.Do(request)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("provider token endpoint unreachable")

		return Token{}, fmt.Errorf("%w: %w", ErrTokenRefresh, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		err = fmt.Errorf("%w: status %d", ErrTokenRefresh, response.StatusCode)
		scope.TraceError(err)

		return Token{}, err
	}

	var parsed tokenResponse
	if err := json.NewDecoder(response.Body).Decode(&parsed); err != nil {
		return Token{}, fmt.Errorf("%w: %w", ErrTokenRefresh, err)
	}

	if parsed.AccessToken == "" || parsed.ExpiresIn <= 0 {
		return Token{}, fmt.Errorf("%w: empty token in response", ErrTokenRefresh)
	}

	now := timezone.Now()
	token := Token{
		ID:          tokenRow,
		AccessToken: parsed.AccessToken,
		// Expire early so callers never hold a token the provider already
		// considers dead.
		ExpiresAt:  now.Add(time.Duration(parsed.ExpiresIn)*time.Second - t.margin()),
		ModifiedAt: now,
	}

	if err := t.store.Save(ctx, token); err != nil {
		log.Error().Err(err).Msg("failed to persist refreshed provider token")
	}

	log.Info().Time("expiresAt", token.ExpiresAt).Msg("provider access token refreshed")

	return token, nil
}
