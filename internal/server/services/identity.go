// Package services contains server-side business logic. This file implements
// IdentityService, which registers and authenticates users, resolves
// principals, and issues and rotates access/refresh token pairs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/budgettracker/internal/common"
	"github.com/dmitrijs2005/budgettracker/internal/dbx"
	"github.com/dmitrijs2005/budgettracker/internal/logging"
	"github.com/dmitrijs2005/budgettracker/internal/server/auth"
	"github.com/dmitrijs2005/budgettracker/internal/server/config"
	"github.com/dmitrijs2005/budgettracker/internal/server/models"
	"github.com/dmitrijs2005/budgettracker/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// IdentityService owns users and sessions:
// - Register / Authenticate / ResolvePrincipal: the identity core
// - Login / RefreshToken / Logout: token-based sessions
// - PrincipalFromAccessToken: request authentication
type IdentityService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	hasher                       *auth.PasswordHasher
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	log                          logging.Logger
	now                          func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

// NewIdentityService constructs an IdentityService from repositories and server config.
func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *IdentityService {
	return &IdentityService{
		db:                           db,
		repomanager:                  m,
		hasher:                       auth.NewPasswordHasher(cfg.BcryptCost),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		log:                          log.With("service", "identity"),
		now:                          time.Now,
	}
}

// Register creates a user. A username already in use yields
// common.ErrUsernameTaken and leaves the store untouched.
func (s *IdentityService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByLogin(ctx, username)
	switch {
	case err == nil:
		return nil, common.ErrUsernameTaken
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	u, err := repo.Create(ctx, &models.User{UserName: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrUsernameTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Authenticate checks credentials. Unknown users and wrong passwords both
// yield common.ErrInvalidCredentials.
func (s *IdentityService) Authenticate(ctx context.Context, username, password string) (models.Principal, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn the same bcrypt work as a real check
			_, _ = s.hasher.Verify(s.getDummyHash(), password)
			return models.Principal{}, common.ErrInvalidCredentials
		}
		return models.Principal{}, fmt.Errorf("error looking up user: %w", err)
	}

	ok, err := s.hasher.Verify(user.PasswordHash, password)
	if err != nil {
		s.log.Error(ctx, "stored password hash is unusable", "user_id", user.ID, "error", err)
		return models.Principal{}, common.ErrInvalidCredentials
	}
	if !ok {
		return models.Principal{}, common.ErrInvalidCredentials
	}

	return user.Principal(), nil
}

// ResolvePrincipal looks a user up by id. ok is false when there is no such user.
func (s *IdentityService) ResolvePrincipal(ctx context.Context, id string) (models.Principal, bool, error) {
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.Principal{}, false, nil
		}
		return models.Principal{}, false, fmt.Errorf("error looking up user: %w", err)
	}
	return user.Principal(), true, nil
}

// Login authenticates and, on success, issues a new TokenPair.
func (s *IdentityService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	p, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.generateTokenPair(ctx, p, s.db)
}

// RefreshToken validates a refresh token, rotates it transactionally and
// returns a fresh TokenPair. Unknown tokens yield common.ErrorUnauthorized,
// expired ones common.ErrRefreshTokenExpired.
func (s *IdentityService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(s.now()) {
		if err := repo.Delete(ctx, refreshToken); err != nil {
			s.log.Warn(ctx, "failed to delete expired refresh token", "error", err)
		}
		return nil, common.ErrRefreshTokenExpired
	}

	p, ok, err := s.ResolvePrincipal(ctx, token.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	var pair *TokenPair
	if err := s.repomanager.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		consumed, err := s.repomanager.RefreshTokens(tx).Consume(ctx, refreshToken)
		if err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		if !consumed {
			// rotated by a concurrent request since Find
			return common.ErrorUnauthorized
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, p, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes a refresh token. Unknown tokens are ignored.
func (s *IdentityService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

// PrincipalFromAccessToken validates an access token and materializes the
// principal it names.
func (s *IdentityService) PrincipalFromAccessToken(ctx context.Context, token string) (models.Principal, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return models.Principal{}, err
	}

	p, ok, err := s.ResolvePrincipal(ctx, claims.UserID)
	if err != nil {
		return models.Principal{}, err
	}
	if !ok {
		return models.Principal{}, common.ErrorUnauthorized
	}
	return p, nil
}

// PurgeExpiredTokens deletes refresh tokens whose expiry has passed.
func (s *IdentityService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.repomanager.RefreshTokens(s.db).DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("error purging refresh tokens: %w", err)
	}
	return n, nil
}

// --- helpers below ---

func (s *IdentityService) getDummyHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("budgettracker-dummy-password")
	})
	return s.dummyHash
}

func (s *IdentityService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *IdentityService) generateTokenPair(ctx context.Context, p models.Principal, tx dbx.DBTX) (*TokenPair, error) {
	now := s.now()

	access, err := auth.GenerateToken(p.ID, p.Username, s.jwtSecret, now, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: sign access token: %v", common.ErrorInternal, err)
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("%w: generate refresh token: %v", common.ErrorInternal, err)
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, p.ID, refresh, now.Add(s.refreshTokenValidityDuration)); err != nil {
		return nil, fmt.Errorf("%w: store refresh token: %v", common.ErrorInternal, err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    now.Add(s.accessTokenValidityDuration),
	}, nil
}
