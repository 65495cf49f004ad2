package services

import (
	"burnshop_server/database"
	"burnshop_server/lib"
	"burnshop_server/structs"
	"burnshop_server/structs/tables"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type AuthService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	clock        lib.Clock
	cacheService *CacheService
	argon        *structs.ArgonParams
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger, db *database.DB, clock lib.Clock, cacheService *CacheService) *AuthService {
	return &AuthService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		clock:        clock,
		cacheService: cacheService,
		argon:        lib.DefaultArgonParams,
	}
}

func (as *AuthService) Register(ctx context.Context, req *structs.RegisterRequest) (*tables.User, error) {
	startTime := time.Now()

	if req.Password != req.PasswordConfirm {
		return nil, lib.NewValidationError("password_confirm", "passwords do not match")
	}

	passwordHash, err := lib.HashPassword(req.Password, as.argon)
	if err != nil {
		as.logger.Error("Failed to hash password", gecho.Field("error", err))
		return nil, err
	}

	user := &tables.User{
		Id:           uuid.New(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: passwordHash,
		Role:         tables.RoleUser,
		CreatedAt:    as.clock.Now(),
	}

	if _, err := database.Query[tables.User](as.db).Insert(ctx, user); err != nil {
		mappedErr := lib.MapDBError(err)

		// Duplicates are a user error, everything else is ours
		if lib.IsUniqueViolation(mappedErr) {
			as.logger.Warn("Registration failed - duplicate user",
				gecho.Field("username", user.Username),
				gecho.Field("email", user.Email),
			)
		} else {
			as.logger.Error("Database error during registration",
				gecho.Field("error", mappedErr),
				gecho.Field("username", user.Username),
			)
		}
		return nil, mappedErr
	}

	as.logger.Debug("User registered successfully",
		gecho.Field("user_id", user.Id),
		gecho.Field("elapsed_time_ms", time.Since(startTime).Milliseconds()),
	)

	user.PasswordHash = ""
	return user, nil
}

// Login checks the credentials. Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (as *AuthService) Login(ctx context.Context, req *structs.LoginRequest) (*tables.User, error) {
	startTime := time.Now()

	user, err := database.Query[tables.User](as.db).Where("username", strings.TrimSpace(req.Username)).First(ctx)
	if err != nil {
		as.logger.Error("Unexpected database error during login", gecho.Field("error", err))
		return nil, lib.MapDBError(err)
	}
	if user == nil {
		as.logger.Debug("User not found during login attempt", gecho.Field("username", req.Username))
		return nil, lib.ErrInvalidCredentials
	}

	valid, err := lib.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash",
			gecho.Field("error", err),
			gecho.Field("user_id", user.Id),
		)
		return nil, err
	}
	if !valid {
		as.logger.Debug("Invalid password attempt", gecho.Field("user_id", user.Id))
		return nil, lib.ErrInvalidCredentials
	}

	as.logger.Debug("User logged in successfully",
		gecho.Field("user_id", user.Id),
		gecho.Field("elapsed_time_ms", time.Since(startTime).Milliseconds()),
	)

	user.PasswordHash = ""
	return user, nil
}

// GenerateAccessToken signs an access token for user and returns it with its expiry
func (as *AuthService) GenerateAccessToken(user *tables.User) (string, time.Time, error) {
	now := as.clock.Now()
	exp := now.Add(as.cfg.Auth.AccessTokenExpiry)

	token, err := lib.SignToken(&structs.AuthClaims{
		Sub:      user.Id,
		Username: user.Username,
		Role:     user.Role,
		Iat:      now,
		Exp:      exp,
		Jti:      uuid.New(),
	}, as.cfg.Auth.AccessTokenSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// ValidateAccessToken parses a token and rejects it when it has been logged out
func (as *AuthService) ValidateAccessToken(ctx context.Context, token string) (*structs.AuthClaims, error) {
	claims, err := lib.ParseToken(token, as.cfg.Auth.AccessTokenSecret)
	if err != nil {
		return nil, err
	}

	blacklisted, err := as.cacheService.IsTokenBlacklisted(ctx, claims.Jti)
	if err != nil {
		// Redis being down must not lock everybody out
		as.logger.Warn("Failed to check token blacklist", gecho.Field("error", err))
		return claims, nil
	}
	if blacklisted {
		return nil, fmt.Errorf("token revoked: %w", lib.ErrInvalidToken)
	}
	return claims, nil
}

// CurrentClaims re-reads the token's user so a role change or a deleted account
// takes effect before the token expires
func (as *AuthService) CurrentClaims(ctx context.Context, claims *structs.AuthClaims) (*structs.AuthClaims, error) {
	user, err := database.FindByID[tables.User](ctx, as.db, claims.Sub)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s no longer exists: %w", claims.Sub, lib.ErrInvalidToken)
	}

	current := *claims
	current.Role = user.Role
	current.Username = user.Username
	return &current, nil
}

// Logout revokes the token until its natural expiry
func (as *AuthService) Logout(ctx context.Context, claims *structs.AuthClaims) error {
	if err := as.cacheService.BlacklistToken(ctx, claims.Jti, claims.Exp); err != nil {
		as.logger.Warn("Failed to blacklist token", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		return err
	}
	return nil
}

func (as *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*tables.User, error) {
	user, err := database.FindByID[tables.User](ctx, as.db, userID)
	if err != nil {
		as.logger.Error("Failed to find user by ID", gecho.Field("error", err), gecho.Field("user_id", userID))
		return nil, lib.MapDBError(err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, lib.ErrNotFound)
	}
	user.PasswordHash = ""
	return user, nil
}

func (as *AuthService) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := database.Query[tables.User](as.db).
		Where("id", userID).
		Update(ctx, map[string]any{"last_login": as.clock.Now()})
	if err != nil {
		return lib.MapDBError(err)
	}
	return nil
}
