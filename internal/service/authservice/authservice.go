package authservice

//go:generate mockgen -source=authservice.go -destination=mock_authservice.go -package=authservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/GlebRadaev/commerce/internal/apperr"
	"github.com/GlebRadaev/commerce/internal/domain"
	"github.com/GlebRadaev/commerce/pkg/auth"
	"github.com/GlebRadaev/commerce/pkg/clock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL         = 15 * time.Minute
	maxPasswordBytes = 72
)

type Repo interface {
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type BalanceCreator interface {
	CreateBalance(ctx context.Context, userID int) (*domain.Balance, error)
}

type Service struct {
	userRepo   Repo
	balances   BalanceCreator
	hasher     auth.PasswordHasher
	jwtService auth.JWTServiceInterface
	clock      clock.Clock
}

func New(repo Repo, balances BalanceCreator, hasher auth.PasswordHasher, jwtService auth.JWTServiceInterface, clk clock.Clock) *Service {
	return &Service{
		userRepo:   repo,
		balances:   balances,
		hasher:     hasher,
		jwtService: jwtService,
		clock:      clk,
	}
}

// Register creates the user together with an empty balance and signs them in.
// Name falls back to the login.
func (s *Service) Register(ctx context.Context, login, name, password string) (*domain.Session, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, apperr.New(apperr.KindValidation, "login and password are required")
	}
	if name = strings.TrimSpace(name); name == "" {
		name = login
	}

	existingUser, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, apperr.Internal(err, "failed to register user")
	}
	if existingUser != nil {
		zap.L().Info("user already exists", zap.String("login", login))
		return nil, loginTaken(login)
	}
	hashedPassword, err := s.hasher.Hash(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperr.New(apperr.KindValidation, "password is too long").With("maxBytes", maxPasswordBytes)
	}
	if err != nil {
		zap.L().Error("can't hash password", zap.Error(err))
		return nil, apperr.Internal(err, "failed to register user")
	}
	user := &domain.User{
		Login:        login,
		Name:         name,
		PasswordHash: hashedPassword,
	}
	newUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateLogin) {
			return nil, loginTaken(login)
		}
		zap.L().Error("can't create user", zap.Error(err))
		return nil, apperr.Internal(err, "failed to register user")
	}

	balance, err := s.balances.CreateBalance(ctx, newUser.ID)
	if err != nil {
		zap.L().Error("can't create balance", zap.Int("user_id", newUser.ID), zap.Error(err))
		return nil, err
	}

	session, err := s.issue(newUser)
	if err != nil {
		return nil, err
	}
	session.Balance = balance
	zap.L().Info("user successfully registered", zap.String("login", login), zap.Int("user_id", newUser.ID))
	return session, nil
}

func loginTaken(login string) error {
	return apperr.New(apperr.KindConflict, "username already taken").With("login", login)
}

// Login checks the credentials and issues a fresh token.
func (s *Service) Login(ctx context.Context, login, password string) (*domain.Session, error) {
	user, err := s.userRepo.FindByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, apperr.Internal(err, "failed to authenticate")
	}
	if user == nil {
		zap.L().Info("unknown login", zap.String("login", login))
		return nil, invalidCredentials()
	}
	if err = s.hasher.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			zap.L().Info("invalid credentials", zap.String("login", login))
			return nil, invalidCredentials()
		}
		zap.L().Error("can't verify password", zap.Int("user_id", user.ID), zap.Error(err))
		return nil, apperr.Internal(err, "failed to authenticate")
	}
	zap.L().Info("user successfully authenticated", zap.String("login", login))
	return s.issue(user)
}

func invalidCredentials() error {
	return apperr.New(apperr.KindUnauthorized, "invalid credentials")
}

func (s *Service) issue(user *domain.User) (*domain.Session, error) {
	expiresAt := s.clock.Now().Add(tokenTTL)
	token, err := s.jwtService.GenerateJWT(user.ID, expiresAt)
	if err != nil {
		zap.L().Error("can't generate token", zap.Int("user_id", user.ID), zap.Error(err))
		return nil, apperr.Internal(err, "can't generate token")
	}
	return &domain.Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
