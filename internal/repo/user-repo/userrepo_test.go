package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/commerce/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

var createdAt = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	t.Cleanup(mockDB.Close)

	return repo, mockDB
}

func TestRepository_FindByLogin(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		login     string
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name:  "User found",
			login: "kim@test.com",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "login", "name", "password_hash", "created_at"}).
					AddRow(1, "kim@test.com", "Kim", "hashed_password", createdAt)
				mock.ExpectQuery(regexp.QuoteMeta(queryFindByLogin)).
					WithArgs("kim@test.com").
					WillReturnRows(rows)
			},
			result: &domain.User{
				ID:           1,
				Login:        "kim@test.com",
				Name:         "Kim",
				PasswordHash: "hashed_password",
				CreatedAt:    createdAt,
			},
		},
		{
			name:  "User not found",
			login: "ghost",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryFindByLogin)).
					WithArgs("ghost").
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name:  "Database error",
			login: "kim@test.com",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryFindByLogin)).
					WithArgs("kim@test.com").
					WillReturnError(errors.New("db error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			user, err := repo.FindByLogin(context.Background(), tt.login)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, user)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)

	rows := pgxmock.NewRows([]string{"id", "login", "name", "password_hash", "created_at"}).
		AddRow(2, "lee@test.com", "Lee", "", createdAt)
	mock.ExpectQuery(regexp.QuoteMeta(queryFindByID)).WithArgs(2).WillReturnRows(rows)

	user, err := repo.FindByID(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, user.ID)
	assert.Equal(t, "lee@test.com", user.Login)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		user      *domain.User
		mockSetup func()
		expectErr error
	}{
		{
			name: "User created",
			user: &domain.User{Login: "new", Name: "New", PasswordHash: "hash"},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryCreate)).
					WithArgs("new", "New", "hash").
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(4, createdAt))
			},
		},
		{
			name: "Database error",
			user: &domain.User{Login: "dup", Name: "Dup", PasswordHash: "hash"},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryCreate)).
					WithArgs("dup", "Dup", "hash").
					WillReturnError(errors.New("connection reset"))
			},
			expectErr: errors.New("connection reset"),
		},
		{
			name: "Login taken",
			user: &domain.User{Login: "kim@test.com", Name: "Kim", PasswordHash: "hash"},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryCreate)).
					WithArgs("kim@test.com", "Kim", "hash").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_login_key"})
			},
			expectErr: domain.ErrDuplicateLogin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			user, err := repo.Create(context.Background(), tt.user)
			if tt.expectErr != nil {
				assert.EqualError(t, err, tt.expectErr.Error())
				assert.Nil(t, user)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 4, user.ID)
			assert.Equal(t, createdAt, user.CreatedAt)
		})
	}
}
