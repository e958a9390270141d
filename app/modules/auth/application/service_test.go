package authservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	authdomain "github.com/Black-And-White-Club/hackathon-admin/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/hackathon-admin/app/modules/auth/infrastructure/jwt"
	userdb "github.com/Black-And-White-Club/hackathon-admin/app/modules/user/infrastructure/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestService(j *FakeJWTProvider, r *userdb.FakeRepository) Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewService(j, r, logger, tracer)
}

func TestService_Authorize(t *testing.T) {
	storeErr := errors.New("connection reset")

	tests := []struct {
		name      string
		header    string
		setupMock func(j *FakeJWTProvider, r *userdb.FakeRepository)
		wantErr   error
		wantRepo  []string
		verify    func(t *testing.T, p authdomain.Principal)
	}{
		{
			name:   "admin resolved",
			header: "Bearer good",
			setupMock: func(j *FakeJWTProvider, r *userdb.FakeRepository) {
				j.ValidateTokenFunc = func(tokenString string) (*authdomain.Claims, error) {
					assert.Equal(t, "good", tokenString)
					return &authdomain.Claims{UserID: 5}, nil
				}
				r.GetByIDFn = func(ctx context.Context, db bun.IDB, id int64) (*userdb.User, error) {
					assert.Equal(t, int64(5), id)
					return &userdb.User{ID: 5, Email: "judge@example.com", Role: "admin"}, nil
				}
			},
			wantRepo: []string{"GetByID"},
			verify: func(t *testing.T, p authdomain.Principal) {
				assert.Equal(t, authdomain.Principal{UserID: 5, Email: "judge@example.com", Role: authdomain.RoleAdmin}, p)
			},
		},
		{
			name:     "missing header",
			header:   "",
			wantErr:  ErrMissingToken,
			wantRepo: nil,
		},
		{
			name:    "wrong scheme",
			header:  "Basic abc",
			wantErr: ErrInvalidAuthHeader,
		},
		{
			name:    "too many parts",
			header:  "Bearer a b",
			wantErr: ErrInvalidAuthHeader,
		},
		{
			name:    "lowercase bearer",
			header:  "bearer abc",
			wantErr: ErrInvalidAuthHeader,
		},
		{
			name:   "token rejected",
			header: "Bearer bad",
			setupMock: func(j *FakeJWTProvider, r *userdb.FakeRepository) {
				j.ValidateTokenFunc = func(string) (*authdomain.Claims, error) { return nil, authjwt.ErrExpiredToken }
			},
			wantErr: ErrInvalidToken,
		},
		{
			name:   "token without user id",
			header: "Bearer anon",
			setupMock: func(j *FakeJWTProvider, r *userdb.FakeRepository) {
				j.ValidateTokenFunc = func(string) (*authdomain.Claims, error) { return nil, authjwt.ErrMissingSubject }
			},
			wantErr: ErrUnknownUser,
		},
		{
			name:     "user missing",
			header:   "Bearer ghost",
			wantErr:  ErrUnknownUser,
			wantRepo: []string{"GetByID"},
		},
		{
			name:   "not admin",
			header: "Bearer player",
			setupMock: func(j *FakeJWTProvider, r *userdb.FakeRepository) {
				r.GetByIDFn = func(ctx context.Context, db bun.IDB, id int64) (*userdb.User, error) {
					return &userdb.User{ID: id, Email: "p@example.com", Role: "user"}, nil
				}
			},
			wantErr:  ErrNotAdmin,
			wantRepo: []string{"GetByID"},
		},
		{
			name:   "store failure",
			header: "Bearer good",
			setupMock: func(j *FakeJWTProvider, r *userdb.FakeRepository) {
				r.GetByIDFn = func(ctx context.Context, db bun.IDB, id int64) (*userdb.User, error) {
					return nil, storeErr
				}
			},
			wantErr:  storeErr,
			wantRepo: []string{"GetByID"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := &FakeJWTProvider{}
			r := &userdb.FakeRepository{}
			if tt.setupMock != nil {
				tt.setupMock(j, r)
			}

			p, err := newTestService(j, r).Authorize(context.Background(), tt.header)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantRepo, r.Calls)
			if tt.verify != nil {
				tt.verify(t, p)
			}
		})
	}
}

func TestService_GrantAdmin(t *testing.T) {
	t.Run("creates new admin", func(t *testing.T) {
		j := &FakeJWTProvider{}
		r := &userdb.FakeRepository{
			CreateFn: func(ctx context.Context, db bun.IDB, user *userdb.User) error {
				assert.Equal(t, "new@example.com", user.Email)
				assert.Equal(t, "admin", user.Role)
				user.ID = 11
				return nil
			},
		}
		j.GenerateTokenFunc = func(userID int64, email string, ttl time.Duration) (string, error) {
			assert.Equal(t, int64(11), userID)
			assert.Equal(t, DefaultTokenTTL, ttl)
			return "signed", nil
		}

		grant, err := newTestService(j, r).GrantAdmin(context.Background(), "  New@Example.com ", 0)

		require.NoError(t, err)
		assert.True(t, grant.Created)
		assert.False(t, grant.Promoted)
		assert.Equal(t, "signed", grant.Token)
		assert.Equal(t, int64(11), grant.Principal.UserID)
		assert.Equal(t, []string{"GetByEmail", "Create"}, r.Calls)
	})

	t.Run("promotes existing user", func(t *testing.T) {
		j := &FakeJWTProvider{}
		r := &userdb.FakeRepository{
			GetByEmailFn: func(ctx context.Context, db bun.IDB, email string) (*userdb.User, error) {
				return &userdb.User{ID: 3, Email: email, Role: "user"}, nil
			},
			UpdateRoleFn: func(ctx context.Context, db bun.IDB, id int64, role string) error {
				assert.Equal(t, int64(3), id)
				assert.Equal(t, "admin", role)
				return nil
			},
		}

		grant, err := newTestService(j, r).GrantAdmin(context.Background(), "old@example.com", time.Hour)

		require.NoError(t, err)
		assert.False(t, grant.Created)
		assert.True(t, grant.Promoted)
		assert.Equal(t, authdomain.RoleAdmin, grant.Principal.Role)
		assert.Equal(t, []string{"GetByEmail", "UpdateRole"}, r.Calls)
	})

	t.Run("lost creation race promotes stored row", func(t *testing.T) {
		lookups := 0
		r := &userdb.FakeRepository{
			GetByEmailFn: func(ctx context.Context, db bun.IDB, email string) (*userdb.User, error) {
				lookups++
				if lookups == 1 {
					return nil, userdb.ErrNotFound
				}
				return &userdb.User{ID: 9, Email: email, Role: "user"}, nil
			},
			CreateFn: func(ctx context.Context, db bun.IDB, user *userdb.User) error {
				return userdb.ErrDuplicateEmail
			},
		}

		grant, err := newTestService(&FakeJWTProvider{}, r).GrantAdmin(context.Background(), "race@example.com", time.Hour)

		require.NoError(t, err)
		assert.False(t, grant.Created)
		assert.True(t, grant.Promoted)
		assert.Equal(t, int64(9), grant.Principal.UserID)
		assert.Equal(t, []string{"GetByEmail", "Create", "GetByEmail", "UpdateRole"}, r.Calls)
	})

	t.Run("existing admin untouched", func(t *testing.T) {
		r := &userdb.FakeRepository{
			GetByEmailFn: func(ctx context.Context, db bun.IDB, email string) (*userdb.User, error) {
				return &userdb.User{ID: 4, Email: email, Role: "admin"}, nil
			},
		}

		grant, err := newTestService(&FakeJWTProvider{}, r).GrantAdmin(context.Background(), "a@example.com", time.Hour)

		require.NoError(t, err)
		assert.False(t, grant.Created)
		assert.False(t, grant.Promoted)
		assert.Equal(t, []string{"GetByEmail"}, r.Calls)
	})

	t.Run("blank email", func(t *testing.T) {
		r := &userdb.FakeRepository{}
		_, err := newTestService(&FakeJWTProvider{}, r).GrantAdmin(context.Background(), "  ", time.Hour)

		assert.ErrorIs(t, err, ErrInvalidEmail)
		assert.Empty(t, r.Calls)
	})

	t.Run("signing failure", func(t *testing.T) {
		j := &FakeJWTProvider{
			GenerateTokenFunc: func(int64, string, time.Duration) (string, error) { return "", errors.New("no key") },
		}
		r := &userdb.FakeRepository{
			GetByEmailFn: func(ctx context.Context, db bun.IDB, email string) (*userdb.User, error) {
				return &userdb.User{ID: 4, Email: email, Role: "admin"}, nil
			},
		}

		_, err := newTestService(j, r).GrantAdmin(context.Background(), "a@example.com", time.Hour)

		assert.ErrorIs(t, err, ErrGenerateToken)
	})
}
