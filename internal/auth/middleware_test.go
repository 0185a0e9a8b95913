package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/studypay-service/internal/domain"
	apperrors "github.com/spec-kit/studypay-service/pkg/util"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }
func (s *stubUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) GetByHandle(ctx context.Context, handle string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) GetByTelegram(ctx context.Context, telegram string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return nil, nil
}

func newTestApp(middleware *AuthMiddleware, guards ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"code": domainErr.Code})
		},
	})
	chain := append([]fiber.Handler{middleware.Handle}, guards...)
	chain = append(chain, func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		return c.JSON(fiber.Map{"id": principal.User.ID})
	})
	app.Get("/protected", chain...)
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tm := NewTokenManager("unit-secret", 60, 10)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"u1": {ID: "u1", Handle: "alice", Role: domain.RoleUser},
		"a1": {ID: "a1", Handle: "root", Role: domain.RoleOwner},
	}}
	middleware := NewAuthMiddleware(tm, repo)

	tokenFor := func(id string) string {
		token, _, err := tm.GenerateAccessToken(id, nil)
		require.NoError(t, err)
		return token
	}

	t.Run("missing header is 401", func(t *testing.T) {
		app := newTestApp(middleware)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed token is 401", func(t *testing.T) {
		app := newTestApp(middleware)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("deleted account is 401", func(t *testing.T) {
		app := newTestApp(middleware)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor("ghost"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token passes", func(t *testing.T) {
		app := newTestApp(middleware)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor("u1"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("authenticated but wrong role is 403", func(t *testing.T) {
		app := newTestApp(middleware, RequireStaff())
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor("u1"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("owner passes staff and owner guards", func(t *testing.T) {
		for _, guard := range []fiber.Handler{RequireStaff(), RequireOwner()} {
			app := newTestApp(middleware, guard)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor("a1"))
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}
	})

	t.Run("admin cannot pass owner guard", func(t *testing.T) {
		repo.users["a2"] = &domain.User{ID: "a2", Role: domain.RoleAdmin}
		app := newTestApp(middleware, RequireOwner())
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor("a2"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
