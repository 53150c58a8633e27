package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/campus-union/cms-service/internal/api/http"
	"github.com/campus-union/cms-service/internal/api/http/handlers"
	"github.com/campus-union/cms-service/internal/auth"
	"github.com/campus-union/cms-service/internal/config"
	"github.com/campus-union/cms-service/internal/domain"
	"github.com/campus-union/cms-service/internal/service"
)

// fakeUserRepo backs the auth flow with a map; only the lookups the
// register and login paths touch are implemented.
type fakeUserRepo struct {
	users  map[int64]domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Username == identifier || user.Email == identifier {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) ListActive(_ context.Context) ([]domain.User, error) { return nil, nil }

type fakeAdminRepo struct {
	admins map[int64]domain.Admin
	nextID int64
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[int64]domain.Admin), nextID: 1}
}

func (f *fakeAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	admin.ID = f.nextID
	f.nextID++
	f.admins[admin.ID] = *admin
	return nil
}

func (f *fakeAdminRepo) Update(_ context.Context, admin *domain.Admin) error {
	if _, ok := f.admins[admin.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.admins[admin.ID] = *admin
	return nil
}

func (f *fakeAdminRepo) List(_ context.Context, _, _ int) ([]domain.Admin, error) {
	return nil, nil
}

func (f *fakeAdminRepo) GetByIDWithRole(_ context.Context, id int64) (*domain.Admin, error) {
	admin, ok := f.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &admin, nil
}

func (f *fakeAdminRepo) GetByUsernameWithRole(_ context.Context, username string) (*domain.Admin, error) {
	for _, admin := range f.admins {
		if admin.Username == username {
			a := admin
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAdminRepo) GetByIdentifierWithRole(_ context.Context, identifier string) (*domain.Admin, error) {
	for _, admin := range f.admins {
		if admin.Username == identifier || admin.Email == identifier {
			a := admin
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAdminRepo) SetRole(_ context.Context, adminID int64, roleID *int64) error {
	admin, ok := f.admins[adminID]
	if !ok {
		return pgx.ErrNoRows
	}
	admin.RoleID = roleID
	f.admins[adminID] = admin
	return nil
}

// newAuthTestApp wires the real auth service, resolver and middleware
// chain around map-backed repositories, mirroring the production route
// layout for the auth surface.
func newAuthTestApp(t *testing.T) (*fiber.App, *fakeUserRepo, *fakeAdminRepo) {
	t.Helper()

	users := newFakeUserRepo()
	admins := newFakeAdminRepo()

	tokens, err := auth.NewTokenManager(config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 30})
	require.NoError(t, err)

	svc := service.NewAuthService(
		config.Config{Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost}},
		service.AuthDependencies{
			UserRepo:  users,
			AdminRepo: admins,
			Tokens:    tokens,
			Logger:    zap.NewNop(),
		},
	)
	resolver := auth.NewResolver(tokens, users, admins, zap.NewNop())
	guard := auth.NewMiddleware(resolver)
	handler := handlers.NewAuthHandler(svc)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), nil, 0)

	authGroup := app.Group("/auth")
	authGroup.Post("/users/register", handler.Register)
	authGroup.Post("/users/login", handler.LoginUser)
	authGroup.Get("/users/me", guard.RequireUser(), handler.MeUser)
	authGroup.Post("/admin/login", handler.LoginAdmin)
	authGroup.Get("/admin/me", guard.RequireAdmin(), handler.MeAdmin)

	return app, users, admins
}

func seedFakeAdmin(t *testing.T, admins *fakeAdminRepo, username, password string, active bool, role *domain.Role) {
	t.Helper()

	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, admins.Create(context.Background(), &domain.Admin{
		Username:     username,
		Email:        username + "@union.example.ac.ke",
		PasswordHash: hash,
		IsActive:     active,
		Role:         role,
	}))
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func getWithToken(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestRegisterLoginMeFlow(t *testing.T) {
	app, _, _ := newAuthTestApp(t)

	resp := postJSON(t, app, "/auth/users/register", fiber.Map{
		"username":   "jwanjiku",
		"email":      "Jane.Wanjiku@Students.Example.AC.KE",
		"password":   "correct horse battery staple",
		"first_name": "Jane",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	user, ok := data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jwanjiku", user["username"])
	assert.Equal(t, "jane.wanjiku@students.example.ac.ke", user["email"])

	authData, ok := data["auth"].(map[string]any)
	require.True(t, ok)
	token, ok := authData["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	// The email works as a login identifier once registered.
	resp = postJSON(t, app, "/auth/users/login", fiber.Map{
		"identifier": "jane.wanjiku@students.example.ac.ke",
		"password":   "correct horse battery staple",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = getWithToken(t, app, "/auth/users/me", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	me, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jwanjiku", me["username"])
	assert.Equal(t, "Jane", me["first_name"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	app, _, _ := newAuthTestApp(t)

	payload := fiber.Map{
		"username": "jwanjiku",
		"email":    "jane@students.example.ac.ke",
		"password": "correct horse battery staple",
	}
	resp := postJSON(t, app, "/auth/users/register", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	payload["email"] = "other@students.example.ac.ke"
	resp = postJSON(t, app, "/auth/users/register", payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decodeBody(t, resp)
	envelope, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", envelope["code"])
	assert.Equal(t, "username already taken", envelope["message"])
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	app, _, _ := newAuthTestApp(t)

	resp := postJSON(t, app, "/auth/users/register", fiber.Map{
		"username": "jwanjiku",
		"email":    "jane@students.example.ac.ke",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	envelope, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_FAILED", envelope["code"])
	details, ok := envelope["details"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "Password")
}

func TestLoginWrongPassword(t *testing.T) {
	app, _, _ := newAuthTestApp(t)

	resp := postJSON(t, app, "/auth/users/register", fiber.Map{
		"username": "jwanjiku",
		"email":    "jane@students.example.ac.ke",
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/auth/users/login", fiber.Map{
		"identifier": "jwanjiku",
		"password":   "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))

	body := decodeBody(t, resp)
	envelope, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "invalid credentials", envelope["message"])
}

func TestAdminLoginAndMe(t *testing.T) {
	app, _, admins := newAuthTestApp(t)
	seedFakeAdmin(t, admins, "chair", "council rules 2026", true,
		&domain.Role{ID: 1, Name: "editor", Permissions: []string{"news:write"}})

	resp := postJSON(t, app, "/auth/admin/login", fiber.Map{
		"identifier": "chair",
		"password":   "council rules 2026",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	authData, ok := data["auth"].(map[string]any)
	require.True(t, ok)
	token, ok := authData["token"].(string)
	require.True(t, ok)

	resp = getWithToken(t, app, "/auth/admin/me", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	me, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "chair", me["username"])
	assert.Equal(t, []any{"news:write"}, me["permissions"])

	// An admin token does not open the student identity route.
	resp = getWithToken(t, app, "/auth/users/me", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminLoginInactive(t *testing.T) {
	app, _, admins := newAuthTestApp(t)
	seedFakeAdmin(t, admins, "chair", "council rules 2026", false, nil)

	resp := postJSON(t, app, "/auth/admin/login", fiber.Map{
		"identifier": "chair",
		"password":   "council rules 2026",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body := decodeBody(t, resp)
	envelope, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "FORBIDDEN", envelope["code"])
}

func TestMeWithoutToken(t *testing.T) {
	app, _, _ := newAuthTestApp(t)

	resp := getWithToken(t, app, "/auth/users/me", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
}
