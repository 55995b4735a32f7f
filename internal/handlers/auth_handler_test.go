package handlers

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/coachtrack/internal/auth"
	"github.com/BruksfildServices01/coachtrack/internal/domain/account"
	"github.com/BruksfildServices01/coachtrack/internal/models"
	ucAccount "github.com/BruksfildServices01/coachtrack/internal/usecase/account"
)

type memoryAccounts struct {
	mu    sync.Mutex
	users []models.User
}

func (m *memoryAccounts) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return account.ErrEmailTaken
		}
	}
	u.ID = uint(len(m.users) + 1)
	m.users = append(m.users, *u)
	return nil
}

func (m *memoryAccounts) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, account.ErrRecordNotFound
}

func (m *memoryAccounts) GetUser(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			cp := u
			return &cp, nil
		}
	}
	return nil, account.ErrRecordNotFound
}

func (m *memoryAccounts) SetAvatar(context.Context, uint, string) error { return nil }

func (m *memoryAccounts) ExtendVIP(context.Context, uint, time.Duration, time.Time) (time.Time, error) {
	return time.Time{}, nil
}

func authRouter(issuer *auth.Issuer) *gin.Engine {
	repo := &memoryAccounts{}
	codes := func() (string, error) { return "#123456", nil }
	anyDomain := func(string) bool { return true }

	h := NewAuthHandler(
		ucAccount.NewRegister(repo, issuer, auth.HashPassword, codes, anyDomain),
		ucAccount.NewLogin(repo, issuer, auth.CheckPassword),
	)

	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	return r
}

func registration() gin.H {
	return gin.H{
		"firstname": "Carla",
		"lastname":  "Client",
		"email":     "carla@example.com",
		"password":  "secret123",
		"gender":    "female",
		"age":       31,
		"role":      "client",
		"goal":      "lose_weight",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)
	r := authRouter(issuer)

	w := do(r, http.MethodPost, "/register", registration())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "bearer", body["token_type"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "#123456", user["unique_code"])
	assert.Equal(t, "client", user["role"])

	claims, err := issuer.ParseValidate(body["access_token"].(string))
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, claims.Role)

	w = do(r, http.MethodPost, "/login", gin.H{"email": "Carla@Example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decode(t, w)["access_token"])
}

func TestRegister_Errors(t *testing.T) {
	r := authRouter(auth.NewIssuer("test-secret", time.Hour))
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/register", registration()).Code)

	w := do(r, http.MethodPost, "/register", registration())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email_taken", decode(t, w)["error_code"])

	bad := registration()
	bad["email"] = "other@example.com"
	bad["goal"] = "get_famous"
	w = do(r, http.MethodPost, "/register", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decode(t, w)["error_code"])
}

func TestLogin_Errors(t *testing.T) {
	r := authRouter(auth.NewIssuer("test-secret", time.Hour))
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/register", registration()).Code)

	w := do(r, http.MethodPost, "/login", gin.H{"email": "carla@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_password", decode(t, w)["error_code"])

	w = do(r, http.MethodPost, "/login", gin.H{"email": "nobody@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "user_not_found", decode(t, w)["error_code"])
}
