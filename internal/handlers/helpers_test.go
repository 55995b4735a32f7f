package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/coachtrack/internal/audit"
	"github.com/BruksfildServices01/coachtrack/internal/domain/coaching/coachingtest"
	"github.com/BruksfildServices01/coachtrack/internal/middleware"
	"github.com/BruksfildServices01/coachtrack/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// =====================================================
// FAKES
// =====================================================

type recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func strPtr(s string) *string { return &s }

func uintPtr(v uint) *uint { return &v }

func uintStr(v uint) string { return strconv.FormatUint(uint64(v), 10) }

// seedRepo creates coach 1 (#000001), client 10 (#000010) and client 11
// (#000011, already coached by 1).
func seedRepo() *coachingtest.MemoryRepo {
	repo := coachingtest.NewMemoryRepo()
	repo.AddUser(models.User{ID: 1, Firstname: "Ana", Lastname: "Coach", Email: "ana@example.com", Role: models.RoleCoach, UniqueCode: strPtr("#000001")})
	repo.AddUser(models.User{ID: 10, Firstname: "Carla", Lastname: "Client", Email: "carla@example.com", Role: models.RoleClient, UniqueCode: strPtr("#000010")})
	repo.AddUser(models.User{ID: 11, Firstname: "Dan", Lastname: "Client", Email: "dan@example.com", Role: models.RoleClient, UniqueCode: strPtr("#000011"), CoachID: uintPtr(1)})
	return repo
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// =====================================================
// HTTP
// =====================================================

// as stands in for AuthMiddleware.
func as(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextUserRole, role)
		c.Next()
	}
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
