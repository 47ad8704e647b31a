package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/internal/service"
	"github.com/nutrilens/backend/internal/testhelpers"
)

// setupTestRouter builds a router over an in-memory database, mirroring the
// production route table. The analyzer may be nil when the test does not
// touch /analyze-food.
func setupTestRouter(t *testing.T, analyzer FoodAnalyzer) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)

	users := service.NewUserService(db)
	analyses := service.NewAnalysisService(db, nil)
	profiles := service.NewProfileService(db)

	engine := gin.New()
	group := engine.Group("/api")

	if analyzer != nil {
		NewAnalyzeHandler(analyzer).RegisterRoutes(group)
	}
	NewAnalysisHandler(analyses, users).RegisterRoutes(group)
	NewUserHandler(users).RegisterRoutes(group)
	NewProfileHandler(profiles).RegisterRoutes(group)
	NewLanguageHandler(db).RegisterRoutes(group)
	NewHealthHandler(db).RegisterRoutes(group)

	return engine, db
}

// doJSON performs a JSON request against the engine and returns the
// recorder.
func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func createUserViaAPI(t *testing.T, engine *gin.Engine, username string) uint {
	t.Helper()

	w := doJSON(t, engine, http.MethodPost, "/api/users", map[string]interface{}{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID uint `json:"id"`
	}
	decodeBody(t, w, &resp)
	return resp.ID
}
