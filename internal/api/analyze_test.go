package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilens/backend/internal/service"
)

// fakeAnalyzer records the call and returns canned results.
type fakeAnalyzer struct {
	gotImage []byte
	gotLang  string
	result   *service.FoodAnalysisResult
	err      error
}

func (f *fakeAnalyzer) AnalyzeFood(ctx context.Context, image []byte, lang string) (*service.FoodAnalysisResult, error) {
	f.gotImage = image
	f.gotLang = lang
	return f.result, f.err
}

func sampleResult() *service.FoodAnalysisResult {
	return &service.FoodAnalysisResult{
		Foods: []string{"salad"},
		Nutrition: service.NutritionInfo{
			Calories: 320, Protein: 12, Carbs: 30, Fats: 18, Fiber: 8,
		},
		Analysis:    "Light and fiber-rich.",
		Suggestions: []string{"add a protein source"},
	}
}

func analyzeRequest(t *testing.T, engine http.Handler, body interface{}, decorate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-food", bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	if decorate != nil {
		decorate(req)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAnalyzeFood_StripsDataURLPrefix(t *testing.T) {
	analyzer := &fakeAnalyzer{result: sampleResult()}
	engine, _ := setupTestRouter(t, analyzer)

	payload := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	w := analyzeRequest(t, engine, map[string]string{
		"image": "data:image/jpeg;base64," + payload,
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []byte("jpeg-bytes"), analyzer.gotImage)

	var resp service.FoodAnalysisResult
	decodeBody(t, w, &resp)
	assert.Equal(t, []string{"salad"}, resp.Foods)
	assert.Equal(t, 320.0, resp.Nutrition.Calories)
}

func TestAnalyzeFood_AcceptsBareBase64(t *testing.T) {
	analyzer := &fakeAnalyzer{result: sampleResult()}
	engine, _ := setupTestRouter(t, analyzer)

	w := analyzeRequest(t, engine, map[string]string{
		"image": base64.StdEncoding.EncodeToString([]byte("jpeg-bytes")),
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []byte("jpeg-bytes"), analyzer.gotImage)
}

func TestAnalyzeFood_MissingImage(t *testing.T) {
	engine, _ := setupTestRouter(t, &fakeAnalyzer{result: sampleResult()})

	w := analyzeRequest(t, engine, map[string]string{}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing or invalid image data")
}

func TestAnalyzeFood_InvalidBase64(t *testing.T) {
	engine, _ := setupTestRouter(t, &fakeAnalyzer{result: sampleResult()})

	w := analyzeRequest(t, engine, map[string]string{"image": "%%%not-base64%%%"}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeFood_LanguageResolution(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		decorate func(*http.Request)
		want     string
	}{
		{
			name: "query param wins",
			path: "/api/analyze-food?lang=en",
			decorate: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "prefLanguage", Value: "es"})
				r.Header.Set("Accept-Language", "pt-BR")
			},
			want: "en",
		},
		{
			name: "unsupported query falls to cookie",
			path: "/api/analyze-food?lang=xx",
			decorate: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "prefLanguage", Value: "es"})
			},
			want: "es",
		},
		{
			name: "header prefix when nothing else set",
			path: "/api/analyze-food",
			decorate: func(r *http.Request) {
				r.Header.Set("Accept-Language", "en-US,en;q=0.9")
			},
			want: "en",
		},
		{
			name:     "default",
			path:     "/api/analyze-food",
			decorate: nil,
			want:     "pt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{result: sampleResult()}
			engine, _ := setupTestRouter(t, analyzer)

			data, _ := json.Marshal(map[string]string{
				"image": base64.StdEncoding.EncodeToString([]byte("img")),
			})
			req := httptest.NewRequest(http.MethodPost, tt.path, bytes.NewBuffer(data))
			req.Header.Set("Content-Type", "application/json")
			if tt.decorate != nil {
				tt.decorate(req)
			}

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, analyzer.gotLang)
		})
	}
}

func TestAnalyzeFood_SchemaMismatchIs400WithDetails(t *testing.T) {
	analyzer := &fakeAnalyzer{
		err: &service.InvalidResponseError{Details: []string{"nutrition.calories: required"}},
	}
	engine, _ := setupTestRouter(t, analyzer)

	w := analyzeRequest(t, engine, map[string]string{
		"image": base64.StdEncoding.EncodeToString([]byte("img")),
	}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Message string   `json:"message"`
		Details []string `json:"details"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "Invalid response format", resp.Message)
	assert.Contains(t, resp.Details, "nutrition.calories: required")
}

func TestAnalyzeFood_ProviderFailureIs500(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("API request failed with status 401")}
	engine, _ := setupTestRouter(t, analyzer)

	w := analyzeRequest(t, engine, map[string]string{
		"image": base64.StdEncoding.EncodeToString([]byte("img")),
	}, nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to analyze food image")
}
