package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldflix/internal/cohort"
)

type fakeService struct {
	got    Request
	result *Result
	err    error
}

func (f *fakeService) Recommend(_ context.Context, req Request) (*Result, error) {
	f.got = req
	return f.result, f.err
}

func newTestRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/recommendations"))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerOKResponse(t *testing.T) {
	svc := &fakeService{result: &Result{
		Status:          StatusOK,
		Recommendations: map[string][]string{"Comedy": {"Comedy One"}},
		SkippedFilters:  []string{},
	}}
	r := newTestRouter(svc)

	w := postJSON(t, r, `{"age":30,"gender":"F","genres":["Comedy"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Recommendations map[string][]string `json:"recommendations"`
		SkippedFilters  []string            `json:"skipped_filters"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Comedy One"}, resp.Recommendations["Comedy"])
	assert.NotNil(t, resp.SkippedFilters)

	assert.Equal(t, 30, svc.got.Age)
	assert.Equal(t, "F", svc.got.Gender)
	assert.Equal(t, []string{"Comedy"}, svc.got.Genres)
}

func TestHandlerPlatformsSortedAndNormalized(t *testing.T) {
	svc := &fakeService{result: &Result{Status: StatusOK, SkippedFilters: []string{}}}
	r := newTestRouter(svc)

	w := postJSON(t, r, `{"age":30,"gender":"F","platforms":{"Netflix":"Yes","Hulu":false,"Disney+":1}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []cohort.PlatformFilter{
		{Name: "Disney+", Value: true},
		{Name: "Hulu", Value: false},
		{Name: "Netflix", Value: true},
	}, svc.got.Platforms)
}

func TestHandlerNoUsersMessage(t *testing.T) {
	svc := &fakeService{result: &Result{
		Status:         StatusNoMatchingUsers,
		SkippedFilters: []string{"Netflix"},
	}}
	r := newTestRouter(svc)

	w := postJSON(t, r, `{"age":30,"gender":"F"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Message        string   `json:"message"`
		SkippedFilters []string `json:"skipped_filters"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No matching users found.", resp.Message)
	assert.Equal(t, []string{"Netflix"}, resp.SkippedFilters)
}

func TestHandlerBadPayload(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := postJSON(t, r, `{"gender":"F"}`) // falta age
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, `{"age":30,"gender":"F","platforms":{"Netflix":"quizás"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerServiceError(t *testing.T) {
	svc := &fakeService{err: assert.AnError}
	r := newTestRouter(svc)

	w := postJSON(t, r, `{"age":30,"gender":"F"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
