package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	httpctrl "github.com/citops/promisetrack/pkg/controller/http"
	"github.com/citops/promisetrack/pkg/domain/model"
	"github.com/citops/promisetrack/pkg/repository/memory"
	"github.com/citops/promisetrack/pkg/service/classifier"
	"github.com/citops/promisetrack/pkg/usecase"
)

type stubBackend struct {
	promiseAnswer  string
	deadlineAnswer string
}

func (b *stubBackend) Complete(ctx context.Context, system, user string) (string, error) {
	if strings.Contains(system, "СЕГОДНЯШНЯЯ ДАТА") {
		return b.deadlineAnswer, nil
	}
	return b.promiseAnswer, nil
}

func newTestServer(t *testing.T, backend classifier.Backend) *httptest.Server {
	t.Helper()

	client := classifier.NewClient(backend)
	uc := usecase.New(memory.New(),
		classifier.NewPromiseClassifier(client),
		classifier.NewDeadlineExtractor(client),
		usecase.WithNow(func() time.Time {
			return time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)
		}),
	)

	srv := httptest.NewServer(httpctrl.New(uc))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	gt.NoError(t, err).Required()

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	gt.NoError(t, err).Required()
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeTask(t *testing.T, resp *http.Response) *model.Task {
	t.Helper()
	var task model.Task
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&task)).Required()
	return &task
}

func TestTaskLifecycle(t *testing.T) {
	srv := newTestServer(t, &stubBackend{
		promiseAnswer:  "ДА",
		deadlineAnswer: "30.09.25",
	})

	// Create
	resp := postJSON(t, srv.URL+"/api/tasks", map[string]any{
		"description": "Broken heating in building 12",
	})
	gt.Number(t, resp.StatusCode).Equal(http.StatusCreated)
	created := decodeTask(t, resp)
	gt.Value(t, created.ID).NotEqual(int64(0))
	gt.Value(t, created.Status.String()).Equal("moderated")

	// Get
	getResp, err := http.Get(srv.URL + "/api/tasks/1")
	gt.NoError(t, err).Required()
	defer getResp.Body.Close()
	gt.Number(t, getResp.StatusCode).Equal(http.StatusOK)

	// Analyze a reply
	resp = postJSON(t, srv.URL+"/api/tasks/1/response", map[string]any{
		"response_text": "Работы будут выполнены до 30.09.2025г.",
	})
	gt.Number(t, resp.StatusCode).Equal(http.StatusOK)

	var result model.AnalysisResult
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&result)).Required()
	gt.Bool(t, result.IsPromise).True()
	gt.Value(t, result.Deadline.Encode()).Equal("30.09.25")

	// Task picked up the analysis outcome
	getResp2, err := http.Get(srv.URL + "/api/tasks/1")
	gt.NoError(t, err).Required()
	defer getResp2.Body.Close()
	task := decodeTask(t, getResp2)
	gt.Value(t, task.Status.String()).Equal("closed_with_promise")
	gt.Value(t, task.Deadline.Encode()).Equal("30.09.25")

	// List
	listResp, err := http.Get(srv.URL + "/api/tasks")
	gt.NoError(t, err).Required()
	defer listResp.Body.Close()
	var listBody struct {
		Tasks []*model.Task `json:"tasks"`
	}
	gt.NoError(t, json.NewDecoder(listResp.Body).Decode(&listBody)).Required()
	gt.Number(t, len(listBody.Tasks)).Equal(1)

	// Complete
	resp = postJSON(t, srv.URL+"/api/tasks/1/complete", map[string]any{
		"resolution": "Отопление восстановлено",
	})
	gt.Number(t, resp.StatusCode).Equal(http.StatusOK)
	completed := decodeTask(t, resp)
	gt.Value(t, completed.Status.String()).Equal("completed")
}

func TestValidationErrors(t *testing.T) {
	srv := newTestServer(t, &stubBackend{promiseAnswer: "НЕТ"})

	t.Run("create without description", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/tasks", map[string]any{})
		gt.Number(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})

	t.Run("malformed task ID", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/tasks/abc")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Number(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})

	t.Run("unknown task is 404", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/tasks/999")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Number(t, resp.StatusCode).Equal(http.StatusNotFound)

		var body map[string]string
		gt.NoError(t, json.NewDecoder(resp.Body).Decode(&body)).Required()
		gt.Value(t, body["error"]).NotEqual("")
	})

	t.Run("response without text", func(t *testing.T) {
		postJSON(t, srv.URL+"/api/tasks", map[string]any{"description": "x"})
		resp := postJSON(t, srv.URL+"/api/tasks/1/response", map[string]any{})
		gt.Number(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})

	t.Run("complete unknown task is 404", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/tasks/999/complete", map[string]any{})
		gt.Number(t, resp.StatusCode).Equal(http.StatusNotFound)
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubBackend{})

	resp, err := http.Get(srv.URL + "/health")
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	gt.Number(t, resp.StatusCode).Equal(http.StatusOK)
}
