package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/flalji123/commodify-backend/handlers"
	"github.com/flalji123/commodify-backend/middleware"
	"github.com/flalji123/commodify-backend/repositories"
	"github.com/flalji123/commodify-backend/services"
)

// newTestRouter wires the router the same way main does, over the
// in-memory store.
func newTestRouter() *mux.Router {
	store := repositories.NewMemoryStore()
	tokens := services.NewTokenService("test-secret")
	auth := services.NewAuthService(store, tokens)
	activity := services.NewActivityService(store)
	company := services.NewCompanyService(store, activity)
	projects := services.NewProjectService(store, activity)
	tasks := services.NewTaskService(store, activity, projects)
	dd := services.NewDueDiligenceService(services.StubProvider{})

	authHandler := handlers.NewAuthHandler(auth)
	companyHandler := handlers.NewCompanyHandler(company)
	projectHandler := handlers.NewProjectHandler(projects)
	taskHandler := handlers.NewTaskHandler(tasks)
	activityHandler := handlers.NewActivityHandler(activity)
	ddHandler := handlers.NewDueDiligenceHandler(dd)

	r := mux.NewRouter()
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Authenticate(auth))
	api.HandleFunc("/companies", companyHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/companies/{id}", companyHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/companies/{id}", companyHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/projects", projectHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/projects/{projectID}/tasks", taskHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}", taskHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/activity", activityHandler.ListRecent).Methods(http.MethodGet)
	api.HandleFunc("/duediligence", ddHandler.Screen).Methods(http.MethodPost)
	return r
}

func doJSON(t *testing.T, router *mux.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, router *mux.Router, email string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": "password123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", rec.Code, rec.Body.String())
	}
	var resp handlers.TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode token response: %v", err)
	}
	return resp.AccessToken
}

func TestRegisterLoginFlow(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	registerUser(t, router, "alice@example.com")

	// Duplicate email conflicts.
	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "alice@example.com", "password": "password123",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", rec.Code)
	}

	// Wrong password is a 401.
	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
	}

	// Correct password logs in.
	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "password123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for login, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/activity", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/activity", "bogus-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bogus token, got %d", rec.Code)
	}
}

func TestCompanyOwnershipOverHTTP(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	aliceToken := registerUser(t, router, "alice@example.com")
	bobToken := registerUser(t, router, "bob@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/companies", aliceToken, map[string]string{
		"name": "Acme", "country": "US",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode company: %v", err)
	}

	// Bob gets a plain 404, not a 403.
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/companies/%d", created.ID), bobToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign company, got %d", rec.Code)
	}

	// Alice deletes and gets the ok shape back.
	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/companies/%d", created.ID), aliceToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for delete, got %d", rec.Code)
	}
	var okResp map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &okResp); err != nil {
		t.Fatalf("failed to decode delete response: %v", err)
	}
	if !okResp["ok"] {
		t.Fatalf("expected {\"ok\": true}, got %s", rec.Body.String())
	}
}

func TestTaskPatchOverHTTP(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	token := registerUser(t, router, "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/projects", token, map[string]string{"title": "P"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for project, got %d: %s", rec.Code, rec.Body.String())
	}
	var project struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &project); err != nil {
		t.Fatalf("failed to decode project: %v", err)
	}

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", project.ID), token, map[string]interface{}{
		"title": "T", "progress": 40,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for task, got %d: %s", rec.Code, rec.Body.String())
	}
	var task struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to decode task: %v", err)
	}

	// Patch only the status; the body omits everything else.
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), token, map[string]string{
		"status": "done",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for patch, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated struct {
		Title    string `json:"title"`
		Status   string `json:"status"`
		Progress int    `json:"progress"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode task: %v", err)
	}
	if updated.Status != "done" || updated.Title != "T" || updated.Progress != 40 {
		t.Fatalf("patch changed more than the status: %+v", updated)
	}
}

func TestDueDiligenceOverHTTP(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	token := registerUser(t, router, "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/duediligence", token, map[string]string{
		"name": "Acme", "country": "US",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		Name      string   `json:"name"`
		Country   string   `json:"country"`
		RiskScore int      `json:"risk_score"`
		Flags     []string `json:"flags"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if result.RiskScore != 52 || len(result.Flags) != 2 {
		t.Fatalf("unexpected screening result: %+v", result)
	}
}
