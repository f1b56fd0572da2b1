package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NasiChan/lab2life-webapp/config"
	"github.com/NasiChan/lab2life-webapp/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubExtractor struct {
	interactions []services.InteractionResult
}

func (s *stubExtractor) ExtractLabData(text string) (*services.ExtractedData, error) {
	return &services.ExtractedData{}, nil
}

func (s *stubExtractor) CheckInteractions(meds, supps []services.PillRef) ([]services.InteractionResult, error) {
	return s.interactions, nil
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := config.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db
	services.InitNotificationDeps(db, services.NewRealtimeHub(), nil)

	return SetupRouter(Deps{AI: &stubExtractor{}, Hub: services.NewRealtimeHub()})
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func TestRequestWithoutTokenUsesDemoUser(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/me", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	user, _ := body["user"].(map[string]any)
	if user == nil || user["email"] != services.DemoUserEmail {
		t.Errorf("expected demo user, got %v", body["user"])
	}
	if body["show_onboarding"] != true {
		t.Error("fresh demo user should be shown onboarding")
	}

	// Second anonymous request reuses the same account.
	w2 := doJSON(t, r, http.MethodGet, "/api/me", nil, nil)
	user2, _ := decodeBody(t, w2)["user"].(map[string]any)
	if user2 == nil || user2["ID"] != user["ID"] {
		t.Errorf("demo user ids differ: %v vs %v", user["ID"], user2["ID"])
	}
}

func TestRegisterLoginAndAuthenticatedMe(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", map[string]string{
		"email": "jo@example.com", "password": "hunter22", "full_name": "Jo Smith",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{
		"email": "jo@example.com", "password": "hunter22",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}
	token, _ := decodeBody(t, w)["token"].(string)
	if token == "" {
		t.Fatal("login returned no token")
	}

	w = doJSON(t, r, http.MethodGet, "/api/me", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d, body %s", w.Code, w.Body.String())
	}
	user, _ := decodeBody(t, w)["user"].(map[string]any)
	if user == nil || user["email"] != "jo@example.com" {
		t.Errorf("expected the registered account, got %v", user)
	}
}

func TestInvalidTokenIsRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/me", nil, map[string]string{
		"Authorization": "Bearer not-a-jwt",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestWrongPasswordIsRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := testRouter(t)

	doJSON(t, r, http.MethodPost, "/auth/register", map[string]string{
		"email": "jo@example.com", "password": "hunter22", "full_name": "Jo Smith",
	}, nil)

	w := doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{
		"email": "jo@example.com", "password": "wrong",
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestMedicationLifecycleOverHTTP(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/medications", map[string]any{
		"name": "Metformin", "dosage": "500mg", "time_block": "evening", "food_rule": "with_food",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	created := decodeBody(t, w)
	id := created["ID"]
	if created["name"] != "Metformin" {
		t.Errorf("unexpected create payload %v", created)
	}

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/medications/%v", id), map[string]any{
		"dosage": "1000mg",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body %s", w.Code, w.Body.String())
	}
	patched := decodeBody(t, w)
	if patched["dosage"] != "1000mg" || patched["time_block"] != "evening" {
		t.Errorf("patch should merge, got %v", patched)
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/medications/%v", id), nil, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, body %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/medications/%v", id), nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", w.Code)
	}
}

func TestDoseGenerationOverHTTP(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/supplements", map[string]any{
		"name": "Vitamin D3", "time_block": "morning",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create supplement = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/pill-doses/generate", map[string]string{"date": "2026-03-02"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("generate = %d, body %s", w.Code, w.Body.String())
	}
	var doses []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &doses); err != nil {
		t.Fatalf("decode doses: %v", err)
	}
	if len(doses) != 1 {
		t.Fatalf("expected 1 dose, got %d", len(doses))
	}
	if doses[0]["status"] != "pending" || doses[0]["scheduled_time_block"] != "morning" {
		t.Errorf("unexpected dose %v", doses[0])
	}

	w = doJSON(t, r, http.MethodGet, "/api/pill-doses?date=2026-03-02", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/pill-doses/generate", map[string]string{"date": "03/02/2026"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date should be rejected, got %d", w.Code)
	}
}

func TestHealthProfilePatchOverHTTP(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPatch, "/api/me/health-profile", map[string]any{
		"age": 34, "height_cm": 171.0, "weight_kg": 64.5,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("patch = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	user, _ := body["user"].(map[string]any)
	if user == nil || user["profile_complete"] != true {
		t.Errorf("full profile should be complete, got %v", user)
	}
	if body["show_onboarding"] != false {
		t.Error("completed profile should not trigger onboarding")
	}
	if _, ok := body["bmi"]; !ok {
		t.Error("height and weight present, bmi missing")
	}
}

func TestInteractionCheckOverHTTP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := config.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db
	services.InitNotificationDeps(db, nil, nil)

	stub := &stubExtractor{}
	r := SetupRouter(Deps{AI: stub, Hub: services.NewRealtimeHub()})

	var medID, suppID uint
	w := doJSON(t, r, http.MethodPost, "/api/medications", map[string]any{"name": "Warfarin"}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create medication = %d", w.Code)
	}
	medID = uint(decodeBody(t, w)["ID"].(float64))
	w = doJSON(t, r, http.MethodPost, "/api/supplements", map[string]any{"name": "Fish Oil"}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create supplement = %d", w.Code)
	}
	suppID = uint(decodeBody(t, w)["ID"].(float64))

	stub.interactions = []services.InteractionResult{{
		MedicationID: medID, SupplementID: suppID,
		Severity: "moderate", Description: "increased bleeding risk",
	}}

	w = doJSON(t, r, http.MethodPost, "/api/interactions/check", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("check = %d, body %s", w.Code, w.Body.String())
	}
	var found []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &found); err != nil {
		t.Fatalf("decode interactions: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 interaction, got %d", len(found))
	}

	w = doJSON(t, r, http.MethodGet, "/api/interactions", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &found); err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 {
		t.Errorf("stored set should match check result, got %d", len(found))
	}
}
