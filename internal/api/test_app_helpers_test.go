package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/conectarapak/conectar/internal/ai"
	"github.com/conectarapak/conectar/internal/db"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type scriptedGenerator struct {
	text      string
	citations []ai.Citation
	image     string
	err       error
	prompts   []string
}

func (generator *scriptedGenerator) GenerateText(_ context.Context, prompt string, _ string, _ []ai.Turn) (string, []ai.Citation, error) {
	generator.prompts = append(generator.prompts, prompt)
	if generator.err != nil {
		return "", nil, generator.err
	}
	return generator.text, generator.citations, nil
}

func (generator *scriptedGenerator) GenerateImage(context.Context, string, string) (string, error) {
	if generator.err != nil {
		return "", generator.err
	}
	return generator.image, nil
}

func newTestApp(t *testing.T, generator ai.Generator) (*fiber.App, *Handler, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "conectar-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler := NewHandler(database, generator, "test-secret", false, time.UTC, time.Minute)
	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler, database
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any, cookie string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	request := httptest.NewRequest(http.MethodPost, path, body)
	request.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	return response
}

func getJSON(t *testing.T, app *fiber.App, path string, cookie string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	return response
}

func decodeBody(t *testing.T, response *http.Response) map[string]any {
	t.Helper()
	defer response.Body.Close()

	decoded := map[string]any{}
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return decoded
}

func startOnboardingFlow(t *testing.T, app *fiber.App) string {
	t.Helper()

	response := postJSON(t, app, "/api/onboarding", nil, "")
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201 starting a flow, got %d", response.StatusCode)
	}
	body := decodeBody(t, response)

	flowID, _ := body["flow_id"].(string)
	if flowID == "" {
		t.Fatalf("expected a flow id, got %v", body)
	}
	if body["state"] != "login" {
		t.Fatalf("expected a new flow to start at login, got %v", body["state"])
	}
	return flowID
}

// completeLoginFlow authenticates through the quick login path and returns the
// session cookie together with the completion payload.
func completeLoginFlow(t *testing.T, app *fiber.App, email, role string) (string, map[string]any) {
	t.Helper()

	flowID := startOnboardingFlow(t, app)
	response := postJSON(t, app, "/api/onboarding/"+flowID+"/login", map[string]string{
		"email": email,
		"role":  role,
	}, "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 completing login, got %d", response.StatusCode)
	}

	cookie := extractSessionCookie(t, response)
	return cookie, decodeBody(t, response)
}

func extractSessionCookie(t *testing.T, response *http.Response) string {
	t.Helper()

	for _, header := range response.Header.Values("Set-Cookie") {
		if strings.HasPrefix(header, authCookieName+"=") {
			return strings.SplitN(header, ";", 2)[0]
		}
	}
	t.Fatal("expected a session cookie on the response")
	return ""
}
