package api

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/conectarapak/conectar/internal/ai"
	"github.com/conectarapak/conectar/internal/models"
)

func TestResearchRoutesRequireAuth(t *testing.T) {
	app, _, _ := newTestApp(t, &scriptedGenerator{})

	response := postJSON(t, app, "/api/research/query", map[string]string{"question": "¿Ley REP?"}, "")
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without a session, got %d", response.StatusCode)
	}
}

func TestQueryResearchReturnsGeneratedAnswer(t *testing.T) {
	generator := &scriptedGenerator{
		text: "La Ley REP obliga a los productores a gestionar sus residuos.",
		citations: []ai.Citation{
			{URI: "https://example.cl/rep", Title: "Ley REP"},
		},
	}
	app, _, _ := newTestApp(t, generator)
	cookie, _ := completeLoginFlow(t, app, "consulta@b.cl", models.RoleEntrepreneur)

	response := postJSON(t, app, "/api/research/query", map[string]string{
		"question": "¿Qué exige la Ley REP?",
	}, cookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	body := decodeBody(t, response)
	if body["text"] != generator.text {
		t.Fatalf("expected the generated text, got %v", body["text"])
	}
	sources, _ := body["sources"].([]any)
	if len(sources) != 1 {
		t.Fatalf("expected one source, got %v", body["sources"])
	}
	if len(generator.prompts) != 1 || generator.prompts[0] != "¿Qué exige la Ley REP?" {
		t.Fatalf("expected the literal question to reach the generator, got %v", generator.prompts)
	}
}

func TestQueryResearchFallsBackWhenGeneratorFails(t *testing.T) {
	app, _, _ := newTestApp(t, &scriptedGenerator{err: errors.New("timeout")})
	cookie, _ := completeLoginFlow(t, app, "caida@b.cl", models.RoleAdvisor)

	response := postJSON(t, app, "/api/research/query", map[string]string{
		"question": "¿tendencias del sector?",
	}, cookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 on a generator failure, got %d", response.StatusCode)
	}
	body := decodeBody(t, response)
	if body["unavailable"] != true {
		t.Fatalf("expected the unavailable flag, got %v", body)
	}
	if text, _ := body["text"].(string); !strings.Contains(text, "no está disponible") {
		t.Fatalf("expected the fallback message, got %q", text)
	}
}

func TestQueryResearchRejectsEmptyQuestion(t *testing.T) {
	app, _, _ := newTestApp(t, &scriptedGenerator{})
	cookie, _ := completeLoginFlow(t, app, "vacio@b.cl", models.RoleAdvisor)

	response := postJSON(t, app, "/api/research/query", map[string]string{"question": "   "}, cookie)
	defer response.Body.Close()
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
}

func TestSavedResearchLifecycle(t *testing.T) {
	app, _, _ := newTestApp(t, &scriptedGenerator{})
	cookie, _ := completeLoginFlow(t, app, "biblioteca@b.cl", models.RoleEntrepreneur)

	saveResponse := postJSON(t, app, "/api/research/saved", map[string]any{
		"query": "¿Qué exige la Ley REP?",
		"text":  "Resumen del marco regulatorio.",
		"sources": []map[string]any{
			{"web": map[string]string{"uri": "https://example.cl/rep", "title": "Ley REP"}},
		},
	}, cookie)
	if saveResponse.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", saveResponse.StatusCode)
	}
	saved := decodeBody(t, saveResponse)
	recordID, _ := saved["id"].(string)
	if recordID == "" {
		t.Fatalf("expected a record id, got %v", saved)
	}

	listResponse := getJSON(t, app, "/api/research/saved", cookie)
	listBody := decodeBody(t, listResponse)
	records, _ := listBody["records"].([]any)
	if len(records) != 1 {
		t.Fatalf("expected one saved record, got %v", listBody)
	}

	recallResponse := getJSON(t, app, "/api/research/saved/"+recordID, cookie)
	recallBody := decodeBody(t, recallResponse)
	if recallBody["query"] != "¿Qué exige la Ley REP?" {
		t.Fatalf("expected the saved query, got %v", recallBody["query"])
	}

	exportResponse := getJSON(t, app, "/api/research/saved/"+recordID+"/export", cookie)
	defer exportResponse.Body.Close()
	if exportResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 exporting, got %d", exportResponse.StatusCode)
	}
	if contentType := exportResponse.Header.Get("Content-Type"); !strings.Contains(contentType, "text/html") {
		t.Fatalf("expected an html export, got %q", contentType)
	}
	document, err := io.ReadAll(exportResponse.Body)
	if err != nil {
		t.Fatalf("read export body: %v", err)
	}
	if !strings.Contains(string(document), "Ley REP") {
		t.Fatalf("expected the export to include the query, got %s", document)
	}

	deleteRequest := func() int {
		request := httptest.NewRequest(http.MethodDelete, "/api/research/saved/"+recordID, nil)
		request.Header.Set("Cookie", cookie)
		response, err := app.Test(request, -1)
		if err != nil {
			t.Fatalf("delete request failed: %v", err)
		}
		response.Body.Close()
		return response.StatusCode
	}

	if status := deleteRequest(); status != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", status)
	}
	// deleting an absent record stays a no-op
	if status := deleteRequest(); status != http.StatusNoContent {
		t.Fatalf("expected status 204 on repeat delete, got %d", status)
	}

	missing := getJSON(t, app, "/api/research/saved/"+recordID, cookie)
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", missing.StatusCode)
	}
}

func TestSaveResearchRejectsUnavailableResult(t *testing.T) {
	app, _, _ := newTestApp(t, &scriptedGenerator{})
	cookie, _ := completeLoginFlow(t, app, "fallida@b.cl", models.RoleAdvisor)

	response := postJSON(t, app, "/api/research/saved", map[string]any{
		"query":       "¿tendencias?",
		"text":        "El servicio de investigación no está disponible en este momento.",
		"unavailable": true,
	}, cookie)
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", response.StatusCode)
	}
}
