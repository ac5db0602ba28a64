package crm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"oratoria_backend/platform/logger"
)

func testLogger() *logger.Logger {
	return logger.New("development")
}

func newTestClient(baseURL string) *Client {
	return &Client{
		baseURL:      baseURL,
		token:        "test-token",
		phoneFieldID: 1112329,
		jobFieldID:   1416915,
		leadPrice:    0,
		http:         &http.Client{Timeout: 5 * time.Second},
		log:          testLogger(),
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, payload string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write([]byte(payload)); err != nil {
		t.Fatalf("write response: %v", err)
	}
}

func TestFindOrCreateContactReusesExistingContact(t *testing.T) {
	var createCalls atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v4/contacts":
			if r.URL.Query().Get("query") != "+998901234567" {
				t.Errorf("expected phone query, got %q", r.URL.RawQuery)
			}
			writeJSON(t, w, `{"_embedded":{"contacts":[{"id":777}]}}`)
		case r.Method == http.MethodPatch && r.URL.Path == "/api/v4/contacts/777":
			writeJSON(t, w, `{}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/v4/contacts":
			createCalls.Add(1)
			writeJSON(t, w, `{"_embedded":{"contacts":[{"id":888}]}}`)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	contactID := client.FindOrCreateContact(context.Background(), "Ali", "+998901234567", "Engineer")

	if contactID != 777 {
		t.Fatalf("expected existing contact id 777, got %d", contactID)
	}
	if createCalls.Load() != 0 {
		t.Fatalf("expected no contact create calls, got %d", createCalls.Load())
	}
}

func TestFindOrCreateContactCreatesOnSearchMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v4/contacts":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost && r.URL.Path == "/api/v4/contacts":
			var payload []wireContact
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || len(payload) != 1 {
				t.Errorf("expected single-contact payload, err=%v", err)
			}
			if len(payload) == 1 && len(payload[0].CustomFieldsValues) != 2 {
				t.Errorf("expected phone and job custom fields, got %d", len(payload[0].CustomFieldsValues))
			}
			writeJSON(t, w, `{"_embedded":{"contacts":[{"id":555}]}}`)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	contactID := client.FindOrCreateContact(context.Background(), "Ali", "+998901234567", "Engineer")

	if contactID != 555 {
		t.Fatalf("expected created contact id 555, got %d", contactID)
	}
}

func TestFindOrCreateContactRefreshFailureDoesNotBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v4/contacts":
			writeJSON(t, w, `{"_embedded":{"contacts":[{"id":777}]}}`)
		case r.Method == http.MethodPatch && r.URL.Path == "/api/v4/contacts/777":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	if contactID := client.FindOrCreateContact(context.Background(), "Ali", "+998901234567", "Engineer"); contactID != 777 {
		t.Fatalf("expected contact id 777 despite refresh failure, got %d", contactID)
	}
}

func TestFindOrCreateContactCreateFailureReturnsNoContact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	if contactID := client.FindOrCreateContact(context.Background(), "Ali", "+998901234567", "Engineer"); contactID != 0 {
		t.Fatalf("expected no contact on create failure, got %d", contactID)
	}
}

func TestCreateLeadLinksResolvedContact(t *testing.T) {
	var linkCalls atomic.Int64
	pipelineID := int64(31)
	statusID := int64(42)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v4/leads":
			var payload []wireLead
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || len(payload) != 1 {
				t.Fatalf("expected single-lead payload, err=%v", err)
			}
			lead := payload[0]
			if lead.Name != "Website lead: Ali" {
				t.Errorf("expected prefixed lead name, got %q", lead.Name)
			}
			if lead.PipelineID == nil || *lead.PipelineID != pipelineID {
				t.Errorf("expected pipeline_id %d, got %v", pipelineID, lead.PipelineID)
			}
			if lead.StatusID == nil || *lead.StatusID != statusID {
				t.Errorf("expected status_id %d, got %v", statusID, lead.StatusID)
			}
			writeJSON(t, w, `{"_embedded":{"leads":[{"id":4242}]}}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/v4/leads/4242/link":
			linkCalls.Add(1)
			var payload []wireLink
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || len(payload) != 1 {
				t.Fatalf("expected single link entry, err=%v", err)
			}
			if payload[0].ToEntityID != 777 || payload[0].ToEntityType != "contacts" {
				t.Errorf("unexpected link payload: %+v", payload[0])
			}
			writeJSON(t, w, `{}`)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	leadID, err := client.CreateLead(context.Background(), CreateLeadParams{
		Name:       "Ali",
		Phone:      "+998901234567",
		Job:        "Engineer",
		Source:     "registration",
		PipelineID: &pipelineID,
		StatusID:   &statusID,
		ContactID:  777,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if leadID != 4242 {
		t.Fatalf("expected lead id 4242, got %d", leadID)
	}
	if linkCalls.Load() != 1 {
		t.Fatalf("expected one link call, got %d", linkCalls.Load())
	}
}

func TestCreateLeadOmitsPlacementWhenUnset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		var generic []map[string]interface{}
		if err := json.Unmarshal(raw, &generic); err != nil || len(generic) != 1 {
			t.Fatalf("expected single-lead payload, err=%v", err)
		}
		if _, present := generic[0]["pipeline_id"]; present {
			t.Errorf("pipeline_id must be omitted when unset")
		}
		if _, present := generic[0]["status_id"]; present {
			t.Errorf("status_id must be omitted when unset")
		}
		writeJSON(t, w, `{"_embedded":{"leads":[{"id":11}]}}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	leadID, err := client.CreateLead(context.Background(), CreateLeadParams{Name: "Ali", Phone: "+998901234567", Job: "Engineer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if leadID != 11 {
		t.Fatalf("expected lead id 11, got %d", leadID)
	}
}

func TestCreateLeadLinkFailureStillReturnsLeadID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v4/leads":
			writeJSON(t, w, `{"_embedded":{"leads":[{"id":4242}]}}`)
		case "/api/v4/leads/4242/link":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	leadID, err := client.CreateLead(context.Background(), CreateLeadParams{Name: "Ali", Phone: "+998901234567", Job: "Engineer", ContactID: 777})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if leadID != 4242 {
		t.Fatalf("expected lead id 4242 despite link failure, got %d", leadID)
	}
}

func TestCreateLeadSurfacesCrmError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"title":"Payment Required"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.CreateLead(context.Background(), CreateLeadParams{Name: "Ali", Phone: "+998901234567", Job: "Engineer"})

	var crmErr *Error
	if !errors.As(err, &crmErr) {
		t.Fatalf("expected *crm.Error, got %v", err)
	}
	if crmErr.Status != http.StatusPaymentRequired {
		t.Errorf("expected status 402, got %d", crmErr.Status)
	}
	if crmErr.Body == "" {
		t.Errorf("expected body snippet for diagnostics")
	}
}

func TestListPipelinesParsesEmbeddedStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v4/leads/pipelines" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(t, w, `{"_embedded":{"pipelines":[
			{"id":31,"name":"Course intake","_embedded":{"statuses":[
				{"id":42,"name":"New"},{"id":43,"name":"Contacted"}
			]}}
		]}}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	pipelines, err := client.ListPipelines(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pipelines) != 1 {
		t.Fatalf("expected one pipeline, got %d", len(pipelines))
	}
	if pipelines[0].ID != 31 || pipelines[0].Name != "Course intake" {
		t.Errorf("unexpected pipeline: %+v", pipelines[0])
	}
	if len(pipelines[0].Statuses) != 2 || pipelines[0].Statuses[1].Name != "Contacted" {
		t.Errorf("unexpected statuses: %+v", pipelines[0].Statuses)
	}
}

func TestListPipelinesEmptyAccountIsNotAnError(t *testing.T) {
	for name, handler := range map[string]http.HandlerFunc{
		"no content": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
		"empty embedded": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"_embedded":{"pipelines":[]}}`))
		},
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()

			client := newTestClient(srv.URL)
			pipelines, err := client.ListPipelines(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(pipelines) != 0 {
				t.Fatalf("expected empty pipeline list, got %d", len(pipelines))
			}
		})
	}
}

func TestListPipelinesSurfacesCrmError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"title":"Unauthorized"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.ListPipelines(context.Background())

	var crmErr *Error
	if !errors.As(err, &crmErr) {
		t.Fatalf("expected *crm.Error, got %v", err)
	}
	if crmErr.Status != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", crmErr.Status)
	}
}
