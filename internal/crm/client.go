// Package crm encapsulates the AmoCRM/Kommo HTTP contract: account
// resolution, contact search/create/update, lead creation, contact-lead
// linking, and pipeline listing. Every operation is a single HTTP round trip;
// transient failures surface as *Error and the caller decides what to do.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"oratoria_backend/platform/config"
	"oratoria_backend/platform/logger"
)

const leadNamePrefix = "Website lead"

// Client talks to one AmoCRM/Kommo account. A nil *Client means sync is
// disabled; methods must not be called on it.
type Client struct {
	baseURL      string
	token        string
	phoneFieldID int64
	jobFieldID   int64
	leadPrice    int64
	http         *http.Client
	log          *logger.Logger
}

// NewClient builds a client from configuration. It returns (nil, nil) when
// the subdomain or access token is absent — sync is then disabled and every
// submission is recorded locally as failed. A subdomain that cannot be
// resolved into an account is a startup configuration error.
func NewClient(cfg config.AmoCRMConfig, log *logger.Logger) (*Client, error) {
	if !cfg.IsAmoCRMEnabled() {
		return nil, nil
	}

	account, err := ResolveAccount(cfg.GetAmoCRMSubdomain())
	if err != nil {
		return nil, err
	}

	timeout := cfg.GetAmoCRMTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:      account.APIBaseURL(),
		token:        cfg.GetAmoCRMAccessToken(),
		phoneFieldID: cfg.GetAmoCRMPhoneFieldID(),
		jobFieldID:   cfg.GetAmoCRMJobFieldID(),
		leadPrice:    cfg.GetAmoCRMLeadPrice(),
		http:         &http.Client{Timeout: timeout},
		log:          log,
	}, nil
}

// FindOrCreateContact resolves a CRM contact for the given phone number.
// It searches by phone first; on a hit the existing contact id is returned
// and its name/job are refreshed best-effort. On a miss a new contact is
// created. Every failure degrades to "no contact" (id 0) so the caller can
// still create the lead — a lead without a linked contact beats no lead.
func (c *Client) FindOrCreateContact(ctx context.Context, name, phone, job string) int64 {
	var found contactsEnvelope
	searchPath := "/api/v4/contacts?query=" + url.QueryEscape(phone)
	if err := c.do(ctx, http.MethodGet, searchPath, nil, &found); err != nil {
		c.log.Warn("crm contact search failed", "error", err)
	} else if len(found.Embedded.Contacts) > 0 {
		contactID := found.Embedded.Contacts[0].ID
		if err := c.updateContact(ctx, contactID, name, job); err != nil {
			c.log.Warn("crm contact refresh failed", "contactId", contactID, "error", err)
		}
		return contactID
	}

	contactID, err := c.createContact(ctx, name, phone, job)
	if err != nil {
		c.log.Warn("crm contact create failed", "error", err)
		return 0
	}

	return contactID
}

func (c *Client) createContact(ctx context.Context, name, phone, job string) (int64, error) {
	payload := []wireContact{{
		Name:               name,
		CustomFieldsValues: c.contactFields(phone, job),
	}}

	var created contactsEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/v4/contacts", payload, &created); err != nil {
		return 0, err
	}
	if len(created.Embedded.Contacts) == 0 {
		return 0, fmt.Errorf("crm: contact create response contained no contact")
	}

	return created.Embedded.Contacts[0].ID, nil
}

func (c *Client) updateContact(ctx context.Context, contactID int64, name, job string) error {
	payload := wireContact{Name: name}
	if c.jobFieldID > 0 && job != "" {
		payload.CustomFieldsValues = []customField{fieldValue(c.jobFieldID, job)}
	}

	path := fmt.Sprintf("/api/v4/contacts/%d", contactID)
	return c.do(ctx, http.MethodPatch, path, payload, nil)
}

// CreateLeadParams carries everything needed to place one lead in the CRM.
// PipelineID and StatusID are only sent when present; omission lets the CRM
// apply its own default pipeline and stage.
type CreateLeadParams struct {
	Name       string
	Phone      string
	Job        string
	Source     string
	Tracking   map[string]string
	PipelineID *int64
	StatusID   *int64
	ContactID  int64
}

// CreateLead creates a lead in the CRM and returns its CRM-assigned id.
// When a contact was resolved, it is linked to the lead afterwards; a link
// failure is logged but the lead id is still returned — the lead exists,
// just unlinked.
func (c *Client) CreateLead(ctx context.Context, p CreateLeadParams) (int64, error) {
	lead := wireLead{
		Name:               fmt.Sprintf("%s: %s", leadNamePrefix, p.Name),
		Price:              c.leadPrice,
		PipelineID:         p.PipelineID,
		StatusID:           p.StatusID,
		CustomFieldsValues: c.contactFields(p.Phone, p.Job),
	}
	if tags := buildTags(p.Source, p.Tracking); len(tags) > 0 {
		lead.Embedded = &wireLeadEmbedded{Tags: tags}
	}

	var created leadsEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/v4/leads", []wireLead{lead}, &created); err != nil {
		return 0, err
	}
	if len(created.Embedded.Leads) == 0 {
		return 0, fmt.Errorf("crm: lead create response contained no lead")
	}

	leadID := created.Embedded.Leads[0].ID
	if p.ContactID != 0 {
		if err := c.linkContact(ctx, leadID, p.ContactID); err != nil {
			c.log.Warn("crm contact link failed", "leadId", leadID, "contactId", p.ContactID, "error", err)
		}
	}

	return leadID, nil
}

func (c *Client) linkContact(ctx context.Context, leadID, contactID int64) error {
	path := fmt.Sprintf("/api/v4/leads/%d/link", leadID)
	payload := []wireLink{{ToEntityID: contactID, ToEntityType: "contacts"}}
	return c.do(ctx, http.MethodPost, path, payload, nil)
}

// ListPipelines returns all sales pipelines with their stages. An account
// with zero pipelines yields an empty slice, not an error.
func (c *Client) ListPipelines(ctx context.Context) ([]Pipeline, error) {
	var envelope pipelinesEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/v4/leads/pipelines", nil, &envelope); err != nil {
		return nil, err
	}

	pipelines := make([]Pipeline, 0, len(envelope.Embedded.Pipelines))
	for _, wp := range envelope.Embedded.Pipelines {
		statuses := make([]PipelineStatus, 0, len(wp.Embedded.Statuses))
		for _, ws := range wp.Embedded.Statuses {
			statuses = append(statuses, PipelineStatus{ID: ws.ID, Name: ws.Name})
		}
		pipelines = append(pipelines, Pipeline{ID: wp.ID, Name: wp.Name, Statuses: statuses})
	}

	return pipelines, nil
}

// contactFields maps phone/job onto the account-specific custom field ids.
// An unset field id means the account does not capture that field; it is
// skipped rather than guessed.
func (c *Client) contactFields(phone, job string) []customField {
	fields := make([]customField, 0, 2)
	if c.phoneFieldID > 0 && phone != "" {
		fields = append(fields, fieldValue(c.phoneFieldID, phone))
	}
	if c.jobFieldID > 0 && job != "" {
		fields = append(fields, fieldValue(c.jobFieldID, job))
	}
	return fields
}

func fieldValue(fieldID int64, value string) customField {
	return customField{
		FieldID: fieldID,
		Values:  []customFieldValue{{Value: value}},
	}
}

// buildTags turns the submission source and opaque tracking fields into CRM
// lead tags, sorted for a stable payload.
func buildTags(source string, tracking map[string]string) []wireTag {
	tags := make([]wireTag, 0, len(tracking)+1)
	if source != "" {
		tags = append(tags, wireTag{Name: source})
	}

	keys := make([]string, 0, len(tracking))
	for key := range tracking {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if tracking[key] == "" {
			continue
		}
		tags = append(tags, wireTag{Name: fmt.Sprintf("%s:%s", key, tracking[key])})
	}

	return tags
}

// do performs one HTTP round trip against the CRM. A 204 leaves out
// untouched (the zero envelope decodes as "nothing found"); any status
// outside 2xx becomes an *Error carrying a truncated body snippet.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("crm: marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("crm: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySnippet+1))
		return &Error{Status: resp.StatusCode, Body: truncate(data, maxBodySnippet)}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("crm: decode response: %w", err)
	}

	return nil
}
