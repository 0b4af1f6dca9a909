package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/validation"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/goliatone/go-composer/sections"
)

// HTTPStore talks to the backend content API over REST/JSON.
//
// The wire contract it expects:
//
//	GET   /pages/{id}          -> {success, data: {id, content, ...fields}}
//	PATCH /pages/{id}/content  -> body {content: [...]}
//	PUT   /pages/{id}          -> body = full page object
//
// The stored content may arrive as a parsed array or as a JSON-encoded string
// (legacy documents); either way parse failures degrade to an empty section
// list so a corrupt page never takes the editor down.
type HTTPStore struct {
	baseURL string
	client  *http.Client
	logger  interfaces.Logger
	gen     sections.IDGenerator
}

// HTTPOption configures an HTTPStore.
type HTTPOption func(*HTTPStore)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPStore) {
		if client != nil {
			s.client = client
		}
	}
}

// WithLogger injects the store logger.
func WithLogger(logger interfaces.Logger) HTTPOption {
	return func(s *HTTPStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator overrides the generator used to repair section IDs on load.
func WithIDGenerator(gen sections.IDGenerator) HTTPOption {
	return func(s *HTTPStore) {
		if gen != nil {
			s.gen = gen
		}
	}
}

// WithTimeout sets the request timeout on the default client.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(s *HTTPStore) {
		if timeout > 0 {
			s.client.Timeout = timeout
		}
	}
}

// NewHTTPStore constructs a store bound to the content API base URL.
func NewHTTPStore(baseURL string, opts ...HTTPOption) *HTTPStore {
	s := &HTTPStore{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logging.NoOp(),
		gen:     uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HTTPStore) FetchPage(ctx context.Context, id uuid.UUID) (*sections.Document, error) {
	if id == uuid.Nil {
		return nil, ErrPageRequired
	}

	body, err := s.do(ctx, http.MethodGet, s.pageURL(id), nil)
	if err != nil {
		return nil, err
	}

	data := gjson.GetBytes(body, "data")
	if !data.Exists() {
		return nil, fmt.Errorf("%w: missing data envelope", ErrResponseInvalid)
	}

	doc := &sections.Document{ID: id}

	var fields map[string]any
	if err := json.Unmarshal([]byte(data.Raw), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	delete(fields, "content")
	doc.Fields = fields

	doc.Sections = s.decodeContent(data.Get("content"))
	return doc, nil
}

func (s *HTTPStore) SaveContent(ctx context.Context, id uuid.UUID, list []*sections.Section) error {
	if id == uuid.Nil {
		return ErrPageRequired
	}
	payload := map[string]any{"content": list}
	_, err := s.do(ctx, http.MethodPatch, s.pageURL(id)+"/content", payload)
	return err
}

func (s *HTTPStore) SavePage(ctx context.Context, doc *sections.Document) error {
	if doc == nil || doc.ID == uuid.Nil {
		return ErrPageRequired
	}
	payload := make(map[string]any, len(doc.Fields)+2)
	for k, v := range doc.Fields {
		payload[k] = v
	}
	payload["id"] = doc.ID.String()
	payload["content"] = doc.Sections
	_, err := s.do(ctx, http.MethodPut, s.pageURL(doc.ID), payload)
	return err
}

// decodeContent tolerates both wire shapes for stored content and repairs the
// result. Anything it cannot make sense of yields an empty list.
func (s *HTTPStore) decodeContent(raw gjson.Result) []*sections.Section {
	if !raw.Exists() || raw.Type == gjson.Null {
		return []*sections.Section{}
	}

	encoded := raw.Raw
	if raw.Type == gjson.String {
		// Legacy documents store content as a JSON-encoded string.
		encoded = raw.String()
	}

	var decoded any
	if err := json.Unmarshal([]byte(encoded), &decoded); err != nil {
		s.logger.Warn("store.content.parse_failed", "error", err)
		return []*sections.Section{}
	}
	if err := validation.ValidatePayload(sections.ContentSchema, decoded); err != nil {
		s.logger.Warn("store.content.schema_rejected", "error", err)
		return []*sections.Section{}
	}

	var rows []wireSection
	if err := json.Unmarshal([]byte(encoded), &rows); err != nil {
		s.logger.Warn("store.content.decode_failed", "error", err)
		return []*sections.Section{}
	}

	list := make([]*sections.Section, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.section())
	}
	return sections.Normalize(list, s.gen)
}

func (s *HTTPStore) pageURL(id uuid.UUID) string {
	return s.baseURL + "/pages/" + id.String()
}

func (s *HTTPStore) do(ctx context.Context, method, url string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: encode payload: %v", ErrRequestFailed, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrResponseInvalid, err)
	}

	if res.StatusCode == http.StatusNotFound {
		return nil, &NotFoundError{Resource: "page", Key: url}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, res.StatusCode)
	}

	if success := gjson.GetBytes(body, "success"); success.Exists() && !success.Bool() {
		message := gjson.GetBytes(body, "error").String()
		if message == "" {
			message = "backend reported failure"
		}
		return nil, fmt.Errorf("%w: %s", ErrRequestFailed, message)
	}

	return body, nil
}

// wireSection tolerates legacy identifier shapes (numbers, arbitrary strings)
// that predate UUID section ids.
type wireSection struct {
	ID         any            `json:"id"`
	Type       string         `json:"type"`
	TemplateID string         `json:"template_id"`
	Content    map[string]any `json:"content"`
	Order      int            `json:"order"`
}

func (w wireSection) section() *sections.Section {
	out := &sections.Section{
		Type:       sections.Type(w.Type),
		TemplateID: w.TemplateID,
		Content:    sections.PropertyBag(w.Content),
		Order:      w.Order,
	}
	if s, ok := w.ID.(string); ok {
		if id, err := uuid.Parse(s); err == nil {
			out.ID = id
		}
	}
	return out
}
