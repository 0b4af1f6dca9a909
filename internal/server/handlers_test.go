package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func setupHandler(t *testing.T) (*Handler, uuid.UUID) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, EnsureSchema(ctx, db))

	pages := NewBunPageRepository(db)
	pageID, err := SeedPage(ctx, pages, "landing", "Landing Page")
	require.NoError(t, err)

	return NewHandler(pages, nil), pageID
}

func doRequest(t *testing.T, h *Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func TestGetPage(t *testing.T) {
	h, pageID := setupHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/pages/"+pageID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.True(t, gjson.Get(body, "success").Bool())
	require.Equal(t, pageID.String(), gjson.Get(body, "data.id").String())
	require.Equal(t, "landing", gjson.Get(body, "data.slug").String())

	// Content ships as the stored JSON-encoded string.
	content := gjson.Get(body, "data.content")
	require.Equal(t, gjson.String, content.Type)
	require.True(t, gjson.Valid(content.String()))
	require.Equal(t, "hero", gjson.Get(content.String(), "0.type").String())
}

func TestGetPageNotFound(t *testing.T) {
	h, _ := setupHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/pages/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.False(t, gjson.Get(rec.Body.String(), "success").Bool())
}

func TestGetPageInvalidID(t *testing.T) {
	h, _ := setupHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/pages/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchContent(t *testing.T) {
	h, pageID := setupHandler(t)

	sectionID := uuid.NewString()
	payload := map[string]any{
		"content": []map[string]any{
			{"id": sectionID, "type": "heading", "order": 0, "content": map[string]any{"text": "Updated"}},
		},
	}
	rec := doRequest(t, h, http.MethodPatch, "/pages/"+pageID.String()+"/content", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	got := doRequest(t, h, http.MethodGet, "/pages/"+pageID.String(), nil)
	content := gjson.Get(got.Body.String(), "data.content").String()
	require.Equal(t, sectionID, gjson.Get(content, "0.id").String())
	require.Equal(t, "heading", gjson.Get(content, "0.type").String())

	// Partial save leaves the rest of the page alone.
	require.Equal(t, "Landing Page", gjson.Get(got.Body.String(), "data.title").String())
}

func TestPatchContentRequiresBody(t *testing.T) {
	h, pageID := setupHandler(t)

	rec := doRequest(t, h, http.MethodPatch, "/pages/"+pageID.String()+"/content", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPutPageReplacesEverything(t *testing.T) {
	h, pageID := setupHandler(t)

	payload := map[string]any{
		"id":     pageID.String(),
		"slug":   "landing",
		"title":  "Renamed Page",
		"status": "published",
		"content": []map[string]any{
			{"id": uuid.NewString(), "type": "paragraph", "order": 0, "content": map[string]any{"text": "only section"}},
		},
	}
	rec := doRequest(t, h, http.MethodPut, "/pages/"+pageID.String(), payload)
	require.Equal(t, http.StatusOK, rec.Code)

	got := doRequest(t, h, http.MethodGet, "/pages/"+pageID.String(), nil)
	body := got.Body.String()
	require.Equal(t, "Renamed Page", gjson.Get(body, "data.title").String())
	require.Equal(t, "published", gjson.Get(body, "data.status").String())

	content := gjson.Get(body, "data.content").String()
	require.Equal(t, int64(1), gjson.Get(content, "#").Int())
	require.Equal(t, "paragraph", gjson.Get(content, "0.type").String())
}

func TestPutPageUnknownID(t *testing.T) {
	h, _ := setupHandler(t)

	rec := doRequest(t, h, http.MethodPut, "/pages/"+uuid.NewString(), map[string]any{"title": "x"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSeedPageIsIdempotent(t *testing.T) {
	h, pageID := setupHandler(t)

	again, err := SeedPage(context.Background(), h.pages, "landing", "Landing Page")
	require.NoError(t, err)
	require.Equal(t, pageID, again)
}
