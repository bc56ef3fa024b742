package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kekeqingke/Project-Dashboard/internal/apiclient"
	"github.com/kekeqingke/Project-Dashboard/internal/infrastructure/db/memory"
)

type backendCall struct {
	method string
	path   string
	query  string
	auth   string
	body   []byte
	ctype  string
}

// newBackend starts a fake backend that records the last call and answers
// with respond.
func newBackend(t *testing.T, respond func(w http.ResponseWriter, r *http.Request)) (*BackendHandler, *backendCall) {
	t.Helper()
	last := &backendCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*last = backendCall{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			auth:   r.Header.Get("Authorization"),
			body:   body,
			ctype:  r.Header.Get("Content-Type"),
		}
		respond(w, r)
	}))
	t.Cleanup(srv.Close)

	client := apiclient.New(srv.URL, apiclient.WithTokenStore(memory.NewTokenStore("T1")))
	return NewBackendHandler(client), last
}

func jsonReply(status int, body string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func TestBackendHandler_ListQualityIssues_Filter(t *testing.T) {
	h, last := newBackend(t, jsonReply(http.StatusOK, `[{"id":1}]`))
	e := newEcho()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/quality-issues?room_id=7", nil), rec)

	if err := h.ListQualityIssues(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || rec.Body.String() != `[{"id":1}]` {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
	if last.path != "/quality-issues/" || last.query != "room_id=7" || last.auth != "Bearer T1" {
		t.Fatalf("unexpected backend call: %+v", last)
	}
}

func TestBackendHandler_ListQualityIssues_BadFilter(t *testing.T) {
	h, _ := newBackend(t, jsonReply(http.StatusOK, `[]`))
	c := newEcho().NewContext(httptest.NewRequest(http.MethodGet, "/api/quality-issues?room_id=abc", nil), httptest.NewRecorder())

	var he *echo.HTTPError
	if err := h.ListQualityIssues(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestBackendHandler_CreateRoom(t *testing.T) {
	h, last := newBackend(t, jsonReply(http.StatusOK, `{"id":3,"room_number":"101"}`))
	e := newEcho()

	req := httptest.NewRequest(http.MethodPost, "/api/rooms", strings.NewReader(`{"building_unit":"A-1","room_number":"101"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.CreateRoom(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var sent map[string]any
	if err := json.Unmarshal(last.body, &sent); err != nil {
		t.Fatalf("backend body is not JSON: %v", err)
	}
	if sent["building_unit"] != "A-1" || sent["room_number"] != "101" {
		t.Fatalf("unexpected body: %v", sent)
	}
	if _, ok := sent["status"]; ok {
		t.Fatalf("empty optional fields must be omitted: %v", sent)
	}
}

func TestBackendHandler_CreateQualityIssue_ZonelessDate(t *testing.T) {
	h, last := newBackend(t, jsonReply(http.StatusOK, `{"id":9}`))
	e := newEcho()

	body := `{"room_id":1,"description":"crack","record_date":"2024-05-01T10:00:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/quality-issues", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.CreateQualityIssue(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if last.path != "/quality-issues/" {
		t.Fatalf("backend not called: %+v", last)
	}

	var sent map[string]any
	if err := json.Unmarshal(last.body, &sent); err != nil {
		t.Fatalf("backend body is not JSON: %v", err)
	}
	if sent["record_date"] != "2024-05-01T10:00:00Z" {
		t.Fatalf("unexpected record_date: %v", sent["record_date"])
	}
}

func TestBackendHandler_CreateCommunication_FormDate(t *testing.T) {
	h, last := newBackend(t, jsonReply(http.StatusOK, `{"id":4}`))
	e := newEcho()

	form := "room_id=2&content=called&communication_time=2024-05-01+09:30:00"
	req := httptest.NewRequest(http.MethodPost, "/api/communications", strings.NewReader(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	if err := h.CreateCommunication(e.NewContext(req, httptest.NewRecorder())); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var sent map[string]any
	if err := json.Unmarshal(last.body, &sent); err != nil {
		t.Fatalf("backend body is not JSON: %v", err)
	}
	if sent["communication_time"] != "2024-05-01T09:30:00Z" || sent["content"] != "called" {
		t.Fatalf("unexpected body: %v", sent)
	}
}

func TestBackendHandler_CreateRoom_Validation(t *testing.T) {
	h, last := newBackend(t, jsonReply(http.StatusOK, `{}`))
	e := newEcho()

	req := httptest.NewRequest(http.MethodPost, "/api/rooms", strings.NewReader(`{"building_unit":"A-1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	var he *echo.HTTPError
	if err := h.CreateRoom(e.NewContext(req, httptest.NewRecorder())); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if last.method != "" {
		t.Fatalf("backend must not be called, got %+v", last)
	}
}

func TestBackendHandler_UpdateRoomStatus(t *testing.T) {
	h, last := newBackend(t, jsonReply(http.StatusOK, `{"id":4}`))
	e := newEcho()

	c := e.NewContext(httptest.NewRequest(http.MethodPut, "/api/rooms/4/delivery-status?value=delivered", nil), httptest.NewRecorder())
	c.SetParamNames("id", "field")
	c.SetParamValues("4", "delivery-status")

	if err := h.UpdateRoomStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if last.method != http.MethodPut || last.path != "/rooms/4/delivery-status" || last.query != "delivery_status=delivered" {
		t.Fatalf("unexpected backend call: %+v", last)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodPut, "/api/rooms/4/paint", nil), httptest.NewRecorder())
	c.SetParamNames("id", "field")
	c.SetParamValues("4", "paint")

	var he *echo.HTTPError
	if err := h.UpdateRoomStatus(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %v", err)
	}
}

func TestBackendHandler_ExportRoomPDF(t *testing.T) {
	h, _ := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="room_4.pdf"`)
		_, _ = io.WriteString(w, "%PDF-1.4")
	})
	e := newEcho()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/rooms/4/export-pdf", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("4")

	if err := h.ExportRoomPDF(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Header().Get(echo.HeaderContentType) != "application/pdf" {
		t.Fatalf("unexpected content type: %s", rec.Header().Get(echo.HeaderContentType))
	}
	if !strings.Contains(rec.Header().Get(echo.HeaderContentDisposition), "room_4.pdf") {
		t.Fatalf("content disposition not relayed")
	}
	if rec.Body.String() != "%PDF-1.4" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestBackendHandler_GetRoom_BadID(t *testing.T) {
	h, _ := newBackend(t, jsonReply(http.StatusOK, `{}`))
	c := newEcho().NewContext(httptest.NewRequest(http.MethodGet, "/api/rooms/x", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("x")

	var he *echo.HTTPError
	if err := h.GetRoom(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestBackendHandler_BackendErrorPassesThrough(t *testing.T) {
	h, _ := newBackend(t, jsonReply(http.StatusNotFound, `{"detail":"Room not found"}`))
	c := newEcho().NewContext(httptest.NewRequest(http.MethodGet, "/api/rooms/9", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("9")

	err := h.GetRoom(c)
	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound || apiErr.Detail != "Room not found" {
		t.Fatalf("expected backend 404, got %v", err)
	}
}

func TestBackendHandler_UpdateQualityIssue_BodyOnly(t *testing.T) {
	h, last := newBackend(t, jsonReply(http.StatusOK, `{"id":5}`))
	e := newEcho()

	req := httptest.NewRequest(http.MethodPut, "/api/quality-issues/5", strings.NewReader(`{"is_verified":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.UpdateQualityIssue(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if string(last.body) != `{"is_verified":true}` {
		t.Fatalf("unexpected backend body: %s", last.body)
	}
}

func TestBackendHandler_AssignRoom(t *testing.T) {
	h, last := newBackend(t, jsonReply(http.StatusOK, `{"id":1}`))
	e := newEcho()

	req := httptest.NewRequest(http.MethodPost, "/api/room-assignments", strings.NewReader(`{"user_id":2,"room_id":3}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	if err := h.AssignRoom(e.NewContext(req, httptest.NewRecorder())); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if last.path != "/room-assignments/" || string(last.body) != `{"user_id":2,"room_id":3}` {
		t.Fatalf("unexpected backend call: %+v", last)
	}
}

func TestBackendHandler_AdminSummary(t *testing.T) {
	h, last := newBackend(t, jsonReply(http.StatusOK, `[]`))
	c := newEcho().NewContext(httptest.NewRequest(http.MethodGet, "/api/admin/summary?building_unit=B-2", nil), httptest.NewRecorder())

	if err := h.AdminSummary(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if last.path != "/admin/summary" || last.query != "building_unit=B-2" {
		t.Fatalf("unexpected backend call: %+v", last)
	}
}

func TestBackendHandler_UploadImage(t *testing.T) {
	h, last := newBackend(t, jsonReply(http.StatusOK, `{"filename":"abc.png","url":"/uploads/abc.png"}`))
	e := newEcho()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "crack.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write([]byte("png-bytes"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload-image", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()

	if err := h.UploadImage(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.HasPrefix(last.ctype, "multipart/form-data") || !bytes.Contains(last.body, []byte("png-bytes")) {
		t.Fatalf("upload not forwarded: %+v", last)
	}
	if !bytes.Contains(last.body, []byte("Content-Type: image/png")) {
		t.Fatalf("expected image/png part, got %s", last.body)
	}
	if !strings.Contains(rec.Body.String(), "/uploads/abc.png") {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
}

func TestBackendHandler_UploadImage_MissingFile(t *testing.T) {
	h, _ := newBackend(t, jsonReply(http.StatusOK, `{}`))
	req := httptest.NewRequest(http.MethodPost, "/api/upload-image", strings.NewReader(""))
	req.Header.Set(echo.HeaderContentType, echo.MIMEMultipartForm+"; boundary=x")

	var he *echo.HTTPError
	if err := h.UploadImage(newEcho().NewContext(req, httptest.NewRecorder())); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
