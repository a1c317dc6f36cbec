package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"gymku_backend/internals/databases/dbtest"
	authService "gymku_backend/internals/features/users/auth/service"
	helper "gymku_backend/internals/helpers"
	"gymku_backend/internals/helpers/dbtime"
	routeDetails "gymku_backend/internals/route/details"
)

const secret = "routes-test-secret"

type apiResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

type harness struct {
	t   *testing.T
	app *fiber.App
	gym uuid.UUID
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := dbtest.NewSQLite(t)
	app := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	SetupRoutes(app, db, secret, routeDetails.Deps{
		Validate: validator.New(),
		// Minggu 2026-10-18 10:00 UTC
		Clock:              dbtime.NewFixedClock(time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)),
		Location:           time.UTC,
		Blacklist:          authService.NewBlacklistService(db, nil, secret, nil),
		BookingLimitMax:    1000,
		BookingLimitWindow: time.Minute,
	})
	return &harness{t: t, app: app, gym: uuid.New()}
}

func (h *harness) token(memberID *uuid.UUID, roles ...string) string {
	h.t.Helper()
	claims := jwt.MapClaims{
		"sub":    uuid.NewString(),
		"gym_id": h.gym.String(),
		"roles":  roles,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	if memberID != nil {
		claims["member_id"] = memberID.String()
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		h.t.Fatal(err)
	}
	return s
}

func (h *harness) do(method, path, token string, body any) (int, apiResponse) {
	h.t.Helper()
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return h.send(req)
}

func (h *harness) send(req *http.Request) (int, apiResponse) {
	h.t.Helper()
	resp, err := h.app.Test(req, -1)
	if err != nil {
		h.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	var out apiResponse
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func (h *harness) expect(method, path, token string, body any, status int, code string) apiResponse {
	h.t.Helper()
	got, res := h.do(method, path, token, body)
	if got != status || (code != "" && res.ErrorCode != code) {
		h.t.Fatalf("%s %s: status=%d code=%q msg=%q, want %d %q", method, path, got, res.ErrorCode, res.Message, status, code)
	}
	return res
}

func idField(t *testing.T, data json.RawMessage, field string) string {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("decode data: %v (%s)", err, data)
	}
	s, _ := m[field].(string)
	if s == "" {
		t.Fatalf("missing %s in %s", field, data)
	}
	return s
}

func TestBookingFlowOverHTTP(t *testing.T) {
	h := newHarness(t)
	staff := h.token(nil, "owner")

	// guard admin
	h.expect(http.MethodPost, "/api/a/classes", "", map[string]any{}, fiber.StatusUnauthorized, "UNAUTHORIZED")
	h.expect(http.MethodPost, "/api/a/classes", h.token(nil, "member"), map[string]any{}, fiber.StatusForbidden, "FORBIDDEN")

	h.expect(http.MethodPost, "/api/a/classes", staff, map[string]any{"gym_class_name": ""}, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR")
	res := h.expect(http.MethodPost, "/api/a/classes", staff, map[string]any{
		"gym_class_name":             "Yoga",
		"gym_class_default_capacity": 1,
	}, fiber.StatusCreated, "")
	classID := idField(t, res.Data, "gym_class_id")

	sessBody := map[string]any{
		"class_session_class_id":    classID,
		"class_session_day_of_week": 1,
		"class_session_start_time":  "09:00",
	}
	res = h.expect(http.MethodPost, "/api/a/sessions", staff, sessBody, fiber.StatusCreated, "")
	sessionID := idField(t, res.Data, "class_session_id")
	h.expect(http.MethodPost, "/api/a/sessions", staff, sessBody, fiber.StatusConflict, "CONFLICT")
	h.expect(http.MethodPost, "/api/a/sessions", staff, map[string]any{
		"class_session_class_id":    classID,
		"class_session_day_of_week": 2,
		"class_session_start_time":  "late",
	}, fiber.StatusBadRequest, "VALIDATION_ERROR")

	res = h.expect(http.MethodPost, "/api/a/members", staff, map[string]any{"gym_member_name": "Ani"}, fiber.StatusCreated, "")
	memberA := uuid.MustParse(idField(t, res.Data, "gym_member_id"))
	res = h.expect(http.MethodPost, "/api/a/members", staff, map[string]any{"gym_member_name": "Budi"}, fiber.StatusCreated, "")
	memberB := uuid.MustParse(idField(t, res.Data, "gym_member_id"))
	tokA := h.token(&memberA, "member")
	tokB := h.token(&memberB, "member")

	enroll := "/api/u/sessions/" + sessionID + "/enroll"
	h.expect(http.MethodPost, enroll, tokA, nil, fiber.StatusCreated, "")
	h.expect(http.MethodPost, enroll, tokA, nil, fiber.StatusBadRequest, "DUPLICATE_ENROLLMENT")
	h.expect(http.MethodPost, enroll, tokB, nil, fiber.StatusBadRequest, "CAPACITY_EXCEEDED")
	h.expect(http.MethodPost, enroll, tokB, map[string]any{"member_id": memberA}, fiber.StatusForbidden, "FORBIDDEN")
	h.expect(http.MethodPost, "/api/u/sessions/"+uuid.NewString()+"/enroll", tokA, nil, fiber.StatusNotFound, "NOT_FOUND")
	h.expect(http.MethodPost, enroll, h.token(nil, "member"), nil, fiber.StatusBadRequest, "BAD_REQUEST")

	res = h.expect(http.MethodGet, "/api/u/classes/"+classID+"/sessions", tokA, nil, fiber.StatusOK, "")
	var views []map[string]any
	if err := json.Unmarshal(res.Data, &views); err != nil || len(views) != 1 {
		t.Fatalf("views: %v %s", err, res.Data)
	}
	if views[0]["is_enrolled"] != true || views[0]["available_seats"] != float64(0) {
		t.Fatalf("unexpected listing: %v", views[0])
	}

	res = h.expect(http.MethodGet, "/api/public/gyms/"+h.gym.String()+"/classes/"+classID+"/sessions", "", nil, fiber.StatusOK, "")
	var public []map[string]any
	if err := json.Unmarshal(res.Data, &public); err != nil || len(public) != 1 || public[0]["is_enrolled"] != nil {
		t.Fatalf("public listing must not carry member flags: %s", res.Data)
	}

	h.expect(http.MethodPost, "/api/a/sessions/"+sessionID+"/attendance", staff, map[string]any{"member_id": memberA}, fiber.StatusOK, "")
	h.expect(http.MethodPost, "/api/a/sessions/"+sessionID+"/attendance", staff, map[string]any{"member_id": memberA}, fiber.StatusBadRequest, "INVALID_STATE")
	h.expect(http.MethodPost, "/api/u/sessions/"+sessionID+"/cancel", tokA, nil, fiber.StatusBadRequest, "INVALID_STATE")
	h.expect(http.MethodPost, "/api/u/sessions/"+sessionID+"/cancel", tokB, nil, fiber.StatusNotFound, "NOT_FOUND")

	res = h.expect(http.MethodGet, "/api/u/my/enrollments", tokA, nil, fiber.StatusOK, "")
	var mine []map[string]any
	if err := json.Unmarshal(res.Data, &mine); err != nil || len(mine) != 1 || mine[0]["status"] != "attended" {
		t.Fatalf("my enrollments: %v %s", err, res.Data)
	}
	h.expect(http.MethodGet, "/api/u/members/"+memberA.String()+"/enrollments", tokB, nil, fiber.StatusForbidden, "FORBIDDEN")
	h.expect(http.MethodGet, "/api/u/members/"+memberA.String()+"/enrollments", staff, nil, fiber.StatusOK, "")

	h.expect(http.MethodDelete, "/api/a/classes/"+classID, staff, nil, fiber.StatusOK, "")
	h.expect(http.MethodGet, "/api/u/classes/"+classID+"/sessions", tokA, nil, fiber.StatusNotFound, "NOT_FOUND")
}

func TestClientTimezoneCannotReopenBooking(t *testing.T) {
	h := newHarness(t)
	staff := h.token(nil, "owner")

	res := h.expect(http.MethodPost, "/api/a/classes", staff, map[string]any{
		"gym_class_name":             "Spin",
		"gym_class_default_capacity": 5,
	}, fiber.StatusCreated, "")
	classID := idField(t, res.Data, "gym_class_id")

	// Minggu 10:20 gym time, jam sekarang Minggu 10:00 → booking sudah tutup
	res = h.expect(http.MethodPost, "/api/a/sessions", staff, map[string]any{
		"class_session_class_id":    classID,
		"class_session_day_of_week": 0,
		"class_session_start_time":  "10:20",
	}, fiber.StatusCreated, "")
	sessionID := idField(t, res.Data, "class_session_id")

	res = h.expect(http.MethodPost, "/api/a/members", staff, map[string]any{"gym_member_name": "Citra"}, fiber.StatusCreated, "")
	member := uuid.MustParse(idField(t, res.Data, "gym_member_id"))
	tok := h.token(&member, "member")

	enroll := "/api/u/sessions/" + sessionID + "/enroll"
	h.expect(http.MethodPost, enroll, tok, nil, fiber.StatusBadRequest, "INVALID_STATE")

	for _, tc := range []struct {
		name, path, header string
	}{
		{"header", enroll, "America/Los_Angeles"},
		{"query", enroll + "?tz=Pacific/Kiritimati", ""},
		{"both", enroll + "?tz=Asia/Tokyo", "America/Los_Angeles"},
	} {
		req := httptest.NewRequest(http.MethodPost, tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		if tc.header != "" {
			req.Header.Set("X-Timezone", tc.header)
		}
		status, res := h.send(req)
		if status != fiber.StatusBadRequest || res.ErrorCode != "INVALID_STATE" {
			t.Fatalf("%s: status=%d code=%q msg=%q, want 400 INVALID_STATE", tc.name, status, res.ErrorCode, res.Message)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/public/gyms/"+h.gym.String()+"/classes/"+classID+"/sessions?tz=America/Los_Angeles", nil)
	req.Header.Set("X-Timezone", "America/Los_Angeles")
	status, res := h.send(req)
	if status != fiber.StatusOK {
		t.Fatalf("public listing status = %d", status)
	}
	var views []map[string]any
	if err := json.Unmarshal(res.Data, &views); err != nil || len(views) != 1 {
		t.Fatalf("views: %v %s", err, res.Data)
	}
	if views[0]["is_enrollable"] != false || views[0]["next_occurrence_date"] != "2026-10-18" {
		t.Fatalf("public listing followed client timezone: %v", views[0])
	}

	res = h.expect(http.MethodGet, "/api/u/my/enrollments", tok, nil, fiber.StatusOK, "")
	var mine []map[string]any
	if err := json.Unmarshal(res.Data, &mine); err != nil || len(mine) != 0 {
		t.Fatalf("no enrollment expected: %v %s", err, res.Data)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	h := newHarness(t)
	m := uuid.New()
	tok := h.token(&m, "member")

	h.expect(http.MethodGet, "/api/u/my/enrollments", tok, nil, fiber.StatusOK, "")
	h.expect(http.MethodPost, "/api/u/auth/logout", tok, nil, fiber.StatusOK, "")
	h.expect(http.MethodGet, "/api/u/my/enrollments", tok, nil, fiber.StatusUnauthorized, "UNAUTHORIZED")

	// token lain tidak terpengaruh
	h.expect(http.MethodGet, "/api/u/my/enrollments", h.token(&m, "member"), nil, fiber.StatusOK, "")
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := h.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("health status = %d", resp.StatusCode)
	}
}
