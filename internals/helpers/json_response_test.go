package helper

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"gymku_backend/internals/helpers/apperr"
)

func TestJsonAppErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperr.Validation("bad"), fiber.StatusBadRequest, "VALIDATION_ERROR"},
		{apperr.NotFound("gone"), fiber.StatusNotFound, "NOT_FOUND"},
		{apperr.Conflict("taken"), fiber.StatusConflict, "CONFLICT"},
		{apperr.CapacityExceeded("full"), fiber.StatusBadRequest, "CAPACITY_EXCEEDED"},
		{apperr.DuplicateEnrollment("dup"), fiber.StatusBadRequest, "DUPLICATE_ENROLLMENT"},
		{apperr.InvalidState("attended"), fiber.StatusBadRequest, "INVALID_STATE"},
		{fiber.NewError(fiber.StatusTooManyRequests, "slow down"), fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{errors.New("boom"), fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	seen := map[string]bool{}
	for _, tc := range cases {
		app := fiber.New()
		err := tc.err
		app.Get("/", func(c *fiber.Ctx) error { return JsonAppError(c, err) })

		resp, rerr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		if rerr != nil {
			t.Fatal(rerr)
		}
		raw, _ := io.ReadAll(resp.Body)
		var body ErrorResponse
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.StatusCode != tc.status || body.ErrorCode != tc.code || body.Success {
			t.Fatalf("%v: got %d %q, want %d %q", tc.err, resp.StatusCode, body.ErrorCode, tc.status, tc.code)
		}
		seen[body.ErrorCode] = true
	}
	if len(seen) != len(cases) {
		t.Fatalf("error codes are not distinct: %v", seen)
	}
}
