package dbtime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestGetGymLocationIgnoresClientHints(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)

	cases := []struct {
		name  string
		claim string
		want  string
	}{
		{name: "no claim falls back", want: "WIB"},
		{name: "claim wins", claim: "Asia/Tokyo", want: "Asia/Tokyo"},
		{name: "bad claim falls back", claim: "Mars/Olympus", want: "WIB"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got *time.Location
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				if tc.claim != "" {
					c.Locals(LocGymTimezone, tc.claim)
				}
				got = GetGymLocation(c, wib)
				return c.SendStatus(fiber.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/?tz=America/Los_Angeles", nil)
			req.Header.Set("X-Timezone", "America/Los_Angeles")
			if _, err := app.Test(req); err != nil {
				t.Fatal(err)
			}
			if got == nil || got.String() != tc.want {
				t.Fatalf("location = %v want %s", got, tc.want)
			}
		})
	}

	if loc := GetGymLocation(nil, nil); loc != time.UTC {
		t.Fatalf("nil ctx: %v", loc)
	}
}
