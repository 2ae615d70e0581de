package helper

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/shaunchuang/DtxEx/internals/helpers/apperr"
)

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		total       int64
		page, limit int
		want        Pagination
	}{
		{0, 1, 10, Pagination{Page: 1, Limit: 10, TotalCount: 0, TotalPages: 0}},
		{25, 1, 10, Pagination{Page: 1, Limit: 10, TotalCount: 25, TotalPages: 3, HasNextPage: true}},
		{25, 3, 10, Pagination{Page: 3, Limit: 10, TotalCount: 25, TotalPages: 3, HasPrevPage: true}},
		{20, 2, 10, Pagination{Page: 2, Limit: 10, TotalCount: 20, TotalPages: 2, HasPrevPage: true}},
	}
	for _, tt := range tests {
		if got := BuildPagination(tt.total, tt.page, tt.limit); got != tt.want {
			t.Errorf("BuildPagination(%d,%d,%d) = %+v, want %+v", tt.total, tt.page, tt.limit, got, tt.want)
		}
	}
}

func TestResolvePaging(t *testing.T) {
	app := fiber.New()
	var got Paging
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 10, 100)
		return nil
	})

	cases := map[string]Paging{
		"/":                   {Page: 1, Limit: 10, Offset: 0},
		"/?page=3&limit=20":   {Page: 3, Limit: 20, Offset: 40},
		"/?page=-1&limit=abc": {Page: 1, Limit: 10, Offset: 0},
		"/?limit=1000":        {Page: 1, Limit: 100, Offset: 0},

		// offset would overflow
		"/?page=4611686018427387904&limit=4": {Page: 536870912, Limit: 4, Offset: 2147483644},
	}
	for url, want := range cases {
		if _, err := app.Test(httptest.NewRequest("GET", url, nil)); err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%s: got %+v, want %+v", url, got, want)
		}
	}
}

func decodeError(t *testing.T, body io.Reader) ErrorResponse {
	t.Helper()
	var out ErrorResponse
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestJsonFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperr.Validation("bad", map[string][]string{"title": {"is required"}}), 400, "VALIDATION_ERROR"},
		{"not found", apperr.NotFound("questionnaire", "x"), 404, "NOT_FOUND"},
		{"conflict", apperr.Conflict("dup"), 409, "CONFLICT"},
		{"fiber", fiber.NewError(fiber.StatusBadRequest, "invalid id"), 400, "BAD_REQUEST"},
		{"unclassified", errors.New("boom"), 500, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return JsonFromError(c, tt.err) })
			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decodeError(t, resp.Body)
			if body.Success || body.Error != tt.code {
				t.Fatalf("body = %+v", body)
			}
			if tt.status == 500 && body.Message != "internal server error" {
				t.Fatalf("storage details leaked: %q", body.Message)
			}
			if tt.name == "validation" && len(body.Errors["title"]) != 1 {
				t.Fatalf("field errors missing: %+v", body.Errors)
			}
		})
	}
}

type sample struct {
	UserID string `json:"userId" validate:"required,respondent_id"`
	Items  []struct {
		Order int `json:"order" validate:"min=1"`
	} `json:"items" validate:"dive"`
}

func TestValidationFieldsUseJSONNames(t *testing.T) {
	v := NewValidator()
	in := sample{UserID: "bad id!"}
	in.Items = append(in.Items, struct {
		Order int `json:"order" validate:"min=1"`
	}{Order: 0})

	fields := ValidationFields(v.Struct(in))
	if _, ok := fields["userId"]; !ok {
		t.Errorf("missing userId: %v", fields)
	}
	if msgs := fields["items[0].order"]; len(msgs) != 1 || msgs[0] != "must be >= 1" {
		t.Errorf("items[0].order = %v", msgs)
	}
}
