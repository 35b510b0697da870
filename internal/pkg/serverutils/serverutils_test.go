package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func decode(t *testing.T, body io.Reader) BaseResponse[any] {
	t.Helper()
	var out BaseResponse[any]
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestAdminMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", AdminMiddleware(testSecret), func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("ok", c.Locals("user_id")))
	})

	exp := time.Now().Add(time.Hour).Unix()
	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"garbage token", "Bearer nope", fiber.StatusUnauthorized},
		{"no role", "Bearer " + signed(t, jwt.MapClaims{"user_id": "u1", "exp": exp}), fiber.StatusForbidden},
		{"wrong role", "Bearer " + signed(t, jwt.MapClaims{"role": "user", "exp": exp}), fiber.StatusForbidden},
		{"admin", "Bearer " + signed(t, jwt.MapClaims{"role": "admin", "user_id": "u1", "exp": exp}), fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestAdminMiddlewareWithoutSecret(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", AdminMiddleware(""), func(c *fiber.Ctx) error { return nil })

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, jwt.MapClaims{"role": "admin"}))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestErrorHandlerMiddleware(t *testing.T) {
	type body struct {
		Variant string `validate:"required,oneof=buy refinance"`
	}

	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/validation", func(c *fiber.Ctx) error { return ValidateRequest(body{Variant: "rent"}) })
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "Session not found") })
	app.Get("/unknown", func(c *fiber.Ctx) error { return errors.New("db exploded") })

	resp, err := app.Test(httptest.NewRequest("GET", "/validation", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	out := decode(t, resp.Body)
	assert.False(t, out.Success)
	assert.Equal(t, map[string]any{"Variant": "must be one of buy refinance"}, out.Errors)

	resp, err = app.Test(httptest.NewRequest("GET", "/fiber", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "Session not found", decode(t, resp.Body).Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, "Something went wrong", decode(t, resp.Body).Message)
}

func TestValidateRequestPasses(t *testing.T) {
	type body struct {
		Value string `validate:"required"`
	}
	assert.NoError(t, ValidateRequest(body{Value: "x"}))
}
