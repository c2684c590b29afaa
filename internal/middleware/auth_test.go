package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/zemlex/estate-catalog/internal/middleware"
)

const testSecret = "test-secret"

func setupAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin", middleware.AuthAdmin(testSecret), func(c *fiber.Ctx) error {
		user, _ := c.Locals("user").(string)
		return c.JSON(fiber.Map{"user": user})
	})
	return app
}

func signToken(t *testing.T, secret, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "manager@example.com",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func TestAuthAdmin(t *testing.T) {
	app := setupAuthApp()

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", 401},
		{"not bearer", "Basic abc", 401},
		{"garbage token", "Bearer not.a.jwt", 401},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", "admin"), 401},
		{"wrong role", "Bearer " + signToken(t, testSecret, "viewer"), 403},
		{"admin", "Bearer " + signToken(t, testSecret, "admin"), 200},
	}

	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/admin", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: failed to execute request: %v", tc.name, err)
		}
		if resp.StatusCode != tc.want {
			t.Errorf("%s: expected status %d, got %d", tc.name, tc.want, resp.StatusCode)
		}
	}
}

func TestAuthAdminRejectsExpiredToken(t *testing.T) {
	app := setupAuthApp()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "manager@example.com",
		"role": "admin",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("expected status 401 for expired token, got %d", resp.StatusCode)
	}
}
