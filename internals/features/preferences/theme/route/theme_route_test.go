package route

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	svc "planova_backend/internals/features/preferences/theme/service"
	clientMw "planova_backend/internals/middlewares/client"
)

func themeApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	app := fiber.New()
	api := app.Group("/api", clientMw.Identity(clientMw.IdentityOpts{Secret: "s"}))
	ThemeRoutes(api, svc.NewMemoryStore(), validator.New())

	token, err := clientMw.Sign(uuid.New(), "s", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return app, token
}

func call(t *testing.T, app *fiber.App, token, method, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/api/preferences/theme", r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	var env struct {
		Data struct {
			Theme string `json:"theme"`
		} `json:"data"`
	}
	b, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(b, &env)
	return resp.StatusCode, env.Data.Theme
}

func TestTheme(t *testing.T) {
	app, token := themeApp(t)

	if code, theme := call(t, app, token, http.MethodGet, ""); code != 200 || theme != "light" {
		t.Errorf("default = %d %q", code, theme)
	}
	if code, theme := call(t, app, token, http.MethodPut, `{"theme":" DARK "}`); code != 200 || theme != "dark" {
		t.Errorf("put = %d %q", code, theme)
	}
	if code, theme := call(t, app, token, http.MethodGet, ""); code != 200 || theme != "dark" {
		t.Errorf("after put = %d %q", code, theme)
	}
	if code, _ := call(t, app, token, http.MethodPut, `{"theme":"sepia"}`); code != 400 {
		t.Errorf("invalid theme = %d", code)
	}
}

func TestTheme_PerClient(t *testing.T) {
	app, token := themeApp(t)
	call(t, app, token, http.MethodPut, `{"theme":"dark"}`)

	other, _ := clientMw.Sign(uuid.New(), "s", time.Hour)
	if _, theme := call(t, app, other, http.MethodGet, ""); theme != "light" {
		t.Errorf("other client theme = %q", theme)
	}
}
