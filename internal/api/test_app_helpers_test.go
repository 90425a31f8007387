package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthdash/internal/db"
	"github.com/terraincognita07/healthdash/internal/i18n"
	"github.com/terraincognita07/healthdash/internal/models"
	"github.com/terraincognita07/healthdash/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecretKey = "test-secret-key-0123456789abcdef"

var apiTestNow = time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)

type apiTestApp struct {
	app      *fiber.App
	handler  *Handler
	database *gorm.DB
}

func newAPITestApp(t *testing.T) apiTestApp {
	t.Helper()
	return newAPITestAppWithStore(t, nil)
}

func newAPITestAppWithStore(t *testing.T, store services.RecordStore) apiTestApp {
	t.Helper()
	return newAPITestAppWithOptions(t, Options{RecordStore: store})
}

// newAPITestAppWithOptions fills the secret, location and i18n manager; the
// rest of options is passed through.
func newAPITestAppWithOptions(t *testing.T, options Options) apiTestApp {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "healthdash-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewManager(i18n.LangDE)
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	options.SecretKey = testSecretKey
	options.Location = time.UTC
	options.I18n = i18nManager
	handler, err := NewHandler(database, options)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time { return apiTestNow }

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	return apiTestApp{app: app, handler: handler, database: database}
}

func createAPITestUser(t *testing.T, database *gorm.DB, email string, password string, mustChangePassword bool) models.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Email:              email,
		PasswordHash:       string(passwordHash),
		MustChangePassword: mustChangePassword,
		CreatedAt:          apiTestNow,
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func loginAndExtractAuthCookie(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	response := doJSONRequest(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d", response.StatusCode)
	}
	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected auth cookie in login response")
	}
	return authCookieName + "=" + cookie.Value
}

func doJSONRequest(t *testing.T, app *fiber.App, method string, target string, cookie string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, target, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	request.Header.Set("Accept", fiber.MIMEApplicationJSON)
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, target, err)
	}
	return response
}

func decodeJSONBody(t *testing.T, response *http.Response, target any) {
	t.Helper()

	content, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(content, target); err != nil {
		t.Fatalf("decode response body %q: %v", strings.TrimSpace(string(content)), err)
	}
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]any{}
	content, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(content, &payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	message, _ := payload["error"].(string)
	return message
}

func createRecordViaAPI(t *testing.T, app *fiber.App, cookie string, kind models.RecordKind, fields map[string]string) models.Record {
	t.Helper()

	response := doJSONRequest(t, app, http.MethodPost, "/api/records/"+string(kind), cookie, map[string]any{"fields": fields})
	defer response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create %s record: expected 201, got %d (%s)", kind, response.StatusCode, readAPIError(t, response.Body))
	}

	record := models.Record{}
	decodeJSONBody(t, response, &record)
	return record
}

// failingRecordStore reports every call as a remote outage.
type failingRecordStore struct{}

func (failingRecordStore) List(context.Context, uint, models.RecordKind) ([]models.Record, error) {
	return nil, services.ErrRecordStoreUnavailable
}

func (failingRecordStore) ListAll(context.Context, uint) (models.Collections, error) {
	return models.Collections{}, services.ErrRecordStoreUnavailable
}

func (failingRecordStore) Get(context.Context, uint, models.RecordKind, string) (models.Record, error) {
	return models.Record{}, services.ErrRecordStoreUnavailable
}

func (failingRecordStore) Create(context.Context, uint, models.RecordKind, models.Fields) (models.Record, error) {
	return models.Record{}, services.ErrRecordStoreUnavailable
}

func (failingRecordStore) Update(context.Context, uint, models.RecordKind, string, models.Fields) (models.Record, error) {
	return models.Record{}, services.ErrRecordStoreUnavailable
}

func (failingRecordStore) Delete(context.Context, uint, models.RecordKind, string) error {
	return services.ErrRecordStoreUnavailable
}

// sharedRecordStore serves the same records to every user, like a single
// remote account.
type sharedRecordStore struct {
	failingRecordStore
	records []models.Record
}

func newSharedRecordStore(records ...models.Record) *sharedRecordStore {
	return &sharedRecordStore{records: records}
}

func (store *sharedRecordStore) List(_ context.Context, _ uint, kind models.RecordKind) ([]models.Record, error) {
	matched := make([]models.Record, 0, len(store.records))
	for _, record := range store.records {
		if record.Kind == kind {
			matched = append(matched, record)
		}
	}
	return matched, nil
}
