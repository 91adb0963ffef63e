package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendor-management/internal/application/auth"
	"github.com/jhoicas/vendor-management/internal/application/report"
	"github.com/jhoicas/vendor-management/internal/application/usecase"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/infrastructure/memory"
	"github.com/jhoicas/vendor-management/internal/infrastructure/pdf"
	"github.com/jhoicas/vendor-management/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/vendor-management/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/vendor-management/pkg/jwt"
	"github.com/jhoicas/vendor-management/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "vendor-management-test"
	testExpMin    = 60
	testCookie    = "session"
)

type testServer struct {
	app   *fiber.App
	store *memory.Store
}

// newTestServer arma la aplicación completa sobre el store en memoria y el storage en disco temporal.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	log := logger.NewNop()
	files, err := storage.NewLocalStorage(t.TempDir(), 1<<20)
	require.NoError(t, err)

	comments := usecase.NewCommentUseCase(store.Comments(), store.Vendors(), store.Products(), usecase.NopMetrics{}, log)
	perms := usecase.NewPermissionUseCase(store.Permissions(), store.Users(), usecase.PermissionPolicy{}, usecase.NopMetrics{}, log)
	_, err = perms.SeedCatalog(context.Background())
	require.NoError(t, err)

	app := apphttp.NewApp(apphttp.AppConfig{Name: "test", Log: log})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users(), store.Profiles(), store,
			auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, auth.SignupPolicy{}, log),
		ActorSvc:     usecase.NewActorService(store.Users()),
		VendorUC:     usecase.NewVendorUseCase(store.Vendors(), store.Products(), store.Documents(), files, comments, usecase.AccessPolicy{}, log),
		ProductUC:    usecase.NewProductUseCase(store.Products(), store.Documents(), store.Vendors(), store, files, comments, usecase.AccessPolicy{}, log),
		CommentUC:    comments,
		PermissionUC: perms,
		ReportUC:     report.NewReportUseCase(store.Products(), pdf.NewMarotoReportGenerator("test")),
		DashboardUC:  usecase.NewDashboardUseCase(store.Users(), store.Vendors(), store.Products()),
		Storage:      files,
		Session:      apphttp.SessionConfig{Secret: testJWTSecret, CookieName: testCookie},
		Cookie:       apphttp.CookieConfig{Name: testCookie, ExpMinutes: testExpMin},
		Log:          log,
		AppName:      "test",
	})
	return &testServer{app: app, store: store}
}

// addUser persiste un usuario y devuelve su header Authorization.
func (s *testServer) addUser(t *testing.T, username, role string) (id, authHeader string) {
	t.Helper()
	u := &entity.User{
		ID: "u-" + username, Username: username, Email: username + "@example.com",
		Role: role, IsActive: true, DateJoined: time.Now(),
	}
	require.NoError(t, s.store.Users().Create(context.Background(), u))
	return u.ID, bearer(t, u.ID, role)
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func (s *testServer) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *testServer) doJSON(t *testing.T, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	return s.do(t, req)
}

// multipartBody arma un formulario con campos y archivos (campo -> nombre -> contenido).
func multipartBody(t *testing.T, fields map[string]string, files map[string]map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, byName := range files {
		for name, content := range byName {
			fw, err := w.CreateFormFile(field, name)
			require.NoError(t, err)
			_, err = fw.Write([]byte(content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
