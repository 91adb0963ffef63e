package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendor-management/internal/application/dto"
	"github.com/jhoicas/vendor-management/internal/domain/catalog"
)

func (s *testServer) permissionID(t *testing.T, codename string) string {
	t.Helper()
	p, err := s.store.Permissions().GetByCodename(context.Background(), codename)
	require.NoError(t, err)
	require.NotNil(t, p, "el catálogo debe estar sembrado")
	return p.ID
}

func (s *testServer) createVendor(t *testing.T, authHeader string) dto.VendorResponse {
	t.Helper()
	resp := s.doJSON(t, http.MethodPost, "/create_vendor/", authHeader, dto.VendorRequest{
		VendorName:           "Acme",
		CompanyEstablishedOn: 2001,
		Country:              "Colombia",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.VendorResponse](t, resp)
}

func (s *testServer) createProduct(t *testing.T, authHeader, vendorID string, files map[string]string) dto.ProductResponse {
	t.Helper()
	body, contentType := multipartBody(t, map[string]string{
		"vendor":         vendorID,
		"name":           "Ledger",
		"software_type":  "ERP",
		"module":         "Finanzas",
		"client_type":    "Enterprise",
		"business_area":  "Contabilidad",
		"last_demo_date": "2024-03-01",
	}, map[string]map[string]string{"documents": files})
	req := httptest.NewRequest(http.MethodPost, "/create_product/", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	req.Header.Set(fiber.HeaderAuthorization, authHeader)
	resp := s.do(t, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp)
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)
	resp := s.doJSON(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_SignupEmiteCookieYPermitePerfil(t *testing.T) {
	s := newTestServer(t)
	resp := s.doJSON(t, http.MethodPost, "/signup/", "", dto.SignupRequest{
		Username: "ana", Email: "ana@example.com", Role: "Vendor",
		Password1: "s3cret-pass", Password2: "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var session *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == testCookie {
			session = ck
		}
	}
	require.NotNil(t, session, "el signup debe dejar la cookie de sesión")
	assert.True(t, session.HttpOnly)

	out := decode[dto.AuthResponse](t, resp)
	assert.Equal(t, "/create_vendor/", out.Redirect)

	req := httptest.NewRequest(http.MethodGet, "/profile/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: session.Value})
	prof := s.do(t, req)
	require.Equal(t, http.StatusOK, prof.StatusCode)
	assert.Equal(t, "ana", decode[dto.ProfileResponse](t, prof).User.Username)
}

func TestRouter_SignupPasswordsDistintas_400ConCampo(t *testing.T) {
	s := newTestServer(t)
	resp := s.doJSON(t, http.MethodPost, "/signup/", "", dto.SignupRequest{
		Username: "ana", Email: "ana@example.com",
		Password1: "s3cret-pass", Password2: "otra-cosa-1",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Fields, "password2")
}

func TestRouter_SignupComoAdmin_Rechazado(t *testing.T) {
	s := newTestServer(t)
	resp := s.doJSON(t, http.MethodPost, "/signup/", "", dto.SignupRequest{
		Username: "mallory", Email: "mallory@example.com", Role: "Admin",
		Password1: "s3cret-pass", Password2: "s3cret-pass",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Contains(t, out.Fields, "role")
	assert.Empty(t, resp.Cookies(), "no se inicia sesión")

	n, err := s.store.Users().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRouter_CreateVendor_NormalUserBloqueado(t *testing.T) {
	s := newTestServer(t)
	_, h := s.addUser(t, "nora", "Normal User")
	resp := s.doJSON(t, http.MethodPost, "/create_vendor/", h, dto.VendorRequest{VendorName: "X", CompanyEstablishedOn: 2001})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_CreateVendor_AnioFundacionFueraDeRango(t *testing.T) {
	s := newTestServer(t)
	_, h := s.addUser(t, "vera", "Vendor")
	next := time.Now().Year() + 1
	resp := s.doJSON(t, http.MethodPost, "/create_vendor/", h, dto.VendorRequest{VendorName: "X", CompanyEstablishedOn: next})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Contains(t, out.Fields, "company_established_on")
}

func TestRouter_AssignPermission_Contrato(t *testing.T) {
	s := newTestServer(t)
	_, admin := s.addUser(t, "root", "Admin")
	bobID, _ := s.addUser(t, "bob", "Vendor")
	permID := s.permissionID(t, catalog.CanGenerateVendorProductReport)
	yes := true

	t.Run("otorga", func(t *testing.T) {
		resp := s.doJSON(t, http.MethodPost, "/assign_permission/", admin, dto.AssignPermissionRequest{UserID: bobID, PermissionID: permID, Checked: &yes})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Can generate vendor product report asignado a bob correctamente.", decode[dto.AssignPermissionResponse](t, resp).Message)
	})

	t.Run("usuario inexistente", func(t *testing.T) {
		resp := s.doJSON(t, http.MethodPost, "/assign_permission/", admin, dto.AssignPermissionRequest{UserID: "u-nadie", PermissionID: permID, Checked: &yes})
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.NotEmpty(t, decode[dto.SimpleErrorResponse](t, resp).Error)
	})

	t.Run("permiso inexistente", func(t *testing.T) {
		resp := s.doJSON(t, http.MethodPost, "/assign_permission/", admin, dto.AssignPermissionRequest{UserID: bobID, PermissionID: "p-nada", Checked: &yes})
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.NotEmpty(t, decode[dto.SimpleErrorResponse](t, resp).Error)
	})

	t.Run("sin checked", func(t *testing.T) {
		resp := s.doJSON(t, http.MethodPost, "/assign_permission/", admin, map[string]string{"user_id": bobID, "permission_id": permID})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.NotEmpty(t, decode[dto.SimpleErrorResponse](t, resp).Error)
	})

	t.Run("sin permiso de asignación", func(t *testing.T) {
		_, vendor := s.addUser(t, "vic", "Vendor")
		resp := s.doJSON(t, http.MethodPost, "/assign_permission/", vendor, dto.AssignPermissionRequest{UserID: bobID, PermissionID: permID, Checked: &yes})
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.NotEmpty(t, decode[dto.SimpleErrorResponse](t, resp).Error)
	})
}

func TestRouter_RevocarPermiso_EfectoInmediato(t *testing.T) {
	s := newTestServer(t)
	_, admin := s.addUser(t, "root", "Admin")
	bobID, bob := s.addUser(t, "bob", "Vendor")
	permID := s.permissionID(t, catalog.CanGenerateVendorProductReport)

	v := s.createVendor(t, bob)
	s.createProduct(t, bob, v.ID, nil)

	resp := s.doJSON(t, http.MethodGet, "/export-csv/", bob, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	yes, no := true, false
	resp = s.doJSON(t, http.MethodPost, "/assign_permission/", admin, dto.AssignPermissionRequest{UserID: bobID, PermissionID: permID, Checked: &yes})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// mismo token: los permisos se leen en cada request
	resp = s.doJSON(t, http.MethodGet, "/export-csv/", bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "software_data.csv")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(body), "\n"), "cabecera más un producto")

	resp = s.doJSON(t, http.MethodPost, "/assign_permission/", admin, dto.AssignPermissionRequest{UserID: bobID, PermissionID: permID, Checked: &no})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.doJSON(t, http.MethodGet, "/export-csv/", bob, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_PDF_InlineOAdjunto(t *testing.T) {
	s := newTestServer(t)
	_, admin := s.addUser(t, "root", "Admin")

	resp := s.doJSON(t, http.MethodGet, "/generate_softwares_pdf/", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentDisposition), "inline"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))

	resp = s.doJSON(t, http.MethodGet, "/generate_softwares_pdf/?download=1", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentDisposition), "attachment"))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "softwares.pdf")
}

func TestRouter_ProductoMultipartConDocumentos(t *testing.T) {
	s := newTestServer(t)
	_, vera := s.addUser(t, "vera", "Vendor")
	v := s.createVendor(t, vera)

	p := s.createProduct(t, vera, v.ID, map[string]string{"ficha.pdf": "uno", "manual.pdf": "dos"})
	assert.True(t, p.DocumentAttached)
	assert.Equal(t, "Native", p.CloudStatus)
	require.NotNil(t, p.LastDemoDate)
	assert.Equal(t, 2024, p.LastDemoDate.Year())

	resp := s.doJSON(t, http.MethodGet, "/product/"+p.ID+"/", vera, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decode[dto.ProductDetailResponse](t, resp)
	assert.Len(t, detail.Documents, 2)
}

func TestRouter_ProductoConArchivoDemasiadoGrande_413(t *testing.T) {
	s := newTestServer(t)
	_, h := s.addUser(t, "vera", "Vendor")
	v := s.createVendor(t, h)

	body, contentType := multipartBody(t, map[string]string{
		"vendor":        v.ID,
		"name":          "Ledger",
		"software_type": "ERP",
		"module":        "Finanzas",
		"client_type":   "Enterprise",
		"business_area": "Contabilidad",
	}, map[string]map[string]string{"documents": {"grande.bin": strings.Repeat("x", 1<<20+1)}})
	req := httptest.NewRequest(http.MethodPost, "/create_product/", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	req.Header.Set(fiber.HeaderAuthorization, h)
	resp := s.do(t, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "FILE_TOO_LARGE", decode[dto.ErrorResponse](t, resp).Code)
	n, err := s.store.Products().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRouter_Reseñas_DuplicadaYRatingInvalido(t *testing.T) {
	s := newTestServer(t)
	_, vera := s.addUser(t, "vera", "Vendor")
	_, nora := s.addUser(t, "nora", "Normal User")
	v := s.createVendor(t, vera)
	path := "/add-comment/vendor/" + v.ID + "/"

	resp := s.doJSON(t, http.MethodPost, path, nora, dto.CommentRequest{Content: "bien", Rating: 4})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.doJSON(t, http.MethodPost, path, nora, dto.CommentRequest{Content: "otra vez", Rating: 5})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_REVIEW", decode[dto.ErrorResponse](t, resp).Code)

	resp = s.doJSON(t, http.MethodPost, path, vera, dto.CommentRequest{Content: "propio", Rating: 6})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = s.doJSON(t, http.MethodGet, "/vendor/"+v.ID+"/", nora, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decode[dto.VendorDetailResponse](t, resp)
	assert.Equal(t, 1, detail.Reviews.Count)
	require.NotNil(t, detail.Reviews.Average)
	assert.Equal(t, 4, *detail.Reviews.Average)
}

func TestRouter_ListadoPaginado(t *testing.T) {
	s := newTestServer(t)
	_, vera := s.addUser(t, "vera", "Vendor")
	v := s.createVendor(t, vera)
	for i := 0; i < 3; i++ {
		s.createProduct(t, vera, v.ID, nil)
	}

	resp := s.doJSON(t, http.MethodGet, "/applications/?limit=2&offset=0", vera, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ProductListResponse](t, resp)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 3, out.Page.Total)

	// límites fuera de rango se acotan
	resp = s.doJSON(t, http.MethodGet, "/applications/?limit="+strconv.Itoa(500), vera, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out = decode[dto.ProductListResponse](t, resp)
	assert.Equal(t, 100, out.Page.Limit)
	assert.Len(t, out.Items, 3)
}
