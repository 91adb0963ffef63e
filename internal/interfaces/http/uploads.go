package http

import (
	"io"
	"mime/multipart"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendor-management/internal/application/dto"
	"github.com/jhoicas/vendor-management/internal/application/usecase"
	"github.com/jhoicas/vendor-management/internal/domain"
)

// Campo multipart de documentos. También se aceptan los nombres del formset
// clásico (document_set-0-file_path, ...).
const documentsField = "documents"

func uploadFrom(fh *multipart.FileHeader) usecase.Upload {
	return usecase.Upload{
		Filename: fh.Filename,
		Open:     func() (io.ReadCloser, error) { return fh.Open() },
	}
}

// documentUploads devuelve los archivos subidos como documentos, en orden estable.
func documentUploads(c *fiber.Ctx) []usecase.Upload {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	keys := make([]string, 0, len(form.File))
	for k := range form.File {
		if k == documentsField || strings.HasSuffix(k, "file_path") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	var out []usecase.Upload
	for _, k := range keys {
		for _, fh := range form.File[k] {
			if fh.Size == 0 && fh.Filename == "" {
				continue
			}
			out = append(out, uploadFrom(fh))
		}
	}
	return out
}

// Formatos aceptados para fechas en formularios.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// formDates completa las fechas del producto cuando el cuerpo es form o multipart.
func formDates(c *fiber.Ctx, in *dto.ProductRequest) error {
	ct := string(c.Request().Header.ContentType())
	if !strings.HasPrefix(ct, fiber.MIMEApplicationForm) && !strings.HasPrefix(ct, fiber.MIMEMultipartForm) {
		return nil
	}
	fields := map[string]**time.Time{
		"last_demo_date":   &in.LastDemoDate,
		"last_review_date": &in.LastReviewDate,
		"next_review_date": &in.NextReviewDate,
	}
	vErr := &domain.ValidationError{}
	for name, dst := range fields {
		raw := strings.TrimSpace(c.FormValue(name))
		if raw == "" {
			continue
		}
		t, ok := parseDate(raw)
		if !ok {
			vErr.Add(name, "fecha inválida, use YYYY-MM-DD")
			continue
		}
		*dst = &t
	}
	return vErr.OrNil()
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
