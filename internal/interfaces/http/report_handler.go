package http

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendor-management/internal/application/report"
)

// ReportHandler exportación del catálogo de productos en PDF y CSV.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// PDF godoc
// @Summary      Reporte PDF de productos
// @Description  Se muestra inline; con ?download=1 se descarga como adjunto.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        download  query  bool  false  "Descargar como adjunto"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /generate_softwares_pdf/ [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	doc, err := h.uc.PDF(c.UserContext(), GetActor(c))
	if err != nil {
		return err
	}
	disposition := "inline"
	if c.QueryBool("download", false) {
		disposition = "attachment"
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`%s; filename="%s"`, disposition, report.PDFFilename))
	return c.Send(doc)
}

// CSV godoc
// @Summary      Exportar productos a CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /export-csv/ [get]
func (h *ReportHandler) CSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.WriteCSV(c.UserContext(), GetActor(c), &buf); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Attachment(report.CSVFilename)
	return c.Send(buf.Bytes())
}
