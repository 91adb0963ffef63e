package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/infrastructure/pdf"
)

func TestRenderProducts_GeneraPDF(t *testing.T) {
	demo := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	products := []*entity.Product{
		{ID: "p-1", Name: "Ledger", SoftwareType: "ERP", Module: "Contabilidad", ClientType: "B2B",
			BusinessArea: "Finanzas", CloudStatus: entity.CloudNative, LastDemoDate: &demo, DocumentAttached: true},
		{ID: "p-2", Name: "Stocky", SoftwareType: "WMS", Module: "Bodega", ClientType: "B2C",
			BusinessArea: "Logística", CloudStatus: entity.CloudBased},
	}
	g := pdf.NewMarotoReportGenerator("vendor-management")

	out, err := g.RenderProducts(context.Background(), products, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderProducts_SinProductos(t *testing.T) {
	out, err := pdf.NewMarotoReportGenerator("vendor-management").RenderProducts(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
