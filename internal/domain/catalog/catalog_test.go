package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/vendor-management/internal/domain/catalog"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
)

func TestEntries_CodenamesUnicosYCategoriasValidas(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range catalog.Entries() {
		assert.False(t, seen[e.Codename], "codename repetido: %s", e.Codename)
		seen[e.Codename] = true
		assert.True(t, entity.ValidCategory(e.Category), e.Codename)
		assert.NotEmpty(t, e.Name)
	}
	assert.Len(t, seen, 10)
}

func TestEntries_DevuelveCopia(t *testing.T) {
	a := catalog.Entries()
	a[0].Name = "modificado"
	assert.NotEqual(t, "modificado", catalog.Entries()[0].Name)
}

func TestLookup(t *testing.T) {
	e, ok := catalog.Lookup(catalog.CanGenerateVendorProductReport)
	assert.True(t, ok)
	assert.Equal(t, entity.CategoryProductManagement, e.Category)

	_, ok = catalog.Lookup("no_existe")
	assert.False(t, ok)
}
