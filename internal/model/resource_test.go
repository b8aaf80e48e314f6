package model_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"

	"admin-datagrid/internal/dialog"
	"admin-datagrid/internal/model"
)

func TestDescriptors(t *testing.T) {
	for _, d := range model.Descriptors() {
		t.Run(d.Name, func(t *testing.T) {
			_, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(d.Schema))
			require.NoError(t, err)
			assert.NotEmpty(t, d.ItemsField)
			assert.NotEmpty(t, d.Facets)
			assert.GreaterOrEqual(t, d.SearchMinLen, 1)
		})
	}
}

func TestAllows(t *testing.T) {
	logs := model.AuditLogs().Descriptor
	assert.False(t, logs.Allows(dialog.KindCreate))
	assert.False(t, logs.Allows(dialog.KindDelete))
	assert.True(t, logs.Allows(model.KindView))
	assert.True(t, logs.Allows(model.KindCleanup))
	assert.Equal(t, []dialog.Kind{model.KindExport, model.KindCleanup}, logs.RowlessKinds())

	products := model.Products().Descriptor
	assert.True(t, products.Allows(dialog.KindUpdate))
	assert.True(t, products.Allows(model.KindToggleStatus))
	assert.False(t, products.Allows(model.KindView))
	assert.Empty(t, products.RowlessKinds())
}

func TestActionURL(t *testing.T) {
	products := model.Products()
	toggle, ok := products.Action(model.KindToggleStatus)
	require.True(t, ok)
	assert.Equal(t, http.MethodPatch, toggle.Method)
	assert.Equal(t, "/products/p-1/toggle-status", toggle.URL(products.Route, "p-1"))

	image, ok := products.Action(model.KindDeleteImage)
	require.True(t, ok)
	assert.Equal(t, "/products/p-1/image", image.URL(products.Route, "p-1"))

	cleanup, ok := model.AuditLogs().Action(model.KindCleanup)
	require.True(t, ok)
	assert.Equal(t, "/audit-logs/cleanup", cleanup.URL("/audit-logs", ""))
	assert.Equal(t, []string{"olderThan"}, cleanup.Params)

	_, ok = products.Action(model.KindCleanup)
	assert.False(t, ok)
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "87.5", model.FormatScore(87.5))
	assert.Equal(t, "90.0", model.FormatScore(90))
}
