package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/orae-rims-bridge/internal/rims"
	"github.com/ginjaninja78/orae-rims-bridge/internal/xlsxparser"
)

func TestRunLayout_WritesBuiltInLayout(t *testing.T) {
	useConfig(t, "")
	t.Setenv("LOG_LEVEL", "error")
	path := filepath.Join(t.TempDir(), "layout.xlsx")

	require.NoError(t, runLayout(path))

	got, err := xlsxparser.ParseLayout(path)
	require.NoError(t, err)
	want := rims.DefaultLayout()
	assert.Len(t, got.Order, len(want.Order))
	assert.Len(t, got.Tender, len(want.Tender))
}

func TestRunLayout_MissingDirectory(t *testing.T) {
	useConfig(t, "")
	t.Setenv("LOG_LEVEL", "error")

	err := runLayout(filepath.Join(t.TempDir(), "missing", "layout.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write layout template")
}
