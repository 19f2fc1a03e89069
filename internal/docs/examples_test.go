package docs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/orgdir/orgdir/pkg/errors"
)

func exampleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	payload := `{"summary": "Create a user", "value": {"first_name": "John"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user-create.json"), []byte(payload), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "company-create.json"), []byte(`{"value": {}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("not json"), 0o644))
	return dir
}

func TestExamplesGet(t *testing.T) {
	e, err := NewExamples(exampleDir(t))
	require.NoError(t, err)

	ex, err := e.Get("user-create")
	require.NoError(t, err)
	assert.Equal(t, "Create a user", ex.Summary)
	assert.JSONEq(t, `{"first_name": "John"}`, string(ex.Value))
}

func TestExamplesGetNotFound(t *testing.T) {
	e, err := NewExamples(exampleDir(t))
	require.NoError(t, err)

	_, err = e.Get("missing")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestExamplesGetTraversal(t *testing.T) {
	e, err := NewExamples(exampleDir(t))
	require.NoError(t, err)

	for _, name := range []string{"../secret", "a/b", ".."} {
		_, err := e.Get(name)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr, name)
		assert.Equal(t, 400, appErr.Code, name)
	}
}

func TestExamplesNames(t *testing.T) {
	e, err := NewExamples(exampleDir(t))
	require.NoError(t, err)

	names, err := e.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"company-create", "user-create"}, names)
}

func TestExamplesMissingDir(t *testing.T) {
	_, err := NewExamples(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
