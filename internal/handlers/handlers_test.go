package handlers

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/qrartisan/qrartisan/internal/design"
	"github.com/qrartisan/qrartisan/internal/generate"
	"github.com/qrartisan/qrartisan/internal/template"
)

func newTestRouter(t *testing.T) (*gin.Engine, *design.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	tplDir := filepath.Join(dir, "templates")
	require.NoError(t, os.MkdirAll(tplDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(tplDir, "badge.svg"),
		[]byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><image x="10" y="10" width="80" height="80" href="placeholder"/><text>label</text></svg>`),
		0o644,
	))

	store, err := design.Open(filepath.Join(dir, "designs.json"))
	require.NoError(t, err)

	templates := template.NewLibrary(tplDir)
	gen := generate.New(templates, 8, zap.NewNop().Sugar())
	h := New(zap.NewNop().Sugar(), store, templates, gen)

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/designs", h.ListDesigns)
		api.POST("/designs", h.CreateDesign)
		api.GET("/designs/:id", h.GetDesign)
		api.PUT("/designs/:id", h.UpdateDesign)
		api.DELETE("/designs/:id", h.DeleteDesign)
		api.POST("/generate", h.Generate)
		api.POST("/generate/archive", h.GenerateArchive)
	}
	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDesignCRUD(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/designs", design.Design{Name: "first", Template: "badge"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created design.Design
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 1, created.ID)

	w = doJSON(t, r, http.MethodGet, "/api/designs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []design.Design
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	created.Name = "renamed"
	w = doJSON(t, r, http.MethodPut, "/api/designs/1", created)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/designs/1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/designs/1", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateRejectsEmptyContent(t *testing.T) {
	r, store := newTestRouter(t)
	_, err := store.Create(design.Design{Name: "d"})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/generate", generateRequest{Content: "   "})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateBatch(t *testing.T) {
	r, store := newTestRouter(t)
	for _, tpl := range []string{"badge", "missing", "badge"} {
		_, err := store.Create(design.Design{Name: "d", Template: tpl})
		require.NoError(t, err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/generate", generateRequest{Content: "https://example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	var res generate.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Artifacts, 2)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, 2, res.Diagnostics[0].DesignID)
	assert.True(t, strings.HasPrefix(res.Artifacts[0].ImageDataURI, "data:image/png;base64,"))
}

func TestGenerateUnknownDesignID(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/generate", generateRequest{Content: "x", DesignIDs: []int{77}})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateArchiveStreamsZip(t *testing.T) {
	r, store := newTestRouter(t)
	_, err := store.Create(design.Design{Name: "Poster One", Template: "badge"})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/generate/archive", generateRequest{Content: "https://example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "design-1-Poster-One.svg", zr.File[0].Name)

	f, err := zr.File[0].Open()
	require.NoError(t, err)
	defer f.Close()
	var svg bytes.Buffer
	_, err = svg.ReadFrom(f)
	require.NoError(t, err)
	assert.Contains(t, svg.String(), "data:image/png;base64,")
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "untitled", safeFilename(""))
	assert.Equal(t, "untitled", safeFilename("///"))
	assert.Equal(t, "My-Design_2", safeFilename("My Design_2"))
}
