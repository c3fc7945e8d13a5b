package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newRouter(seen *string) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		*seen = c.GetString(ContextRequestID)
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	t.Parallel()

	var seen string
	w := httptest.NewRecorder()
	newRouter(&seen).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	got := w.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, got, seen)
}

func TestRequestID_PropagatesValidHeader(t *testing.T) {
	t.Parallel()

	id := uuid.NewString()
	var seen string
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, id)
	w := httptest.NewRecorder()
	newRouter(&seen).ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get(HeaderRequestID))
	assert.Equal(t, id, seen)
}

func TestRequestID_ReplacesGarbage(t *testing.T) {
	t.Parallel()

	var seen string
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid\r\n")
	w := httptest.NewRecorder()
	newRouter(&seen).ServeHTTP(w, req)

	assert.NotEqual(t, "not-a-uuid\r\n", seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}
