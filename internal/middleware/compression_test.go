package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCompression(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		acceptEncoding string
		wantGzip       bool
	}{
		{name: "quote JSON with gzip", path: "/api/v1/quotes/acme", acceptEncoding: "gzip", wantGzip: true},
		{name: "quote JSON with gzip and deflate", path: "/api/v1/quotes/acme", acceptEncoding: "gzip, deflate", wantGzip: true},
		{name: "client without gzip", path: "/api/v1/quotes/acme", wantGzip: false},
		{name: "pdf is not recompressed", path: "/api/v1/quotes/acme/pdf", acceptEncoding: "gzip", wantGzip: false},
		{name: "metrics are skipped", path: "/metrics", acceptEncoding: "gzip", wantGzip: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Compression())
			router.POST("/api/v1/quotes/:tenant", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"total": "1234.56"})
			})
			router.POST("/api/v1/quotes/:tenant/pdf", func(c *gin.Context) {
				c.Data(http.StatusOK, "application/pdf", []byte("%PDF-1.4"))
			})
			router.POST("/metrics", func(c *gin.Context) {
				c.String(http.StatusOK, "quote_calculations_total 1")
			})

			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			if tt.wantGzip {
				assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
			} else {
				assert.Empty(t, w.Header().Get("Content-Encoding"))
			}
		})
	}
}
