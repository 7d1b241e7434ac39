// Package middleware provides HTTP middleware components for the quote service.
package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression gzips JSON and HTML responses. Rendered PDFs are already
// compressed and /metrics negotiates its own encoding, so both are skipped.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/metrics"}),
		gzip.WithExcludedPathsRegexs([]string{`/pdf$`}),
	)
}
