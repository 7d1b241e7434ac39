//go:build integration

package app

import (
	"os"
	"testing"

	"github.com/guttosm/quote-service/internal/testutil"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.RunWithMongo(m))
}
