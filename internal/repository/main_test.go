//go:build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/guttosm/quote-service/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.RunWithMongo(m))
}

// testDB connects to a database of its own on the shared server and drops it
// when t ends.
func testDB(t *testing.T) *MongoDB {
	t.Helper()
	db, err := NewMongoDB(testutil.MongoURI(t), testutil.DBName(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx := context.Background()
		_ = db.Database.Drop(ctx)
		_ = db.Close(ctx)
	})
	return db
}
