//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

const mongoImage = "mongo:7.0"

// Mongo is a disposable MongoDB server in a container.
type Mongo struct {
	container *mongodb.MongoDBContainer
	URI       string
}

// StartMongo runs a fresh MongoDB container.
func StartMongo(ctx context.Context) (*Mongo, error) {
	c, err := mongodb.Run(ctx, mongoImage)
	if err != nil {
		return nil, fmt.Errorf("start mongodb container: %w", err)
	}
	uri, err := c.ConnectionString(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("mongodb connection string: %w", err)
	}
	return &Mongo{container: c, URI: uri}, nil
}

// Stop halts the server without removing it, to simulate an outage.
func (m *Mongo) Stop(ctx context.Context) error {
	timeout := 5 * time.Second
	return m.container.Stop(ctx, &timeout)
}

// Terminate removes the container.
func (m *Mongo) Terminate(ctx context.Context) error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Terminate(ctx)
}

var shared struct {
	once sync.Once
	m    *Mongo
	err  error
}

// RunWithMongo starts one container for the package, runs its tests and
// removes the container. Use it as the body of TestMain.
func RunWithMongo(m *testing.M) int {
	ctx := context.Background()
	shared.once.Do(func() {
		shared.m, shared.err = StartMongo(ctx)
	})
	if shared.err != nil {
		fmt.Fprintln(os.Stderr, shared.err)
		return 1
	}

	code := m.Run()
	if err := shared.m.Terminate(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "terminate mongodb container:", err)
	}
	return code
}

// MongoURI returns the package's shared server. RunWithMongo must be running.
func MongoURI(t testing.TB) string {
	t.Helper()
	if shared.m == nil {
		t.Fatal("shared mongodb not started: call testutil.RunWithMongo from TestMain")
	}
	return shared.m.URI
}

var dbNameReplacer = strings.NewReplacer("/", "_", "\\", "_", ".", "_", " ", "_", "$", "_", "\"", "_")

// DBName returns a database name unique to t. MongoDB caps names at 63 bytes.
func DBName(t testing.TB) string {
	name := dbNameReplacer.Replace(t.Name())
	if len(name) > 50 {
		name = name[:50]
	}
	return name + "_" + uuid.NewString()[:8]
}
