// Package mongodbtest connects repository tests to a real MongoDB server.
// Tests are skipped unless MONGODB_TEST_URI is set, e.g.
//
//	docker run --rm -p 27017:27017 mongo:7
//	MONGODB_TEST_URI=mongodb://localhost:27017 go test ./internal/...
package mongodbtest

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"slapflip-backend/internal/common/config"
	"slapflip-backend/internal/platform/mongodb"
)

const EnvURI = "MONGODB_TEST_URI"

// New returns a client bound to a fresh database with every index in place.
// The database is dropped when the test ends.
func New(t *testing.T) *mongodb.Client {
	t.Helper()

	uri := os.Getenv(EnvURI)
	if uri == "" {
		t.Skipf("%s not set", EnvURI)
	}

	cfg := &config.Config{}
	cfg.Mongo.URI = uri
	cfg.Mongo.Database = fmt.Sprintf("slap_test_%s", uuid.NewString()[:8])
	cfg.Mongo.ConnectTimeout = 5 * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongodb.NewClient(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = client.Database().Drop(ctx)
		_ = client.Close(ctx)
	})

	require.NoError(t, client.EnsureIndexes(ctx, 10*time.Minute))
	return client
}
