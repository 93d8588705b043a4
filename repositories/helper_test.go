package repositories

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MalleshPillai/creation-2k26-nexus/gateway"
)

func newTestGateway(t *testing.T) *gateway.BadgerGateway {
	t.Helper()
	db, err := gateway.Open("", true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return gateway.NewBadgerGateway(db, gateway.PortalSchema(), slog.Default())
}

func seed(t *testing.T, gw *gateway.BadgerGateway, collection string, docs ...map[string]any) {
	t.Helper()
	for _, doc := range docs {
		require.NoError(t, gw.Insert(context.Background(), collection, doc))
	}
}

func stamp(at time.Time) string {
	return at.UTC().Format(time.RFC3339Nano)
}
