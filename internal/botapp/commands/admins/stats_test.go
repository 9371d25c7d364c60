package admins

import (
	"context"
	"testing"
	"time"

	"github.com/archnets/drive-relay-bot/internal/botapp/commands"
	"github.com/archnets/drive-relay-bot/internal/botapp/commands/commandstest"
	"github.com/archnets/drive-relay-bot/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleStats(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	now := time.Now()
	require.NoError(t, st.RecordUpload(ctx, store.Upload{RelayID: "a", ChatID: 1, Status: store.StatusDone, Size: 3 << 20, CreatedAt: now}))
	require.NoError(t, st.RecordUpload(ctx, store.Upload{RelayID: "b", ChatID: 2, Status: store.StatusFailed, Size: 10, CreatedAt: now}))

	deps := commands.Deps{Store: st, AdminIDs: []int64{100}}
	handler := commands.Chain(commands.WithAdmin)(HandleStats)

	t.Run("admin", func(t *testing.T) {
		b := &commandstest.Bot{}
		handler(ctx, b, commandstest.Message(100, "/stats"), deps)
		assert.Equal(t, []string{"Relays: 2\nSucceeded: 1\nFailed: 1\nUploaded: 3.0 MiB"}, b.Texts())
	})

	t.Run("not admin", func(t *testing.T) {
		b := &commandstest.Bot{}
		handler(ctx, b, commandstest.Message(7, "/stats"), deps)
		assert.Equal(t, []string{"Access denied."}, b.Texts())
	})
}
