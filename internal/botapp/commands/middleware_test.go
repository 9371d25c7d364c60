package commands_test

import (
	"context"
	"testing"

	"github.com/archnets/drive-relay-bot/internal/botapp/commands"
	"github.com/archnets/drive-relay-bot/internal/botapp/commands/commandstest"
	"github.com/archnets/drive-relay-bot/internal/store"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
)

func TestWithRecover(t *testing.T) {
	b := &commandstest.Bot{}
	h := commands.WithRecover(func(context.Context, commands.Bot, *models.Update, commands.Deps) {
		panic("boom")
	})

	assert.NotPanics(t, func() {
		h(context.Background(), b, commandstest.Message(1, "/start"), commands.Deps{})
	})
	assert.Equal(t, []string{"Oops! Something went wrong."}, b.Texts())
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) commands.Middleware {
		return func(next commands.HandlerFunc) commands.HandlerFunc {
			return func(ctx context.Context, b commands.Bot, u *models.Update, d commands.Deps) {
				order = append(order, name)
				next(ctx, b, u, d)
			}
		}
	}
	h := commands.Chain(mw("a"), mw("b"))(func(context.Context, commands.Bot, *models.Update, commands.Deps) {
		order = append(order, "handler")
	})

	h(context.Background(), &commandstest.Bot{}, commandstest.Message(1, "x"), commands.Deps{})
	assert.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestLanguage(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	deps := commands.Deps{Store: st}

	u := commandstest.Message(1, "hi")
	u.Message.From.LanguageCode = "zh-hans"
	assert.Equal(t, "zh", deps.Language(ctx, u))

	_ = st.SetLang(ctx, 1, "fa")
	assert.Equal(t, "fa", deps.Language(ctx, u))

	assert.Equal(t, "en", commands.Deps{}.Language(ctx, &models.Update{}))
}

func TestIsAdmin(t *testing.T) {
	deps := commands.Deps{AdminIDs: []int64{5, 6}}
	assert.True(t, deps.IsAdmin(6))
	assert.False(t, deps.IsAdmin(7))
}
