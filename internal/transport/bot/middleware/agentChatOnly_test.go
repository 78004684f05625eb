package middleware_test

import (
	"testing"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/require"

	"insurance_desk/internal/transport/bot/middleware"
)

func TestChatID(t *testing.T) {
	t.Parallel()

	r := require.New(t)

	r.Equal(int64(-100500), middleware.ChatID(telego.Update{
		Message: &telego.Message{Chat: telego.Chat{ID: -100500}},
	}))
	r.Equal(int64(-100500), middleware.ChatID(telego.Update{
		CallbackQuery: &telego.CallbackQuery{Message: &telego.Message{Chat: telego.Chat{ID: -100500}}},
	}))
	r.Zero(middleware.ChatID(telego.Update{CallbackQuery: &telego.CallbackQuery{}}))
	r.Zero(middleware.ChatID(telego.Update{}))
}
