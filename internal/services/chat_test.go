package services

import (
	"net/http"
	"sync"
	"testing"

	"github.com/conectahub/backend/internal/models"
	"github.com/conectahub/backend/pkg/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureChat_NormalizesPair(t *testing.T) {
	env := newTestEnv(t)
	a := env.user(t, "a", models.UserTypeDesigner)
	b := env.user(t, "b", models.UserTypeProgrammer)

	first, err := env.chats.EnsureChat(env.ctx, b.ID, a.ID)
	require.NoError(t, err)
	second, err := env.chats.EnsureChat(env.ctx, a.ID, b.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Less(t, first.User1ID, first.User2ID)

	_, err = env.chats.EnsureChat(env.ctx, a.ID, a.ID)
	assert.Equal(t, http.StatusBadRequest, response.StatusOf(err))
}

func TestEnsureChat_ConcurrentCallersConverge(t *testing.T) {
	env := newTestEnv(t)
	a := env.user(t, "a", models.UserTypeDesigner)
	b := env.user(t, "b", models.UserTypeProgrammer)

	const workers = 8
	var wg sync.WaitGroup
	ids := make([]uint, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			x, y := a.ID, b.ID
			if i%2 == 1 {
				x, y = y, x
			}
			chat, err := env.chats.EnsureChat(env.ctx, x, y)
			errs[i] = err
			if err == nil {
				ids[i] = chat.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.EqualValues(t, 1, env.countRows(t, &models.Chat{}, ""))
}

// Messages come back in the order they were posted.
func TestChat_MessagesOldestFirst(t *testing.T) {
	env := newTestEnv(t)
	a := env.user(t, "ana", models.UserTypeDesigner)
	b := env.user(t, "bruno", models.UserTypeProgrammer)

	chat, err := env.chats.Create(env.ctx, &CreateChatRequest{User1ID: a.ID, User2ID: b.ID})
	require.NoError(t, err)

	texts := []string{"oi", "tudo bem?", "bora codar", "fechado"}
	for i, text := range texts {
		sender := a.ID
		if i%2 == 1 {
			sender = b.ID
		}
		_, err := env.chats.PostMessage(env.ctx, chat.ID, &PostMessageRequest{SenderID: sender, Message: text})
		require.NoError(t, err)
	}

	msgs, err := env.chats.ListMessages(env.ctx, chat.ID)
	require.NoError(t, err)
	require.Len(t, msgs, len(texts))
	for i, m := range msgs {
		assert.Equal(t, texts[i], m.Message)
		if i > 0 {
			assert.False(t, m.CreatedAt.Before(msgs[i-1].CreatedAt))
		}
	}
	assert.Equal(t, "bruno", msgs[1].SenderName)
}

func TestChat_PostMessageRules(t *testing.T) {
	env := newTestEnv(t)
	a := env.user(t, "a", models.UserTypeDesigner)
	b := env.user(t, "b", models.UserTypeProgrammer)
	outsider := env.user(t, "c", models.UserTypeOther)

	chat, err := env.chats.EnsureChat(env.ctx, a.ID, b.ID)
	require.NoError(t, err)

	_, err = env.chats.PostMessage(env.ctx, chat.ID, &PostMessageRequest{SenderID: outsider.ID, Message: "hi"})
	assert.Equal(t, http.StatusForbidden, response.StatusOf(err))

	_, err = env.chats.PostMessage(env.ctx, chat.ID, &PostMessageRequest{SenderID: a.ID, Message: "   "})
	assert.Equal(t, http.StatusBadRequest, response.StatusOf(err))

	_, err = env.chats.PostMessage(env.ctx, 9999, &PostMessageRequest{SenderID: a.ID, Message: "hi"})
	assert.Equal(t, http.StatusNotFound, response.StatusOf(err))

	_, err = env.chats.ListMessages(env.ctx, 9999)
	assert.Equal(t, http.StatusNotFound, response.StatusOf(err))

	assert.EqualValues(t, 0, env.countRows(t, &models.Message{}, ""))
}

func TestChat_ListAndGet(t *testing.T) {
	env := newTestEnv(t)
	me := env.user(t, "me", models.UserTypeDesigner)
	first := env.user(t, "first", models.UserTypeProgrammer)
	second := env.user(t, "second", models.UserTypeOther)

	c1, err := env.chats.EnsureChat(env.ctx, me.ID, first.ID)
	require.NoError(t, err)
	c2, err := env.chats.EnsureChat(env.ctx, second.ID, me.ID)
	require.NoError(t, err)

	chats, err := env.chats.ListForUser(env.ctx, me.ID)
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, c2.ID, chats[0].ID)
	assert.Equal(t, "second", chats[0].OtherUserName)
	assert.Equal(t, c1.ID, chats[1].ID)
	assert.Equal(t, first.ID, chats[1].OtherUserID)

	detail, err := env.chats.Get(env.ctx, c1.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"me", "first"}, []string{detail.User1Name, detail.User2Name})

	_, err = env.chats.Get(env.ctx, 9999)
	assert.Equal(t, http.StatusNotFound, response.StatusOf(err))

	_, err = env.chats.Create(env.ctx, &CreateChatRequest{User1ID: me.ID, User2ID: 9999})
	assert.Equal(t, http.StatusNotFound, response.StatusOf(err))
}
