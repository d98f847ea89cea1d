package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"mensabot-backend/lib/sqliteutil"
	"mensabot-backend/lib/telegram"
	"mensabot-backend/services/subscribers"
	"mensabot-backend/services/subscribers/db"
)

type fakeSender struct {
	sent map[int64][]string
}

func (f *fakeSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	if f.sent == nil {
		f.sent = map[int64][]string{}
	}
	f.sent[chatID] = append(f.sent[chatID], text)
	return nil
}

type fakeMenu struct {
	reply    string
	digest   string
	digestOk bool
	commands []string
}

func (f *fakeMenu) HandleCommand(ctx context.Context, text string) string {
	f.commands = append(f.commands, text)
	return f.reply
}

func (f *fakeMenu) DailyDigest(ctx context.Context) (string, bool) {
	return f.digest, f.digestOk
}

func testStore(t *testing.T) subscribers.Store {
	database, err := sqliteutil.OpenDB(db.Schema, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return subscribers.NewStore(database)
}

func privateMessage(chatID int64, text string) telegram.Message {
	return telegram.Message{
		Chat: telegram.Chat{ID: chatID, Type: "private"},
		Text: text,
	}
}

func TestHandleSubscribeCommands(t *testing.T) {
	service := NewService(&fakeSender{}, nil, testStore(t), &fakeMenu{})
	ctx := context.Background()

	reply := service.handleMessage(ctx, privateMessage(1, "/start"))
	require.Equal(t, "Du bekommst ab jetzt jeden Tag um 11 das Menü", reply)

	reply = service.handleMessage(ctx, privateMessage(1, "/start"))
	require.Equal(t, "Du bekommst das Menü schon!", reply)

	groupMsg := telegram.Message{
		Chat: telegram.Chat{ID: 2, Type: "group"},
		Text: "/start",
	}
	reply = service.handleMessage(ctx, groupMsg)
	require.Equal(t, "Ihr bekommt ab jetzt jeden Tag um 11 das Menü", reply)

	reply = service.handleMessage(ctx, privateMessage(1, "/stop"))
	require.Equal(t, "Du bekommst das Menü ab jetzt nicht mehr", reply)

	reply = service.handleMessage(ctx, privateMessage(1, "/stop"))
	require.Equal(t, "Du bekommst das Menü doch gar nicht", reply)
}

func TestHandleMenuCommands(t *testing.T) {
	menu := &fakeMenu{reply: "*Speiseplan*"}
	service := NewService(&fakeSender{}, nil, testStore(t), menu)
	ctx := context.Background()

	reply := service.handleMessage(ctx, privateMessage(1, "/menu 24.12.2024"))
	require.Equal(t, "*Speiseplan*", reply)

	reply = service.handleMessage(ctx, privateMessage(1, "/fullmenu"))
	require.Equal(t, "*Speiseplan*", reply)

	require.Equal(t, []string{"/menu 24.12.2024", "/fullmenu"}, menu.commands)
}

func TestHandleUnknownText(t *testing.T) {
	service := NewService(&fakeSender{}, nil, testStore(t), &fakeMenu{})

	reply := service.handleMessage(context.Background(), privateMessage(1, "hallo"))
	require.Equal(t, "Das habe ich nicht verstanden", reply)
}

func TestPushDaily(t *testing.T) {
	sender := &fakeSender{}
	store := testStore(t)
	service := NewService(sender, nil, store, &fakeMenu{digest: "*Speiseplan*", digestOk: true})
	ctx := context.Background()

	_, err := store.Subscribe(ctx, 1)
	require.NoError(t, err)
	_, err = store.Subscribe(ctx, 2)
	require.NoError(t, err)

	service.PushDaily(ctx)
	require.Equal(t, []string{"*Speiseplan*"}, sender.sent[1])
	require.Equal(t, []string{"*Speiseplan*"}, sender.sent[2])
}

func TestPushDailySuppressed(t *testing.T) {
	sender := &fakeSender{}
	store := testStore(t)
	service := NewService(sender, nil, store, &fakeMenu{digestOk: false})
	ctx := context.Background()

	_, err := store.Subscribe(ctx, 1)
	require.NoError(t, err)

	service.PushDaily(ctx)
	require.Empty(t, sender.sent)
}
