package bot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"mensabot-backend/lib/telegram"
	"mensabot-backend/services/subscribers"
)

// Sender delivers rendered text to a chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// UpdateSource yields incoming updates, blocking until some arrive or
// its poll times out.
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64) ([]telegram.Update, error)
}

// MenuProvider is the menu pipeline as the transport sees it: display
// text on demand, or the daily digest.
type MenuProvider interface {
	HandleCommand(ctx context.Context, text string) string
	DailyDigest(ctx context.Context) (string, bool)
}

// Service wires the chat transport to the subscriber registry and the
// menu pipeline.
type Service struct {
	send    Sender
	updates UpdateSource
	store   subscribers.Store
	menu    MenuProvider
}

func NewService(send Sender, updates UpdateSource, store subscribers.Store, menu MenuProvider) Service {
	return Service{
		send:    send,
		updates: updates,
		store:   store,
		menu:    menu,
	}
}

// Run polls for updates until the context ends.
func (s Service) Run(ctx context.Context) {
	var offset int64
	for ctx.Err() == nil {
		updates, err := s.updates.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.ErrorContext(ctx, "poll updates", "err", err)
			select {
			case <-time.After(time.Second * 5):
			case <-ctx.Done():
				return
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}

			reply := s.handleMessage(ctx, *update.Message)
			if reply == "" {
				continue
			}
			slog.InfoContext(ctx, "sending message", "chat_id", update.Message.Chat.ID)
			err := s.send.SendMessage(ctx, update.Message.Chat.ID, reply)
			if err != nil {
				slog.ErrorContext(
					ctx, "send reply",
					"chat_id", update.Message.Chat.ID,
					"err", err,
				)
			}
		}
	}
}

func (s Service) handleMessage(ctx context.Context, msg telegram.Message) string {
	start := "Du bekommst "
	if msg.Chat.Type != "private" {
		start = "Ihr bekommt "
	}

	switch {
	case strings.HasPrefix(msg.Text, "/start"):
		added, err := s.store.Subscribe(ctx, msg.Chat.ID)
		if err != nil {
			slog.ErrorContext(ctx, "subscribe", "chat_id", msg.Chat.ID, "err", err)
			return ""
		}
		if added {
			return start + "ab jetzt jeden Tag um 11 das Menü"
		}
		return start + "das Menü schon!"

	case strings.HasPrefix(msg.Text, "/stop"):
		removed, err := s.store.Unsubscribe(ctx, msg.Chat.ID)
		if err != nil {
			slog.ErrorContext(ctx, "unsubscribe", "chat_id", msg.Chat.ID, "err", err)
			return ""
		}
		if removed {
			return start + "das Menü ab jetzt nicht mehr"
		}
		return start + "das Menü doch gar nicht"

	case strings.HasPrefix(msg.Text, "/menu"), strings.HasPrefix(msg.Text, "/fullmenu"):
		return s.menu.HandleCommand(ctx, msg.Text)

	default:
		return "Das habe ich nicht verstanden"
	}
}

// PushDaily sends the menu digest to every subscriber. Weekends and
// empty menus produce no digest and no sends.
func (s Service) PushDaily(ctx context.Context) {
	text, ok := s.menu.DailyDigest(ctx)
	if !ok {
		return
	}

	chats, err := s.store.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "list subscribers", "err", err)
		return
	}
	for _, chatID := range chats {
		slog.InfoContext(ctx, "sending menu", "chat_id", chatID)
		err := s.send.SendMessage(ctx, chatID, text)
		if err != nil {
			slog.ErrorContext(ctx, "send daily menu", "chat_id", chatID, "err", err)
		}
	}
}
