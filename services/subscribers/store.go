package subscribers

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

// Store keeps the chat ids that receive the daily menu push. Chat ids
// are opaque to everything else in this codebase.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// Subscribe registers a chat for the daily push. Reports false if the
// chat was already subscribed.
func (s Store) Subscribe(ctx context.Context, chatID int64) (bool, error) {
	res, err := s.db.ExecContext(
		ctx,
		"insert or ignore into subscribers (chat_id) values (?)",
		chatID,
	)
	if err != nil {
		return false, err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return inserted > 0, nil
}

// Unsubscribe removes a chat. Reports false if it wasn't subscribed.
func (s Store) Unsubscribe(ctx context.Context, chatID int64) (bool, error) {
	res, err := s.db.ExecContext(
		ctx,
		"delete from subscribers where chat_id = ?",
		chatID,
	)
	if err != nil {
		return false, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

func (s Store) List(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, "select chat_id from subscribers")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []int64
	for rows.Next() {
		var chatID int64
		err := rows.Scan(&chatID)
		if err != nil {
			return nil, err
		}
		chats = append(chats, chatID)
	}
	return chats, rows.Err()
}
