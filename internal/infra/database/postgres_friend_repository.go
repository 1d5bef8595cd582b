package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DioGolang/GoNearby/internal/application/port/outbound"
)

type FriendRepositoryImpl struct {
	Db *sql.DB
}

func NewFriendRepository(db *sql.DB) *FriendRepositoryImpl {
	return &FriendRepositoryImpl{Db: db}
}

func (r *FriendRepositoryImpl) ListFriends(ctx context.Context, userID string) ([]outbound.FriendRecord, error) {
	rows, err := r.Db.QueryContext(ctx,
		`SELECT f.friend_id, u.display_name
		   FROM friendships f
		   JOIN users u ON u.id = f.friend_id
		  WHERE f.user_id = $1
		  ORDER BY f.friend_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query friendships: %w", err)
	}
	defer rows.Close()

	var records []outbound.FriendRecord
	for rows.Next() {
		var rec outbound.FriendRecord
		if err := rows.Scan(&rec.ID, &rec.DisplayName); err != nil {
			return nil, fmt.Errorf("scan friendship row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
