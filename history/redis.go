package history

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	matchKeyTTL   = 24 * time.Hour
	recentListKey = "matches:recent"
	recentListCap = 100
)

const (
	matchIDKey         = "id"
	matchRoomKey       = "room"
	matchWinnerKey     = "winner"
	matchLoserKey      = "loser"
	matchOutcomeKey    = "outcome"
	matchFinishedAtKey = "finished_at"
)

func getMatchKey(id string) string {
	return fmt.Sprintf("match:%v", id)
}

// RedisRecorder keeps one hash per match with a TTL, plus a capped list of
// recent match ids driving the /matches feed.
type RedisRecorder struct {
	rdb *redis.Client
}

func NewRedisRecorder(rdb *redis.Client) *RedisRecorder {
	return &RedisRecorder{rdb: rdb}
}

func (r *RedisRecorder) Record(ctx context.Context, m Match) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	data := map[string]string{
		matchIDKey:         m.ID,
		matchRoomKey:       strconv.FormatUint(m.RoomID, 10),
		matchWinnerKey:     m.Winner,
		matchLoserKey:      m.Loser,
		matchOutcomeKey:    m.Outcome,
		matchFinishedAtKey: m.FinishedAt.Format(time.RFC3339),
	}

	key := getMatchKey(m.ID)

	for k, v := range data {
		if err := r.rdb.HSet(ctx, key, k, v).Err(); err != nil {
			return err
		}
	}

	if err := r.rdb.Expire(ctx, key, matchKeyTTL).Err(); err != nil {
		return err
	}

	if err := r.rdb.LPush(ctx, recentListKey, m.ID).Err(); err != nil {
		return err
	}

	return r.rdb.LTrim(ctx, recentListKey, 0, recentListCap-1).Err()
}

func (r *RedisRecorder) Recent(ctx context.Context, n int) ([]Match, error) {
	ids, err := r.rdb.LRange(ctx, recentListKey, 0, int64(n)-1).Result()

	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(ids))

	for _, id := range ids {
		data, err := r.rdb.HGetAll(ctx, getMatchKey(id)).Result()

		if err != nil {
			return nil, err
		}

		if len(data) == 0 {
			continue // hash expired, the list entry just outlived it
		}

		roomID, _ := strconv.ParseUint(data[matchRoomKey], 10, 64)
		finishedAt, _ := time.Parse(time.RFC3339, data[matchFinishedAtKey])

		matches = append(matches, Match{
			ID:         data[matchIDKey],
			RoomID:     roomID,
			Winner:     data[matchWinnerKey],
			Loser:      data[matchLoserKey],
			Outcome:    data[matchOutcomeKey],
			FinishedAt: finishedAt,
		})
	}

	return matches, nil
}
