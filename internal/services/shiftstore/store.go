// internal/services/shiftstore/store.go
package shiftstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cameraTTL = 24 * time.Hour

// Store хранит живое состояние консоли в redis: отметку старта смены
// (ISO-8601, переживает перезагрузку консоли) и выбранную камеру.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func shiftKey(guardID int) string {
	return fmt.Sprintf("shift:start:%d", guardID)
}

func cameraKey(guardID int) string {
	return fmt.Sprintf("camera:active:%d", guardID)
}

// SaveShiftStart записывает отметку старта. Без TTL: смена живёт,
// пока её явно не закончат.
func (s *Store) SaveShiftStart(ctx context.Context, guardID int, start time.Time) error {
	return s.client.Set(ctx, shiftKey(guardID), start.Format(time.RFC3339), 0).Err()
}

// GetShiftStart возвращает сохранённую отметку как строку; пустая
// строка — прежней смены нет. Разбором занимается shifttimer.Resume,
// битое значение там же трактуется как отсутствие.
func (s *Store) GetShiftStart(ctx context.Context, guardID int) (string, error) {
	val, err := s.client.Get(ctx, shiftKey(guardID)).Result()
	if err == redis.Nil {
		return "", nil
	} else if err != nil {
		return "", err
	}
	return val, nil
}

func (s *Store) ClearShiftStart(ctx context.Context, guardID int) error {
	return s.client.Del(ctx, shiftKey(guardID)).Err()
}

func (s *Store) SaveActiveCamera(ctx context.Context, guardID, cameraID int) error {
	return s.client.Set(ctx, cameraKey(guardID), cameraID, cameraTTL).Err()
}

func (s *Store) GetActiveCamera(ctx context.Context, guardID int) (int, error) {
	val, err := s.client.Get(ctx, cameraKey(guardID)).Int()
	if err == redis.Nil {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return val, nil
}

func (s *Store) ClearActiveCamera(ctx context.Context, guardID int) error {
	return s.client.Del(ctx, cameraKey(guardID)).Err()
}
