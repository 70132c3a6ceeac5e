package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinic-scheduling-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	slotCacheKeyPrefix = "slots:available:"

	// Short TTL keeps listings fresh for slots created by the generator, which
	// does not invalidate per-date keys.
	slotCacheTTL = 30 * time.Second
)

// SlotCache is a read-side cache for available-slot listings. It is never
// consulted on the booking path; correctness always comes from the database.
type SlotCache interface {
	GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Slot, bool)
	SetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date time.Time, slots []entity.Slot)
	Invalidate(ctx context.Context, doctorID uuid.UUID, date time.Time)
}

type slotCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSlotCacheService(redisClient *redis.Client, log *logrus.Logger) SlotCache {
	return &slotCacheService{
		redisClient: redisClient,
		log:         log,
	}
}

// GetAvailableSlots returns the cached listing and whether it was a hit.
// Any Redis failure degrades to a miss.
func (s *slotCacheService) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Slot, bool) {
	val, err := s.redisClient.Get(ctx, s.key(doctorID, date)).Result()
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("Slot cache read failed for doctor %s: %+v", doctorID, err)
		}
		return nil, false
	}

	var slots []entity.Slot
	if err := json.Unmarshal([]byte(val), &slots); err != nil {
		s.log.Warnf("Slot cache payload corrupt for doctor %s: %+v", doctorID, err)
		return nil, false
	}
	return slots, true
}

func (s *slotCacheService) SetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date time.Time, slots []entity.Slot) {
	payload, err := json.Marshal(slots)
	if err != nil {
		s.log.Warnf("Failed to marshal slot cache payload for doctor %s: %+v", doctorID, err)
		return
	}
	if err := s.redisClient.Set(ctx, s.key(doctorID, date), payload, slotCacheTTL).Err(); err != nil {
		s.log.Warnf("Slot cache write failed for doctor %s: %+v", doctorID, err)
	}
}

func (s *slotCacheService) Invalidate(ctx context.Context, doctorID uuid.UUID, date time.Time) {
	if err := s.redisClient.Del(ctx, s.key(doctorID, date)).Err(); err != nil {
		s.log.Warnf("Slot cache invalidation failed for doctor %s: %+v", doctorID, err)
	}
}

func (s *slotCacheService) key(doctorID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s%s:%s", slotCacheKeyPrefix, doctorID, entity.DateKey(date))
}
