// Package mq fans seat updates out to every API instance over Redis pub/sub.
// Without Redis, updates are delivered in process.
package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"tripcraft/models"
)

const SeatUpdatesChannel = "travel-plan-seats"

// SeatBus publishes seat updates and hands received ones to deliver.
type SeatBus struct {
	client  *redis.Client
	deliver func(models.SeatUpdate)
}

// NewSeatBus works in process when client is nil.
func NewSeatBus(client *redis.Client, deliver func(models.SeatUpdate)) *SeatBus {
	return &SeatBus{client: client, deliver: deliver}
}

// Publish sends u to all subscribers. A failed publish falls back to local
// delivery so this instance's listeners still see it.
func (b *SeatBus) Publish(ctx context.Context, u models.SeatUpdate) {
	if b.client == nil {
		b.deliver(u)
		return
	}
	data, err := json.Marshal(u)
	if err != nil {
		log.Error().Err(err).Msg("marshal seat update")
		return
	}
	if err := b.client.Publish(ctx, SeatUpdatesChannel, data).Err(); err != nil {
		log.Warn().Err(err).Str("plan", u.PlanID).Msg("publish seat update, delivering locally")
		b.deliver(u)
	}
}

// Run consumes the channel until ctx is done. It returns immediately when
// running in process.
func (b *SeatBus) Run(ctx context.Context) error {
	if b.client == nil {
		return nil
	}
	sub := b.client.Subscribe(ctx, SeatUpdatesChannel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", SeatUpdatesChannel, err)
	}

	log.Info().Str("channel", SeatUpdatesChannel).Msg("listening for seat updates")
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			u, err := decodeSeatUpdate(msg.Payload)
			if err != nil {
				log.Warn().Err(err).Msg("drop seat update")
				continue
			}
			b.deliver(u)
		}
	}
}

func decodeSeatUpdate(payload string) (models.SeatUpdate, error) {
	var u models.SeatUpdate
	if err := json.Unmarshal([]byte(payload), &u); err != nil {
		return u, fmt.Errorf("decode seat update: %w", err)
	}
	if u.PlanID == "" {
		return u, fmt.Errorf("seat update without plan id")
	}
	return u, nil
}
