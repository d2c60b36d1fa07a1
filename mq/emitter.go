package mq

import (
	"context"
	"encoding/json"
	"log"

	"safeplate/rdx"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const channel = "recipe-events"

const (
	ActionIndex  = "index"
	ActionDelete = "delete"
)

// RecipeEvent is published after every successful write so interested
// consumers (currently cache invalidation) can react without the write path
// waiting on them.
type RecipeEvent struct {
	EventID  string `json:"event_id"`
	Action   string `json:"action"`
	RecipeID string `json:"recipe_id"`
}

type Emitter struct {
	conn *redis.Client
}

func NewEmitter(conn *redis.Client) *Emitter {
	return &Emitter{conn: conn}
}

// Emit publishes best-effort; a failed publish is logged, never surfaced —
// the write itself already succeeded.
func (e *Emitter) Emit(ctx context.Context, action, recipeID string) {
	event := RecipeEvent{
		EventID:  uuid.NewString(),
		Action:   action,
		RecipeID: recipeID,
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("mq: marshal event: %v", err)
		return
	}
	if err := e.conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("mq: publish %s %s: %v", action, recipeID, err)
	}
}

// StartInvalidationWorker consumes recipe events and flushes the suggestion
// cache. Runs until the context is cancelled.
func StartInvalidationWorker(ctx context.Context, conn *redis.Client, cache *rdx.Cache) {
	sub := conn.Subscribe(ctx, channel)
	defer sub.Close()
	ch := sub.Channel()

	log.Println("mq: invalidation worker listening")
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event RecipeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("mq: bad event payload: %v", err)
				continue
			}
			cache.FlushSuggestions(ctx)
		}
	}
}
