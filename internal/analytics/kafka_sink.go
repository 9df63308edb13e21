package analytics

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	skafka "github.com/saidozsoy1/sports-betting-app/internal/shared/kafka"
	"github.com/saidozsoy1/sports-betting-app/pkg/contracts/events"
)

// envelope é a mensagem publicada no tópico de analytics
type envelope struct {
	Event    string `json:"event"`
	TsUnixMs int64  `json:"ts_unix_ms"`
	Params   any    `json:"params"`
}

// KafkaSink publica os eventos de analytics num tópico Kafka.
// Publicação com timeout curto; erro só gera warn no log.
type KafkaSink struct {
	Log     *zap.Logger
	Writer  *skafka.Writer
	Timeout time.Duration
}

func NewKafkaSink(log *zap.Logger, w *skafka.Writer) *KafkaSink {
	return &KafkaSink{Log: log, Writer: w, Timeout: 500 * time.Millisecond}
}

func (s *KafkaSink) MatchDetailViewed(ev events.MatchDetail) {
	s.publish(events.MatchDetailViewed, ev)
}

func (s *KafkaSink) AddToCart(item events.CartItem) {
	s.publish(events.AddToCart, item)
}

func (s *KafkaSink) RemoveFromCart(item events.CartItem) {
	s.publish(events.RemoveFromCart, item)
}

func (s *KafkaSink) publish(name string, params any) {
	b, _ := json.Marshal(envelope{
		Event:    name,
		TsUnixMs: time.Now().UnixMilli(),
		Params:   params,
	})

	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	if err := skafka.WriteJSON(ctx, s.Writer, name, b); err != nil {
		s.Log.Warn("analytics publish failed", zap.String("event", name), zap.Error(err))
	}
}
