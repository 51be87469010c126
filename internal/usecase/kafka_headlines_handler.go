package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ciphernom/rektcast/internal/domain/models"
	domrepo "github.com/ciphernom/rektcast/internal/domain/repository"
	pkgkafka "github.com/ciphernom/rektcast/pkg/kafka"
)

// KafkaHeadlinesHandler consumes news headline messages and stores them
// for sentiment analysis.
type KafkaHeadlinesHandler struct {
	topic   string
	store   domrepo.HeadlineStore
	metrics domrepo.Metrics
}

func NewKafkaHeadlinesHandler(topic string, store domrepo.HeadlineStore, metrics domrepo.Metrics) *KafkaHeadlinesHandler {
	return &KafkaHeadlinesHandler{topic: topic, store: store, metrics: metrics}
}

func (h *KafkaHeadlinesHandler) Topic() string { return h.topic }

// incoming message schema: {title, source, url, ts}
func (h *KafkaHeadlinesHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		Title  string `json:"title"`
		Source string `json:"source"`
		URL    string `json:"url"`
		TS     int64  `json:"ts"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if m.Title == "" {
		return nil // nothing to score
	}
	if m.TS > 1e11 { // ms
		m.TS = m.TS / 1000
	}

	err := h.store.Store(ctx, []models.Headline{{
		Title:     m.Title,
		Source:    m.Source,
		URL:       m.URL,
		Timestamp: time.Unix(m.TS, 0).UTC(),
	}})
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaHeadlinesHandler)(nil)
