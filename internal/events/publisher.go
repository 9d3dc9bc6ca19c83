package events

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"farmer-offers-service/internal/models"
)

// Event subjects published by this service.
const (
	SubjectEligibilityChecked = "offer.eligibility.checked"
	SubjectCatalogReloaded    = "offer.catalog.reloaded"
)

// Publisher emits offer events to NATS. All publishes are best effort: a
// failed or absent connection never affects a response.
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// EligibilityCheckedEvent is published after every evaluation.
type EligibilityCheckedEvent struct {
	EvaluationID           uuid.UUID `json:"evaluationId"`
	Eligible               bool      `json:"eligible"`
	LeftoverProfit         float64   `json:"leftoverProfit"`
	TotalPurchasedProfit   float64   `json:"totalPurchasedProfit"`
	TotalRequiredMinProfit float64   `json:"totalRequiredMinProfit"`
	TotalFreeCost          float64   `json:"totalFreeCost"`
	SuggestionCount        int       `json:"suggestionCount"`
	CheckedAt              time.Time `json:"checkedAt"`
}

// CatalogReloadedEvent is published after a successful catalog reload.
type CatalogReloadedEvent struct {
	Rows       int       `json:"rows"`
	ReloadedAt time.Time `json:"reloadedAt"`
}

// NewPublisher connects to NATS using the NATS_URL environment variable.
func NewPublisher(logger *logrus.Logger) (*Publisher, error) {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	conn, err := nats.Connect(natsURL,
		nats.Name("farmer-offers-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		conn:   conn,
		logger: logger.WithField("component", "events.publisher"),
	}, nil
}

// PublishEligibilityChecked publishes the outcome of an evaluation.
func (p *Publisher) PublishEligibilityChecked(evaluationID uuid.UUID, result models.EligibilityResult, suggestionCount int) {
	p.publish(SubjectEligibilityChecked, EligibilityCheckedEvent{
		EvaluationID:           evaluationID,
		Eligible:               result.Eligible,
		LeftoverProfit:         result.LeftoverProfit,
		TotalPurchasedProfit:   result.TotalPurchasedProfit,
		TotalRequiredMinProfit: result.TotalRequiredMinProfit,
		TotalFreeCost:          result.TotalFreeCost,
		SuggestionCount:        suggestionCount,
		CheckedAt:              time.Now().UTC(),
	})
}

// PublishCatalogReloaded publishes a catalog reload notification.
func (p *Publisher) PublishCatalogReloaded(rows int) {
	p.publish(SubjectCatalogReloaded, CatalogReloadedEvent{
		Rows:       rows,
		ReloadedAt: time.Now().UTC(),
	})
}

func (p *Publisher) publish(subject string, event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to marshal event")
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to publish event")
	}
}

// IsConnected returns true if connected to NATS.
func (p *Publisher) IsConnected() bool {
	return p.conn.IsConnected()
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
