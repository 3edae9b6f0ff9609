package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"room-service/internal/mocks"
)

func TestEmitPublishesEnvelope(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := NewAuditEmitter(publisher, "audit_log.rooms", "room-service", "test")

	publisher.On("Publish", mock.Anything, "audit_log.rooms", mock.MatchedBy(func(event any) bool {
		envelope, ok := event.(AuditEnvelope)
		return ok &&
			envelope.EventType == "audit_log" &&
			envelope.Service == "room-service" &&
			envelope.RoomCode == "AB12CD" &&
			envelope.Payload.Level == "INFO" &&
			envelope.Payload.Text == "room created"
	})).Return(nil).Once()

	emitter.Emit(context.Background(), "INFO", "room created", "req-1", "AB12CD")
	publisher.AssertExpectations(t)
}

func TestEmitNilEmitterIsNoop(t *testing.T) {
	var emitter *AuditEmitter
	emitter.Emit(context.Background(), "INFO", "ignored", "", "")
	assert.Nil(t, emitter)
}
