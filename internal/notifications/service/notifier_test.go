package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"innkeep/pkg/contracts"
	"innkeep/pkg/dates"
	"innkeep/pkg/kafka"
	"innkeep/pkg/logger"
	"innkeep/pkg/money"
)

type capturingSender struct {
	recipients []string
	messages   []string
	err        error
}

func (s *capturingSender) Send(ctx context.Context, recipient, message string) error {
	if s.err != nil {
		return s.err
	}
	s.recipients = append(s.recipients, recipient)
	s.messages = append(s.messages, message)
	return nil
}

var _ Sender = (*capturingSender)(nil)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func testEvent() contracts.BookingEvent {
	return contracts.BookingEvent{
		BookingID:        "65ee00000000000000000001",
		RoomID:           "650000000000000000000010",
		GuestName:        "Dana Peretz",
		GuestPhone:       "+972501234567",
		CheckIn:          dates.Day(2026, 7, 10),
		CheckOut:         dates.Day(2026, 7, 14),
		TotalPrice:       money.FromUnits(400),
		ConfirmationCode: "ABCDEFGH23",
	}
}

func eventMessage(t *testing.T, eventType string, event contracts.BookingEvent) kafka.Message {
	t.Helper()
	return kafka.NewMessage().
		WithKey(event.RoomID).
		WithValue(event).
		WithEventType(eventType).
		WithSource("bookings").
		Build()
}

func TestHandleMessage_SendsConfirmation(t *testing.T) {
	sender := &capturingSender{}
	notifier := NewNotifier(sender, testLogger())

	msg := eventMessage(t, contracts.EventTypeBookingCreated, testEvent())
	if err := notifier.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}

	if len(sender.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.messages))
	}
	if sender.recipients[0] != "+972501234567" {
		t.Errorf("unexpected recipient %q", sender.recipients[0])
	}
	for _, want := range []string{"Dana Peretz", "4 nights", "400.00", "ABCDEFGH23"} {
		if !strings.Contains(sender.messages[0], want) {
			t.Errorf("message missing %q: %s", want, sender.messages[0])
		}
	}
}

func TestHandleMessage_SendsCancellation(t *testing.T) {
	sender := &capturingSender{}
	notifier := NewNotifier(sender, testLogger())

	msg := eventMessage(t, contracts.EventTypeBookingCancelled, testEvent())
	if err := notifier.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}

	if len(sender.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.messages))
	}
	if !strings.Contains(sender.messages[0], "cancelled") {
		t.Errorf("message does not mention cancellation: %s", sender.messages[0])
	}
}

func TestHandleMessage_SkipsGuestsWithoutPhone(t *testing.T) {
	sender := &capturingSender{}
	notifier := NewNotifier(sender, testLogger())

	event := testEvent()
	event.GuestPhone = ""
	msg := eventMessage(t, contracts.EventTypeBookingCreated, event)
	if err := notifier.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if len(sender.messages) != 0 {
		t.Fatalf("expected no messages, got %d", len(sender.messages))
	}
}

func TestHandleMessage_InvalidPayloadIsPermanent(t *testing.T) {
	notifier := NewNotifier(&capturingSender{}, testLogger())

	msg := kafka.NewMessage().
		WithValue("not a booking event").
		WithEventType(contracts.EventTypeBookingCreated).
		Build()

	err := notifier.HandleMessage(context.Background(), msg)
	var kerr *kafka.KafkaError
	if !errors.As(err, &kerr) || !kerr.IsPermanent() {
		t.Fatalf("expected permanent error, got %v", err)
	}
}

func TestHandleMessage_UnknownEventTypeIsPermanent(t *testing.T) {
	notifier := NewNotifier(&capturingSender{}, testLogger())

	msg := eventMessage(t, "booking.upgraded", testEvent())
	err := notifier.HandleMessage(context.Background(), msg)
	var kerr *kafka.KafkaError
	if !errors.As(err, &kerr) || !kerr.IsPermanent() {
		t.Fatalf("expected permanent error, got %v", err)
	}
}

func TestHandleMessage_SendFailureIsTransient(t *testing.T) {
	sender := &capturingSender{err: errors.New("gateway timeout")}
	notifier := NewNotifier(sender, testLogger())

	msg := eventMessage(t, contracts.EventTypeBookingCreated, testEvent())
	err := notifier.HandleMessage(context.Background(), msg)
	var kerr *kafka.KafkaError
	if !errors.As(err, &kerr) || kerr.IsPermanent() {
		t.Fatalf("expected transient error, got %v", err)
	}
}
