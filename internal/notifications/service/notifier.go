package service

import (
	"context"
	"fmt"

	"innkeep/pkg/contracts"
	"innkeep/pkg/dates"
	"innkeep/pkg/kafka"
	"innkeep/pkg/logger"
)

// Sender delivers a rendered guest message. The default implementation only
// logs; SMS/email transports plug in behind this interface.
type Sender interface {
	Send(ctx context.Context, recipient, message string) error
}

type LogSender struct {
	log *logger.Logger
}

func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, recipient, message string) error {
	s.log.Info("Guest notification sent",
		"recipient", recipient,
		"message", message,
	)
	return nil
}

// Notifier consumes booking lifecycle events and sends the guest-facing
// confirmation and cancellation messages.
type Notifier struct {
	sender Sender
	log    *logger.Logger
}

func NewNotifier(sender Sender, log *logger.Logger) *Notifier {
	return &Notifier{
		sender: sender,
		log:    log,
	}
}

// HandleMessage is the kafka consumer entrypoint. Unknown event types are
// permanent failures: redelivery cannot fix a payload we do not understand.
func (n *Notifier) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var event contracts.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.Permanent("invalid booking event payload", err)
	}

	switch msg.GetEventType() {
	case contracts.EventTypeBookingCreated:
		return n.notifyCreated(ctx, event)
	case contracts.EventTypeBookingCancelled:
		return n.notifyCancelled(ctx, event)
	default:
		return kafka.Permanent(fmt.Sprintf("unknown event type %q", msg.GetEventType()), nil)
	}
}

func (n *Notifier) notifyCreated(ctx context.Context, event contracts.BookingEvent) error {
	if event.GuestPhone == "" {
		n.log.Debug("Skipping confirmation message, guest left no phone",
			"booking_id", event.BookingID,
		)
		return nil
	}

	message := fmt.Sprintf(
		"Hi %s, your stay is confirmed for %s to %s (%d nights). Total: %s. Confirmation code: %s.",
		event.GuestName,
		event.CheckIn.Format("Jan 2, 2006"),
		event.CheckOut.Format("Jan 2, 2006"),
		dates.Nights(event.CheckIn, event.CheckOut),
		event.TotalPrice,
		event.ConfirmationCode,
	)

	if err := n.sender.Send(ctx, event.GuestPhone, message); err != nil {
		return kafka.Transient("failed to send confirmation message", err)
	}
	return nil
}

func (n *Notifier) notifyCancelled(ctx context.Context, event contracts.BookingEvent) error {
	if event.GuestPhone == "" {
		return nil
	}

	message := fmt.Sprintf(
		"Hi %s, your booking %s has been cancelled. The dates %s to %s are released.",
		event.GuestName,
		event.ConfirmationCode,
		event.CheckIn.Format("Jan 2, 2006"),
		event.CheckOut.Format("Jan 2, 2006"),
	)

	if err := n.sender.Send(ctx, event.GuestPhone, message); err != nil {
		return kafka.Transient("failed to send cancellation message", err)
	}
	return nil
}
