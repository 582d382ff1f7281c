package core

import (
	"context"
	"fmt"
	"time"

	"innkeep/pkg/client"
	"innkeep/pkg/config"
	"innkeep/pkg/logger"
)

// Clients bundles the downstream service clients a flow may call.
type Clients struct {
	Rooms        *client.RoomsClient
	Bookings     *client.BookingsClient
	Packages     *client.PackagesClient
	PricePeriods *client.PricePeriodsClient
}

func NewClients(cfg *config.Config) *Clients {
	return &Clients{
		Rooms:        client.NewRoomsClient(cfg.RoomsServiceURL),
		Bookings:     client.NewBookingsClient(cfg.BookingsServiceURL),
		Packages:     client.NewPackagesClient(cfg.PackagesServiceURL),
		PricePeriods: client.NewPricePeriodsClient(cfg.PricePeriodsServiceURL),
	}
}

// FlowContext carries a flow invocation: raw caller input, scratch state
// shared between steps, and the output returned to the caller.
type FlowContext struct {
	Ctx     context.Context
	Input   map[string]any
	Process map[string]any
	Output  map[string]any
	Clients *Clients
	Log     *logger.Logger
}

func NewFlowContext(ctx context.Context, input map[string]any, clients *Clients, log *logger.Logger) *FlowContext {
	return &FlowContext{
		Ctx:     ctx,
		Input:   input,
		Process: make(map[string]any),
		Output:  make(map[string]any),
		Clients: clients,
		Log:     log,
	}
}

func MissingParamErr(paramName string) error {
	return fmt.Errorf("required param [%v] is missing", paramName)
}

// ExtractString returns the input value for key, or "" when absent or not
// a string.
func (c *FlowContext) ExtractString(key string) string {
	raw, ok := c.Input[key]
	if !ok {
		return ""
	}
	s, _ := raw.(string)
	return s
}

func (c *FlowContext) RequireString(key string) (string, error) {
	s := c.ExtractString(key)
	if s == "" {
		return "", MissingParamErr(key)
	}
	return s, nil
}

// RequireDate parses a required YYYY-MM-DD input value.
func (c *FlowContext) RequireDate(key string) (time.Time, error) {
	s, err := c.RequireString(key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("param [%v] must be a YYYY-MM-DD date: %w", key, err)
	}
	return t, nil
}

// ExtractInt reads an optional integer input. JSON numbers decode as
// float64, so both forms are accepted.
func (c *FlowContext) ExtractInt(key string, fallback int) int {
	raw, ok := c.Input[key]
	if !ok {
		return fallback
	}
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}
