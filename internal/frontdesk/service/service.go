package service

import (
	"context"
	"fmt"
	"sort"

	"innkeep/internal/frontdesk/core"
	"innkeep/internal/frontdesk/flows"
	"innkeep/pkg/logger"
)

type FlowFunc func(ctx *core.FlowContext) error

var flowRegistry = map[string]FlowFunc{
	"search_available_rooms": flows.SearchAvailableRooms,
	"quote_stay":             flows.QuoteStay,
	"create_booking":         flows.CreateBooking,
	"find_booking":           flows.FindBooking,
	"cancel_booking":         flows.CancelBooking,
	"list_active_packages":   flows.ListActivePackages,
}

type FrontdeskService struct {
	clients *core.Clients
	log     *logger.Logger
}

func NewFrontdeskService(clients *core.Clients, log *logger.Logger) *FrontdeskService {
	return &FrontdeskService{
		clients: clients,
		log:     log,
	}
}

func (s *FrontdeskService) ExecuteFlow(ctx context.Context, flowName string, input map[string]any) (map[string]any, error) {
	flow, exists := flowRegistry[flowName]
	if !exists {
		return nil, fmt.Errorf("unknown flow: %s", flowName)
	}

	flowCtx := core.NewFlowContext(ctx, input, s.clients, s.log)
	if err := flow(flowCtx); err != nil {
		return nil, fmt.Errorf("flow execution failed: %w", err)
	}
	return flowCtx.Output, nil
}

func (s *FrontdeskService) GetAvailableFlows() []string {
	names := make([]string, 0, len(flowRegistry))
	for name := range flowRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
