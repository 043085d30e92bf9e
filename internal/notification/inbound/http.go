package inbound

import (
	"context"

	"github.com/rahmatsubandi/veriauth/internal/notification/usecase"
	"github.com/rahmatsubandi/veriauth/internal/pkg/router"
)

type uc interface {
	ConsumeOtpIssued(ctx context.Context, in usecase.ConsumeOtpIssuedInput) error
	ConsumeAccountRegistered(ctx context.Context, in usecase.ConsumeAccountRegisteredInput) error
	ConsumePasswordChanged(ctx context.Context, in usecase.ConsumePasswordChangedInput) error
	ListDeliveries(ctx context.Context, in usecase.ListDeliveriesInput) (*usecase.ListDeliveriesOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Operational surface (need authenticated)
	r.GET("/api/v1/notification/deliveries", end.ListDeliveries)
}
