package inbound

import (
	"github.com/rahmatsubandi/veriauth/internal/notification/usecase"
	"github.com/rahmatsubandi/veriauth/internal/pkg/router"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes the operational HTTP surface of the delivery log.
type HTTPEndpoint struct {
	uc uc
}

// ListDeliveries returns recent delivery attempts for a phone number.
// @Summary List OTP deliveries
// @Description Returns recent delivery attempts for a number, newest first. Recipients are masked.
// @Tags Notification
// @Produce json
// @Param number query string true "Phone number"
// @Param limit query int false "Max rows (default 20)"
// @Success 200 {object} router.successResponse{data=ListDeliveriesResponse} "Delivery attempts"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notification/deliveries [get]
func (h *HTTPEndpoint) ListDeliveries(r *router.Request) (any, error) {
	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ListDeliveries(r.Context(), usecase.ListDeliveriesInput{
		Number: r.GetQuery("number"),
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	return ListDeliveriesResponse{
		Items: lo.Map(resp.Items, func(it usecase.DeliveryItem, _ int) DeliveryItemResponse {
			return DeliveryItemResponse{
				ID:        it.ID,
				OtpID:     it.OtpID,
				Channel:   it.Channel,
				Recipient: it.Recipient,
				Status:    it.Status,
				Reason:    it.Reason,
				CreatedAt: it.CreatedAt.Format("2006-01-02 15:04:05"),
			}
		}),
	}, nil
}
