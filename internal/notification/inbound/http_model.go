package inbound

type DeliveryItemResponse struct {
	ID        int64  `json:"id"`
	OtpID     int64  `json:"otp_id"`
	Channel   string `json:"channel"`
	Recipient string `json:"recipient"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
	CreatedAt string `json:"created_at"`
}

type ListDeliveriesResponse struct {
	Items []DeliveryItemResponse `json:"items"`
}
