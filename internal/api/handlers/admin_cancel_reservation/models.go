package admin_cancel_reservation

// AdminCancelRequest HTTP request model
type AdminCancelRequest struct {
	Reason string `json:"reason" validate:"notblank,max=200"`
}
