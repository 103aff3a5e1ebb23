package dto

import "github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/services"

// NotificationRequest is the body of POST /send-notification.
type NotificationRequest struct {
	To       string         `json:"to"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

// ToServiceRequest maps the body onto the service input.
func (r *NotificationRequest) ToServiceRequest() *services.NotificationRequest {
	if r == nil {
		return nil
	}
	return &services.NotificationRequest{
		To:       r.To,
		Template: r.Template,
		Data:     r.Data,
	}
}
