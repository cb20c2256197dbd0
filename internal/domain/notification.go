package domain

// Notification templates
const (
	TemplateNewRequest             = "new_request"
	TemplateRescheduleRequest      = "reschedule_request"
	TemplateApproved               = "approved"
	TemplateRejected               = "rejected"
	TemplatePendingTimeout         = "pending_timeout"
	TemplatePendingTimeoutProvider = "pending_timeout_provider"
	TemplateCancelledByProvider    = "cancelled_by_provider"
	TemplateCancelledByCustomer    = "cancelled_by_customer"
	TemplateReminder               = "reminder"
	TemplateProviderReminder       = "provider_reminder"
	TemplateSlotBlocked            = "slot_blocked"
	TemplateSlotUnblocked          = "slot_unblocked"
)

// Notification is an outbound message for a customer or the provider.
// Rendering the template into text is the notifier's concern.
type Notification struct {
	Recipient int64
	Lang      string
	Template  string
	Params    map[string]string
}
