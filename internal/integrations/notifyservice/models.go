package notifyservice

// NotificationKind тип уведомления
type NotificationKind string

const (
	KindBookingConfirmed NotificationKind = "booking_confirmed"
	KindBookingCancelled NotificationKind = "booking_cancelled"
	KindSlotFreed        NotificationKind = "slot_freed"
)

// Notification запрос на отправку уведомления
type Notification struct {
	Kind NotificationKind `json:"kind"`

	// Получатель: либо ID клиента, либо телефон гостя
	ClientID   *int64  `json:"client_id,omitempty"`
	GuestPhone *string `json:"guest_phone,omitempty"`

	// Payload произвольные данные для шаблона уведомления
	Payload map[string]string `json:"payload"`
}
