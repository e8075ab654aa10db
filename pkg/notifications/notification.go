package notifications

import (
	"time"
)

// Type is the notification category. The set is closed; template lookups
// treat anything else as unmapped.
type Type string

const (
	TypeInfo         Type = "INFO"
	TypeSuccess      Type = "SUCCESS"
	TypeWarning      Type = "WARNING"
	TypeError        Type = "ERROR"
	TypePayment      Type = "PAYMENT"
	TypeOrder        Type = "ORDER"
	TypeMessage      Type = "MESSAGE"
	TypeSystem       Type = "SYSTEM"
	TypeConsultation Type = "CONSULTATION"
)

// Types lists every known notification type in declaration order.
func Types() []Type {
	return []Type{
		TypeInfo, TypeSuccess, TypeWarning, TypeError, TypePayment,
		TypeOrder, TypeMessage, TypeSystem, TypeConsultation,
	}
}

// Valid reports whether t belongs to the known enumeration.
func (t Type) Valid() bool {
	switch t {
	case TypeInfo, TypeSuccess, TypeWarning, TypeError, TypePayment,
		TypeOrder, TypeMessage, TypeSystem, TypeConsultation:
		return true
	}
	return false
}

// Priority represents the notification priority level.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
)

// Notification is the domain record describing something that happened.
// Its lifecycle is independent of any email derived from it.
type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId,omitempty"` // empty for admin-only notifications
	Audience  Audience   `json:"audience,omitempty"`
	Type      Type       `json:"type"`
	Priority  Priority   `json:"priority"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	ActionURL string     `json:"actionUrl,omitempty"`
	Data      Payload    `json:"data,omitempty"`
	IsRead    bool       `json:"isRead"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`

	// RawData carries a payload that has not been decoded yet, typically
	// JSON text from a legacy producer. Manager.Send decodes it into Data.
	RawData any `json:"-"`
}

// MarkAsRead marks the notification as read with the current timestamp.
func (n *Notification) MarkAsRead() {
	n.IsRead = true
	now := time.Now()
	n.ReadAt = &now
}

// ResolveAudience returns the explicit audience, or derives one:
// notifications without a user go to admins, the rest to the user topic.
func (n Notification) ResolveAudience() Audience {
	if n.Audience != "" {
		return n.Audience
	}
	if n.UserID == "" {
		return AudienceAdmin
	}
	return AudienceUser
}
