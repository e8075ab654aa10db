package notifications

// Audience selects which listener family renders the email for a notification.
type Audience string

const (
	AudienceAdmin  Audience = "admin"
	AudienceUser   Audience = "user"
	AudienceClient Audience = "client"
)

// Event bus topics, one per audience.
const (
	TopicAdminCreated  = "admin.notification.created"
	TopicUserCreated   = "user.notification.created"
	TopicClientCreated = "client.notification.created"
)

// Topic returns the "notification created" topic for the audience,
// or an empty string for unknown audiences.
func (a Audience) Topic() string {
	switch a {
	case AudienceAdmin:
		return TopicAdminCreated
	case AudienceUser:
		return TopicUserCreated
	case AudienceClient:
		return TopicClientCreated
	}
	return ""
}
