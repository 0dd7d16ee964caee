package email

// Provider sends transactional email. The server never blocks a request on
// delivery; callers fire-and-forget and log failures.
type Provider interface {
	SendWelcome(to, displayName string) error
}
