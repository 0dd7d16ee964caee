package app

// MockEmailProvider is used for tests and local development.
type MockEmailProvider struct{}

func (m *MockEmailProvider) SendWelcome(to, displayName string) error { return nil }
