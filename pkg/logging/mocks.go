package logging

import (
	"github.com/stretchr/testify/mock"
)

// MockLogger is a mock implementation of the Logger interface
type MockLogger struct {
	mock.Mock
}

var _ Logger = (*MockLogger)(nil)

// SetupDefaultExpectations sets up common logger mock expectations that accept
// any arguments. Useful for tests that don't assert on specific logging calls.
func (m *MockLogger) SetupDefaultExpectations() {
	m.On("Debug", mock.Anything, mock.Anything).Maybe().Return()
	m.On("Info", mock.Anything, mock.Anything).Maybe().Return()
	m.On("Warn", mock.Anything, mock.Anything).Maybe().Return()
	m.On("Error", mock.Anything, mock.Anything).Maybe().Return()
	m.On("Fatal", mock.Anything, mock.Anything).Maybe().Return()

	m.On("Debugf", mock.Anything, mock.Anything).Maybe().Return()
	m.On("Infof", mock.Anything, mock.Anything).Maybe().Return()
	m.On("Warnf", mock.Anything, mock.Anything).Maybe().Return()
	m.On("Errorf", mock.Anything, mock.Anything).Maybe().Return()
	m.On("Fatalf", mock.Anything, mock.Anything).Maybe().Return()

	m.On("With", mock.Anything).Maybe().Return(m)
}

// Debug mocks the Debug method
func (m *MockLogger) Debug(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

// Info mocks the Info method
func (m *MockLogger) Info(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

// Warn mocks the Warn method
func (m *MockLogger) Warn(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

// Error mocks the Error method
func (m *MockLogger) Error(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

// Fatal mocks the Fatal method
func (m *MockLogger) Fatal(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

// Debugf mocks the Debugf method
func (m *MockLogger) Debugf(template string, args ...interface{}) {
	m.Called(template, args)
}

// Infof mocks the Infof method
func (m *MockLogger) Infof(template string, args ...interface{}) {
	m.Called(template, args)
}

// Warnf mocks the Warnf method
func (m *MockLogger) Warnf(template string, args ...interface{}) {
	m.Called(template, args)
}

// Errorf mocks the Errorf method
func (m *MockLogger) Errorf(template string, args ...interface{}) {
	m.Called(template, args)
}

// Fatalf mocks the Fatalf method
func (m *MockLogger) Fatalf(template string, args ...interface{}) {
	m.Called(template, args)
}

// With mocks the With method
func (m *MockLogger) With(keysAndValues ...interface{}) Logger {
	args := m.Called(keysAndValues)
	if args.Get(0) == nil {
		return m
	}
	return args.Get(0).(Logger)
}
