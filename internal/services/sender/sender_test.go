package services_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/laundry-service/internal/lib/smtp"
	"github.com/magabrotheeeer/laundry-service/internal/models"
	services "github.com/magabrotheeeer/laundry-service/internal/services/sender"
)

// Мок для smtp.Client
type SMTPClientMock struct {
	mock.Mock
	body bytes.Buffer
}

func (m *SMTPClientMock) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *SMTPClientMock) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *SMTPClientMock) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *SMTPClientMock) Quit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *SMTPClientMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

type writeCloserMock struct {
	buf *bytes.Buffer
}

func (w *writeCloserMock) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *writeCloserMock) Close() error {
	return nil
}

// Мок для smtp.TransportInterface
type TransportMock struct {
	mock.Mock
}

func (m *TransportMock) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *TransportMock) GetFrom() string {
	args := m.Called()
	return args.String(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupHappyClient(transport *TransportMock) *bytes.Buffer {
	client := new(SMTPClientMock)
	writer := &writeCloserMock{buf: &client.body}

	transport.On("Connect").Return(client, nil).Once()
	transport.On("GetFrom").Return("notify@freshfold.local").Once()
	client.On("Mail", "notify@freshfold.local").Return(nil).Once()
	client.On("Rcpt", mock.Anything).Return(nil).Once()
	client.On("Data").Return(writer, nil).Once()
	client.On("Quit").Return(nil).Once()

	return &client.body
}

func TestSenderService_HandleWelcome(t *testing.T) {
	t.Run("успешная отправка приветственного письма", func(t *testing.T) {
		transport := new(TransportMock)
		body := setupHappyClient(transport)
		svc := services.NewSenderService(transport, newTestLogger())

		msg, err := json.Marshal(models.WelcomeMessage{Email: "alice@example.com", Name: "Alice"})
		require.NoError(t, err)

		err = svc.HandleWelcome(msg)
		require.NoError(t, err)

		assert.Contains(t, body.String(), "To: alice@example.com")
		assert.Contains(t, body.String(), "Welcome, Alice!")
		transport.AssertExpectations(t)
	})

	t.Run("некорректный JSON возвращает ошибку", func(t *testing.T) {
		transport := new(TransportMock)
		svc := services.NewSenderService(transport, newTestLogger())

		err := svc.HandleWelcome([]byte("not a json"))
		assert.Error(t, err)
		transport.AssertNotCalled(t, "Connect")
	})

	t.Run("сбой подключения возвращает ошибку для повторной доставки", func(t *testing.T) {
		transport := new(TransportMock)
		transport.On("Connect").Return(nil, errors.New("dial error")).Once()
		svc := services.NewSenderService(transport, newTestLogger())

		msg, err := json.Marshal(models.WelcomeMessage{Email: "alice@example.com", Name: "Alice"})
		require.NoError(t, err)

		err = svc.HandleWelcome(msg)
		assert.Error(t, err)
	})
}

func TestSenderService_HandleOrderStatus(t *testing.T) {
	transport := new(TransportMock)
	body := setupHappyClient(transport)
	svc := services.NewSenderService(transport, newTestLogger())

	msg, err := json.Marshal(models.OrderStatusMessage{
		Email:   "bob@example.com",
		Name:    "Bob",
		OrderID: 42,
		Status:  models.StatusOutForDelivery,
	})
	require.NoError(t, err)

	err = svc.HandleOrderStatus(msg)
	require.NoError(t, err)

	assert.Contains(t, body.String(), "Subject: Order #42 update")
	assert.Contains(t, body.String(), "out for delivery")
	transport.AssertExpectations(t)
}

func TestSenderService_HandleTest(t *testing.T) {
	transport := new(TransportMock)
	body := setupHappyClient(transport)
	svc := services.NewSenderService(transport, newTestLogger())

	msg, err := json.Marshal(models.TestMessage{Email: "dev@example.com"})
	require.NoError(t, err)

	err = svc.HandleTest(msg)
	require.NoError(t, err)

	assert.Contains(t, body.String(), "To: dev@example.com")
	assert.Contains(t, body.String(), "Email delivery works.")
	transport.AssertExpectations(t)
}
