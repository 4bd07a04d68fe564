package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Notification уведомление пользователю о событии бронирования
type Notification struct {
	UserID    int64  `json:"user_id"`
	BookingID int64  `json:"booking_id"`
	Event     string `json:"event"` // booking_confirmed | booking_cancelled | booking_rescheduled | booking_no_show
	Message   string `json:"message"`
}

// Client клиент сервиса уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет уведомление
func (c *Client) Send(ctx context.Context, n Notification) error {
	url := fmt.Sprintf("%s/api/v1/notifications", c.baseURL)

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: failed to encode notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}

// SendBestEffort отправляет уведомление, не проваливая основную операцию.
// Бронирование уже зафиксировано в БД: недоставленное уведомление — не повод
// возвращать пользователю ошибку, достаточно записи в лог.
func (c *Client) SendBestEffort(ctx context.Context, n Notification) {
	if err := c.Send(ctx, n); err != nil {
		c.log.Error("NotifyService unavailable, notification dropped: user_id=%d, booking_id=%d, event=%s, error=%v",
			n.UserID, n.BookingID, n.Event, err)
		return
	}
	c.log.Info("Notification sent: user_id=%d, booking_id=%d, event=%s", n.UserID, n.BookingID, n.Event)
}
