package identityservice

import (
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

// Profile профиль пользователя из IdentityService
type Profile struct {
	UserID        int64  `json:"user_id"`
	Phone         string `json:"phone"`
	PhoneVerified bool   `json:"phone_verified"`
}

// Client клиент IdentityService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента IdentityService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetProfile получает профиль пользователя
func (c *Client) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	url := fmt.Sprintf("%s/internal/users/%d/profile", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &profile, nil
}

// IsPhoneVerified проверяет, подтверждён ли телефон пользователя.
// При недоступности IdentityService возвращает ErrServiceDegraded:
// пропускать непроверенного пользователя к оплате нельзя.
func (c *Client) IsPhoneVerified(ctx context.Context, userID int64) (bool, error) {
	profile, err := c.GetProfile(ctx, userID)
	if err != nil {
		if err == ErrUserNotFound {
			return false, err
		}
		c.log.Error("IdentityService unavailable: user_id=%d, error=%v", userID, err)
		return false, fmt.Errorf("%w: user_id=%d, error=%v", ErrServiceDegraded, userID, err)
	}
	return profile.PhoneVerified, nil
}
