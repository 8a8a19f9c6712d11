package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client клиент для справочника пользователей (identity directory)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetUser получает пользователя по ID
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	endpoint := fmt.Sprintf("%s/internal/users/%s", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &user, nil
}

// GetEmailWithGracefulDegradation возвращает e-mail пользователя или NoEmail,
// если пользователя нет, у него нет e-mail или справочник недоступен.
// Админский список не должен падать из-за недоступности UserService
func (c *Client) GetEmailWithGracefulDegradation(ctx context.Context, userID string) string {
	user, err := c.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.log.Warn("User %s not found in directory", userID)
			return NoEmail
		}
		c.log.Error("UserService unavailable, applying graceful degradation for user=%s: %v", userID, err)
		return NoEmail
	}

	if user.Email == nil || *user.Email == "" {
		return NoEmail
	}
	return *user.Email
}
