package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с каталогом меню
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetMenus получает услуги по списку ID.
// Если хотя бы один ID неизвестен, каталог отвечает 404 и клиент
// возвращает ErrMenuNotFound.
func (c *Client) GetMenus(ctx context.Context, menuIDs []int64) ([]*Menu, error) {
	ids := make([]string, len(menuIDs))
	for i, id := range menuIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	url := fmt.Sprintf("%s/internal/menus?ids=%s", c.baseURL, strings.Join(ids, ","))

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
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid menu ids format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrMenuNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var menus []*Menu
	if err := json.NewDecoder(resp.Body).Decode(&menus); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	// Каталог может молча опустить часть запрошенных ID
	if len(menus) != len(menuIDs) {
		c.log.Warn("Catalog returned %d menus for %d requested ids", len(menus), len(menuIDs))
		return nil, ErrMenuNotFound
	}

	// Порядок ответа каталога не гарантирован, возвращаем в порядке запроса
	byID := make(map[int64]*Menu, len(menus))
	for _, menu := range menus {
		byID[menu.ID] = menu
	}

	ordered := make([]*Menu, 0, len(menuIDs))
	for _, id := range menuIDs {
		menu, ok := byID[id]
		if !ok {
			c.log.Warn("Catalog response is missing menu id=%d", id)
			return nil, ErrMenuNotFound
		}
		ordered = append(ordered, menu)
	}

	return ordered, nil
}
