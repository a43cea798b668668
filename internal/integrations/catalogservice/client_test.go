package catalogservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, nopLogger{})
}

func TestGetMenus_PreservesRequestOrder(t *testing.T) {
	// Каталог отдаёт услуги в своём порядке
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/menus", r.URL.Path)
		assert.Equal(t, "2,1", r.URL.Query().Get("ids"))

		_ = json.NewEncoder(w).Encode([]*Menu{
			{ID: 1, Name: "Cut", Price: 5000, DurationMinutes: 60, IsActive: true},
			{ID: 2, Name: "Color", Price: 8500, DurationMinutes: 90, IsActive: true},
		})
	})

	menus, err := client.GetMenus(context.Background(), []int64{2, 1})
	require.NoError(t, err)

	require.Len(t, menus, 2)
	assert.Equal(t, int64(2), menus[0].ID)
	assert.Equal(t, int64(1), menus[1].ID)
}

func TestGetMenus_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetMenus(context.Background(), []int64{99})
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestGetMenus_ShortResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]*Menu{
			{ID: 1, Name: "Cut", IsActive: true},
		})
	})

	_, err := client.GetMenus(context.Background(), []int64{1, 2})
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestGetMenus_WrongIDsInResponse(t *testing.T) {
	// Длина совпадает, но один из запрошенных ID отсутствует
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]*Menu{
			{ID: 1, Name: "Cut", IsActive: true},
			{ID: 3, Name: "Perm", IsActive: true},
		})
	})

	_, err := client.GetMenus(context.Background(), []int64{1, 2})
	assert.ErrorIs(t, err, ErrMenuNotFound)
}
