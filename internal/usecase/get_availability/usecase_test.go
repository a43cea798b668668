package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hikari-salon/reservation-service/internal/domain"
	staffRepo "github.com/hikari-salon/reservation-service/internal/infra/storage/staff"
	"github.com/hikari-salon/reservation-service/internal/integrations/catalogservice"
	"github.com/hikari-salon/reservation-service/internal/integrations/settingsservice"
	"github.com/hikari-salon/reservation-service/pkg/types"
)

// --- Моки ---

type mockReservationRepo struct {
	reservations []*domain.Reservation
}

func (m *mockReservationRepo) GetByFilter(_ context.Context, _ domain.ReservationsFilter) ([]*domain.Reservation, error) {
	return m.reservations, nil
}

type mockStaffRepo struct {
	staff     map[int64]*domain.Staff
	active    []*domain.Staff
	schedules map[int64]domain.StaffSchedule
}

func (m *mockStaffRepo) GetActive(_ context.Context) ([]*domain.Staff, error) {
	return m.active, nil
}

func (m *mockStaffRepo) GetByID(_ context.Context, id int64) (*domain.Staff, error) {
	member, ok := m.staff[id]
	if !ok {
		return nil, staffRepo.ErrStaffNotFound
	}
	return member, nil
}

func (m *mockStaffRepo) GetSchedulesForDate(_ context.Context, staffIDs []int64, _ time.Time) (map[int64]domain.StaffSchedule, error) {
	result := make(map[int64]domain.StaffSchedule, len(staffIDs))
	for _, id := range staffIDs {
		result[id] = m.schedules[id]
	}
	return result, nil
}

type mockCalendarRepo struct {
	calendar domain.DayCalendar
}

func (m *mockCalendarRepo) GetDayCalendar(_ context.Context, _ time.Time) (domain.DayCalendar, error) {
	return m.calendar, nil
}

type mockCatalogClient struct {
	menus map[int64]*catalogservice.Menu
}

func (m *mockCatalogClient) GetMenus(_ context.Context, menuIDs []int64) ([]*catalogservice.Menu, error) {
	result := make([]*catalogservice.Menu, 0, len(menuIDs))
	for _, id := range menuIDs {
		menu, ok := m.menus[id]
		if !ok {
			return nil, catalogservice.ErrMenuNotFound
		}
		result = append(result, menu)
	}
	return result, nil
}

type mockSettingsClient struct {
	settings *settingsservice.Settings
}

func (m *mockSettingsClient) GetSettings(_ context.Context) (*settingsservice.Settings, error) {
	return m.settings, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64   { return &v }

// --- Фикстуры ---

// 2026-09-15 — вторник
var (
	testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
)

func defaultSettings() *settingsservice.Settings {
	tuesday := settingsservice.DayHours{
		IsOpen:      true,
		Open:        strPtr("10:00"),
		Close:       strPtr("18:00"),
		LastBooking: strPtr("17:00"),
	}
	return &settingsservice.Settings{
		ClosedDays: []int{1}, // понедельник
		BusinessHours: settingsservice.WeeklyHours{
			Tuesday: tuesday,
		},
		SlotStepMinutes:    30,
		AdvanceBookingDays: 60,
		MinNoticeMinutes:   60,
	}
}

func defaultMenus() map[int64]*catalogservice.Menu {
	return map[int64]*catalogservice.Menu{
		1: {ID: 1, Name: "Cut", Price: 5000, DurationMinutes: 60, Category: "cut", IsActive: true},
		2: {ID: 2, Name: "Color", Price: 8500, DurationMinutes: 90, Category: "color", IsActive: true},
	}
}

func defaultStaff() *mockStaffRepo {
	aiko := &domain.Staff{ID: 1, Name: "Aiko", DisplayOrder: 1, IsActive: true, Capability: domain.CapabilityAll()}
	rin := &domain.Staff{ID: 2, Name: "Rin", DisplayOrder: 2, IsActive: true, Capability: domain.CapabilityOf([]int64{1})}

	return &mockStaffRepo{
		staff:  map[int64]*domain.Staff{1: aiko, 2: rin},
		active: []*domain.Staff{aiko, rin},
		schedules: map[int64]domain.StaffSchedule{
			1: {Weekly: []domain.WeeklySchedule{
				{StaffID: 1, Weekday: time.Tuesday, StartTime: "10:00", EndTime: "18:00", IsActive: true},
			}},
			2: {Weekly: []domain.WeeklySchedule{
				{StaffID: 2, Weekday: time.Tuesday, StartTime: "12:00", EndTime: "18:00", IsActive: true},
			}},
		},
	}
}

func newTestUseCase(
	reservations *mockReservationRepo,
	staff *mockStaffRepo,
	calendar *mockCalendarRepo,
	catalog *mockCatalogClient,
	settings *mockSettingsClient,
) *UseCase {
	uc := NewUseCase(reservations, staff, calendar, catalog, settings, nil, nopLogger{})
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

// --- Тесты ---

func TestExecute_OpenDayGrid(t *testing.T) {
	uc := newTestUseCase(
		&mockReservationRepo{},
		defaultStaff(),
		&mockCalendarRepo{},
		&mockCatalogClient{menus: defaultMenus()},
		&mockSettingsClient{settings: defaultSettings()},
	)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuIDs: []int64{1}})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-15", resp.Date)
	assert.Equal(t, "Tuesday", resp.DayOfWeek)
	assert.False(t, resp.IsClosed)
	assert.Equal(t, 60, resp.TotalDurationMinutes)
	assert.Equal(t, int64(5000), resp.TotalPrice)

	// Сетка 10:00-17:30 шагом 30, слоты после lastBooking 17:00 отброшены
	require.Len(t, resp.Slots, 15)
	assert.Equal(t, "10:00", resp.Slots[0].Time.String())
	assert.Equal(t, "17:00", resp.Slots[14].Time.String())

	// Свободный день: все слоты доступны, приоритет у Aiko
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available, "slot %s", slot.Time)
		require.NotNil(t, slot.StaffID, "slot %s", slot.Time)
		assert.Equal(t, int64(1), *slot.StaffID, "slot %s", slot.Time)
	}
}

func TestExecute_ConflictFallsBackToNextCandidate(t *testing.T) {
	// У Aiko подтверждённый визит 14:00-15:00, Rin свободна с 12:00
	reservations := &mockReservationRepo{reservations: []*domain.Reservation{
		{ID: 10, StaffID: 1, StartTime: "14:00", EndTime: "15:00", Status: domain.StatusConfirmed},
	}}

	uc := newTestUseCase(
		reservations,
		defaultStaff(),
		&mockCalendarRepo{},
		&mockCatalogClient{menus: defaultMenus()},
		&mockSettingsClient{settings: defaultSettings()},
	)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuIDs: []int64{1}})
	require.NoError(t, err)

	byTime := make(map[string]Slot)
	for _, slot := range resp.Slots {
		byTime[slot.Time.String()] = slot
	}

	// Пересекающиеся слоты уходят к Rin
	for _, at := range []string{"13:30", "14:00", "14:30"} {
		slot := byTime[at]
		assert.True(t, slot.Available, "slot %s", at)
		require.NotNil(t, slot.StaffID, "slot %s", at)
		assert.Equal(t, int64(2), *slot.StaffID, "slot %s", at)
	}

	// Встык до и после визита — снова Aiko
	for _, at := range []string{"13:00", "15:00"} {
		slot := byTime[at]
		assert.True(t, slot.Available, "slot %s", at)
		require.NotNil(t, slot.StaffID, "slot %s", at)
		assert.Equal(t, int64(1), *slot.StaffID, "slot %s", at)
	}
}

func TestExecute_CancelledReservationDoesNotBlock(t *testing.T) {
	reservations := &mockReservationRepo{reservations: []*domain.Reservation{
		{ID: 10, StaffID: 1, StartTime: "14:00", EndTime: "15:00", Status: domain.StatusCancelled},
	}}

	uc := newTestUseCase(
		reservations,
		defaultStaff(),
		&mockCalendarRepo{},
		&mockCatalogClient{menus: defaultMenus()},
		&mockSettingsClient{settings: defaultSettings()},
	)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuIDs: []int64{1}})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		require.NotNil(t, slot.StaffID)
		assert.Equal(t, int64(1), *slot.StaffID)
	}
}

func TestExecute_ClosedWeekday(t *testing.T) {
	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&mockReservationRepo{},
		defaultStaff(),
		&mockCalendarRepo{},
		&mockCatalogClient{menus: defaultMenus()},
		&mockSettingsClient{settings: defaultSettings()},
	)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, MenuIDs: []int64{1}})
	require.NoError(t, err)

	assert.True(t, resp.IsClosed)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SpecialOpenDayOverridesClosedWeekday(t *testing.T) {
	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	staff := defaultStaff()
	staff.schedules[1] = domain.StaffSchedule{Weekly: []domain.WeeklySchedule{
		{StaffID: 1, Weekday: time.Monday, StartTime: "09:00", EndTime: "18:00", IsActive: true},
	}}
	staff.schedules[2] = domain.StaffSchedule{}

	calendar := &mockCalendarRepo{calendar: domain.DayCalendar{
		SpecialOpenDay: &domain.SpecialOpenDay{Date: monday, StartTime: "11:00", EndTime: "15:00"},
	}}

	uc := newTestUseCase(
		&mockReservationRepo{},
		staff,
		calendar,
		&mockCatalogClient{menus: defaultMenus()},
		&mockSettingsClient{settings: defaultSettings()},
	)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, MenuIDs: []int64{1}})
	require.NoError(t, err)

	assert.False(t, resp.IsClosed)

	// Часы особого дня заменяют недельные: сетка 11:00-14:30,
	// lastBooking недельного графика не действует
	require.Len(t, resp.Slots, 8)
	assert.Equal(t, "11:00", resp.Slots[0].Time.String())
	assert.Equal(t, "14:30", resp.Slots[7].Time.String())

	// Последний слот не помещается до закрытия 15:00
	assert.False(t, resp.Slots[7].Available)
	assert.True(t, resp.Slots[6].Available)
}

func TestExecute_HolidayBlocksWindow(t *testing.T) {
	calendar := &mockCalendarRepo{calendar: domain.DayCalendar{
		Holidays: []domain.Holiday{
			{Name: "Санобработка", StartTime: "12:00", EndTime: "15:00"},
		},
	}}

	uc := newTestUseCase(
		&mockReservationRepo{},
		defaultStaff(),
		calendar,
		&mockCatalogClient{menus: defaultMenus()},
		&mockSettingsClient{settings: defaultSettings()},
	)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuIDs: []int64{1}})
	require.NoError(t, err)

	byTime := make(map[string]Slot)
	for _, slot := range resp.Slots {
		byTime[slot.Time.String()] = slot
	}

	// Часовой визит, начавшийся в 11:30, пересекает блок 12:00-15:00
	for _, at := range []string{"11:30", "12:00", "13:00", "14:30"} {
		assert.False(t, byTime[at].Available, "slot %s", at)
	}
	assert.True(t, byTime["11:00"].Available) // встык до блока
	assert.True(t, byTime["15:00"].Available) // встык после блока
}

func TestExecute_MinNoticeOnSameDay(t *testing.T) {
	uc := newTestUseCase(
		&mockReservationRepo{},
		defaultStaff(),
		&mockCalendarRepo{},
		&mockCatalogClient{menus: defaultMenus()},
		&mockSettingsClient{settings: defaultSettings()},
	)
	// Запрос на сегодня в 09:30, минимальное уведомление 60 минут
	uc.timeProvider = fixedTime{now: time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuIDs: []int64{1}})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "10:30", resp.Slots[0].Time.String())
}

func TestExecute_NoticeWindowPassesMidnight(t *testing.T) {
	uc := newTestUseCase(
		&mockReservationRepo{},
		defaultStaff(),
		&mockCalendarRepo{},
		&mockCatalogClient{menus: defaultMenus()},
		&mockSettingsClient{settings: defaultSettings()},
	)
	// Запрос на сегодня в 23:30, уведомление 60 минут выходит за полночь
	uc.timeProvider = fixedTime{now: time.Date(2026, 9, 15, 23, 30, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuIDs: []int64{1}})
	require.NoError(t, err)

	assert.False(t, resp.IsClosed)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PerMenuLastBookingTightensCutoff(t *testing.T) {
	menus := defaultMenus()
	menus[2].LastBookingTime = strPtr("15:00")

	uc := newTestUseCase(
		&mockReservationRepo{},
		defaultStaff(),
		&mockCalendarRepo{},
		&mockCatalogClient{menus: menus},
		&mockSettingsClient{settings: defaultSettings()},
	)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuIDs: []int64{1, 2}})
	require.NoError(t, err)

	assert.Equal(t, 150, resp.TotalDurationMinutes)
	assert.Equal(t, int64(13500), resp.TotalPrice)

	// Ограничение услуги 15:00 жёстче салонного 17:00
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "15:00", resp.Slots[len(resp.Slots)-1].Time.String())
}

func TestExecute_ExplicitStaff(t *testing.T) {
	t.Run("unknown staff", func(t *testing.T) {
		uc := newTestUseCase(
			&mockReservationRepo{},
			defaultStaff(),
			&mockCalendarRepo{},
			&mockCatalogClient{menus: defaultMenus()},
			&mockSettingsClient{settings: defaultSettings()},
		)

		_, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuIDs: []int64{1}, StaffID: i64Ptr(99)})
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("inactive staff", func(t *testing.T) {
		staff := defaultStaff()
		staff.staff[3] = &domain.Staff{ID: 3, Name: "Yui", IsActive: false, Capability: domain.CapabilityAll()}

		uc := newTestUseCase(
			&mockReservationRepo{},
			staff,
			&mockCalendarRepo{},
			&mockCatalogClient{menus: defaultMenus()},
			&mockSettingsClient{settings: defaultSettings()},
		)

		_, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuIDs: []int64{1}, StaffID: i64Ptr(3)})
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("unqualified staff makes all slots unavailable", func(t *testing.T) {
		uc := newTestUseCase(
			&mockReservationRepo{},
			defaultStaff(),
			&mockCalendarRepo{},
			&mockCatalogClient{menus: defaultMenus()},
			&mockSettingsClient{settings: defaultSettings()},
		)

		// Rin умеет только меню 1
		resp, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuIDs: []int64{1, 2}, StaffID: i64Ptr(2)})
		require.NoError(t, err)

		require.NotEmpty(t, resp.Slots)
		for _, slot := range resp.Slots {
			assert.False(t, slot.Available, "slot %s", slot.Time)
		}
	})

	t.Run("qualified staff only", func(t *testing.T) {
		uc := newTestUseCase(
			&mockReservationRepo{},
			defaultStaff(),
			&mockCalendarRepo{},
			&mockCatalogClient{menus: defaultMenus()},
			&mockSettingsClient{settings: defaultSettings()},
		)

		// Смена Rin начинается в 12:00
		resp, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuIDs: []int64{1}, StaffID: i64Ptr(2)})
		require.NoError(t, err)

		byTime := make(map[string]Slot)
		for _, slot := range resp.Slots {
			byTime[slot.Time.String()] = slot
		}

		assert.False(t, byTime["10:00"].Available)
		assert.False(t, byTime["11:30"].Available)
		assert.True(t, byTime["12:00"].Available)
		assert.Equal(t, int64(2), *byTime["12:00"].StaffID)
	})
}

func TestExecute_DateValidation(t *testing.T) {
	uc := newTestUseCase(
		&mockReservationRepo{},
		defaultStaff(),
		&mockCalendarRepo{},
		&mockCatalogClient{menus: defaultMenus()},
		&mockSettingsClient{settings: defaultSettings()},
	)

	t.Run("past date", func(t *testing.T) {
		past := testNow.AddDate(0, 0, -1)
		_, err := uc.Execute(context.Background(), &Request{Date: past, MenuIDs: []int64{1}})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("too far in future", func(t *testing.T) {
		far := testNow.AddDate(0, 0, 61)
		_, err := uc.Execute(context.Background(), &Request{Date: far, MenuIDs: []int64{1}})
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})
}

func TestExecute_InputValidation(t *testing.T) {
	uc := newTestUseCase(
		&mockReservationRepo{},
		defaultStaff(),
		&mockCalendarRepo{},
		&mockCatalogClient{menus: defaultMenus()},
		&mockSettingsClient{settings: defaultSettings()},
	)

	tests := []struct {
		name string
		req  Request
	}{
		{name: "no menus", req: Request{Date: testDate}},
		{name: "duplicate menus", req: Request{Date: testDate, MenuIDs: []int64{1, 1}}},
		{name: "non-positive menu", req: Request{Date: testDate, MenuIDs: []int64{0}}},
		{name: "non-positive staff", req: Request{Date: testDate, MenuIDs: []int64{1}, StaffID: i64Ptr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_MenuErrors(t *testing.T) {
	t.Run("unknown menu", func(t *testing.T) {
		uc := newTestUseCase(
			&mockReservationRepo{},
			defaultStaff(),
			&mockCalendarRepo{},
			&mockCatalogClient{menus: defaultMenus()},
			&mockSettingsClient{settings: defaultSettings()},
		)

		_, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuIDs: []int64{99}})
		assert.ErrorIs(t, err, ErrMenuNotFound)
	})

	t.Run("inactive menu", func(t *testing.T) {
		menus := defaultMenus()
		menus[1].IsActive = false

		uc := newTestUseCase(
			&mockReservationRepo{},
			defaultStaff(),
			&mockCalendarRepo{},
			&mockCatalogClient{menus: menus},
			&mockSettingsClient{settings: defaultSettings()},
		)

		_, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuIDs: []int64{1}})
		assert.ErrorIs(t, err, ErrMenuNotFound)
	})
}

func TestGenerateGrid(t *testing.T) {
	grid, err := generateGrid("10:00", "12:00", 30)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00", "10:30", "11:00", "11:30"}, grid)

	grid, err = generateGrid("10:00", "10:00", 30)
	require.NoError(t, err)
	assert.Empty(t, grid)
}

func TestEffectiveLastStart(t *testing.T) {
	salonLast := types.TimeString("17:00")

	t.Run("salon cutoff only", func(t *testing.T) {
		last, err := effectiveLastStart(&salonLast, []*catalogservice.Menu{{ID: 1}})
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.Equal(t, "17:00", last.String())
	})

	t.Run("menu tightens cutoff", func(t *testing.T) {
		menus := []*catalogservice.Menu{{ID: 1, LastBookingTime: strPtr("15:00")}}
		last, err := effectiveLastStart(&salonLast, menus)
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.Equal(t, "15:00", last.String())
	})

	t.Run("no cutoffs", func(t *testing.T) {
		last, err := effectiveLastStart(nil, []*catalogservice.Menu{{ID: 1}})
		require.NoError(t, err)
		assert.Nil(t, last)
	})
}
