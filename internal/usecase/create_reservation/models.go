package create_reservation

import (
	"time"

	"github.com/hikari-salon/reservation-service/pkg/types"
)

// Request модель запроса на создание визита
type Request struct {
	Date      time.Time        // Дата визита (без времени)
	StartTime types.TimeString // Время начала (например, "14:00")
	MenuIDs   []int64          // Выбранные услуги в порядке выполнения
	StaffID   *int64           // Конкретный мастер (опционально, иначе автоподбор)

	CustomerName  string  // Имя клиента
	CustomerPhone string  // Телефон клиента, определяет идентичность
	CustomerEmail *string // Email (опционально)
	IsFirstVisit  *bool   // Заявленный клиентом первый визит (опционально)

	CouponCode       *string // Код купона (опционально)
	PaymentMethod    string  // Способ оплаты: "onsite", "card", ...
	PaymentReference *string // Ссылка платёжного шлюза, передаётся как есть
	Note             *string // Пожелания клиента (опционально)
}

// Response модель ответа с созданным визитом
type Response struct {
	ID         int64            // ID созданного визита
	CustomerID int64            // ID клиента
	StaffID    int64            // Назначенный мастер
	StaffName  string           // Имя мастера
	Date       time.Time        // Дата визита
	StartTime  types.TimeString // Время начала
	EndTime    types.TimeString // Время окончания

	Subtotal             int64 // Сумма услуг до скидки, в йенах
	DiscountAmount       int64 // Скидка по купону
	TotalPrice           int64 // Итоговая сумма
	TotalDurationMinutes int   // Общая длительность

	Status     string  // Статус визита
	CouponCode *string // Применённый купон

	Items []ResponseItem // Позиции визита

	CreatedAt time.Time // Время создания
}

// ResponseItem одна услуга визита
type ResponseItem struct {
	MenuID          int64
	MenuName        string
	Price           int64
	DurationMinutes int
	Category        string
}
