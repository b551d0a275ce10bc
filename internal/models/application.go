package models

import "time"

// Статусы заявки. Порядок new -> in_progress -> completed номинальный:
// администратор может выставить любой статус из перечисления в любой момент.
const (
	StatusNew        = "new"         // заявка создана
	StatusInProgress = "in_progress" // идет обучение
	StatusCompleted  = "completed"   // обучение завершено
)

// Способы оплаты.
const (
	PaymentCash  = "cash"  // наличными
	PaymentPhone = "phone" // перевод по номеру телефона
)

// Application представляет заявку пользователя на обучение.
// Статус меняет только администратор, отзыв — только владелец заявки.
type Application struct {
	ID               int       `json:"id"`                 // Уникальный идентификатор заявки
	Username         string    `json:"username"`           // Логин владельца заявки
	CourseID         int       `json:"course_id"`          // Идентификатор курса
	CourseTitle      string    `json:"course_title"`       // Название курса на момент чтения
	DesiredStartDate time.Time `json:"desired_start_date"` // Желаемая дата начала обучения
	PaymentMethod    string    `json:"payment_method"`     // Способ оплаты, cash или phone
	Status           string    `json:"status"`             // Статус заявки
	CreatedAt        time.Time `json:"created_at"`         // Дата создания, выставляется базой
	Feedback         *string   `json:"feedback"`           // Отзыв владельца, nil если не оставлен
}

// DummyApplication используется для приёма данных новой заявки из JSON-запроса,
// прежде чем конвертировать их в Application. Дата приходит строкой,
// чтобы её можно было валидировать и парсить вручную.
type DummyApplication struct {
	CourseID         int    `json:"course_id" validate:"required,gt=0"`                   // Идентификатор курса
	DesiredStartDate string `json:"desired_start_date" validate:"required"`               // Дата начала в формате 2006-01-02
	PaymentMethod    string `json:"payment_method" validate:"required,oneof=cash phone"` // Способ оплаты
}

// ApplicationInfo агрегирует данные заявки и её владельца
// для уведомлений по электронной почте.
type ApplicationInfo struct {
	ID               int       `json:"id"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	FullName         string    `json:"full_name"`
	CourseTitle      string    `json:"course_title"`
	DesiredStartDate time.Time `json:"desired_start_date"`
	Status           string    `json:"status"`
}
