package models

// Course представляет курс из каталога.
// Заявки принимаются только на активные курсы, при этом деактивация курса
// не затрагивает уже созданные заявки.
type Course struct {
	ID          int    `json:"id"`          // Уникальный идентификатор курса
	Title       string `json:"title"`       // Название курса
	Description string `json:"description"` // Описание (может быть пустым)
	IsActive    bool   `json:"is_active"`   // Активен ли курс
}

// ShortDescription возвращает короткое описание курса (первые 100 символов).
func (c *Course) ShortDescription() string {
	runes := []rune(c.Description)
	if len(runes) > 100 {
		return string(runes[:100]) + "..."
	}
	return c.Description
}

// DummyCourse используется для приёма данных курса из JSON-запроса
// администратора, прежде чем конвертировать их в Course.
type DummyCourse struct {
	Title       string `json:"title" validate:"required,max=200"` // Название курса
	Description string `json:"description"`                       // Описание
	IsActive    *bool  `json:"is_active"`                         // Активность, по умолчанию true
}
