package models

// Feedback представляет отзыв, оставленный пользователем.
// Username — владелец записи, внешний ключ на users.username.
type Feedback struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Username string `json:"username"`
}

// FeedbackRequest используется для приёма данных формы отзыва
// при создании и редактировании.
type FeedbackRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=100"`
	Content string `json:"content" validate:"required"`
}

// Profile объединяет данные пользователя и его отзывы
// для страницы деталей. Хэш пароля наружу не отдаётся.
type Profile struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	FullName  string     `json:"full_name"`
	Feedback  []Feedback `json:"feedback"`
}
