package userservice

// NoEmail подставляется вместо e-mail, если его не удалось получить
const NoEmail = "(no email)"

// User модель пользователя из UserService
type User struct {
	ID    string  `json:"id"`
	Email *string `json:"email"`
	Name  string  `json:"name,omitempty"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
