package contextkeys

type contextKey string

// UserID Ключ для uuid.UUID аутентифицированного пользователя в контексте запроса.
const UserID contextKey = "userID"
