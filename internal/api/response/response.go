package response

import (
	"encoding/json"
	"net/http"
)

// APIError Модель возвращаемых ответов при ошибках.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// JSON Пишет в ответ хендлера произвольные данные.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// ErrorJSON Шаблон для ответа с ошибкой в хендлерах.
func ErrorJSON(w http.ResponseWriter, status int, message string) {
	JSON(w, status, APIError{Code: status, Message: message})
}

// FieldErrorJSON Ответ с ошибкой, относящейся к конкретному полю запроса.
func FieldErrorJSON(w http.ResponseWriter, status int, field string, message string) {
	JSON(w, status, APIError{Code: status, Message: message, Field: field})
}
