package http_utils

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

func SendResponse(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)

	if err != nil {
		slog.Error("marshalling response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}

// ValidateStruct returns a zero ValidationErrorResponse when s passes
// validation.
func ValidateStruct(v *validator.Validate, s interface{}) ValidationErrorResponse {
	if err := v.Struct(s); err != nil {
		return ValidationErrorResponse{
			BaseResponse: BaseResponse{
				Success: false,
				Message: "invalid body, validation failed",
			},
			Errors: lo.Map(err.(validator.ValidationErrors), func(item validator.FieldError, index int) string {
				return item.Error()
			}),
		}
	}

	return ValidationErrorResponse{}
}
