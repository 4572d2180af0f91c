package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/kishandholakiya1027/invoice-be/utils"
)

var validate = validator.New()

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, err error) {
	apiErr := utils.AsAPIError(err)
	writeJSON(w, apiErr.Code, ErrorResponse{Error: apiErr.Message, Details: apiErr.Details})
}

// decodeAndValidate parses the JSON body into v and runs the struct tags
// through the validator. Both failure modes map to a 400.
func decodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return utils.BadRequest("Invalid request body", err)
	}
	if err := validate.Struct(v); err != nil {
		return utils.BadRequest("Validation failed", err)
	}
	return nil
}
