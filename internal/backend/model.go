// File: internal/backend/model.go
package backend

import (
	"fmt"
)

// Credentials are the email/password pair typed into the login or registration form.
type Credentials struct {
	Email    string `json:"email" form:"email" binding:"required,max=254"`
	Password string `json:"password" form:"password" binding:"required,max=1024"`
}

// PredictionInput holds the measurement fields exactly as typed. The remote API
// receives them as strings.
type PredictionInput struct {
	Humidity  string `json:"humidity" form:"humidity"`
	Pressure  string `json:"pressure" form:"pressure"`
	WindSpeed string `json:"wind_speed" form:"wind_speed"`
}

// Prediction is the decoded result of a successful /predict call.
type Prediction struct {
	PredictedTemperature float64 `json:"predicted_temperature"`
}

type predictionResponse struct {
	PredictedTemperature *float64 `json:"predicted_temperature"`
}

// StatusError is returned when the remote API answers with a non-2xx status.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Op, e.StatusCode, e.Body)
}
