// File: internal/ui/model.go
package ui

import (
	"fmt"
)

// Messages shown to the user. Remote failures are never described in more detail.
const (
	LoginFailedMessage       = "Login failed. Please check your credentials."
	RegistrationSucceeded    = "Registration successful! Please login."
	RegistrationFailed       = "Registration failed. Please try again."
	PredictionFailedMessage  = "Error making prediction. Please try again."
	predictionDisplayPattern = "%.2f"
)

// State is which set of forms the page shows.
type State string

const (
	StateLoggedOut State = "logged_out"
	StateLoggedIn  State = "logged_in"
)

// Operation names a user action.
type Operation string

const (
	OpLogin    Operation = "login"
	OpRegister Operation = "register"
	OpPredict  Operation = "predict"
)

// ResultKind is the outcome of the last attempt of one operation.
type ResultKind string

const (
	ResultNone    ResultKind = ""
	ResultSuccess ResultKind = "success"
	ResultFailure ResultKind = "failure"
)

// Result is kept per operation, so a message from one form never shows up on another.
type Result struct {
	Kind    ResultKind `json:"kind,omitempty"`
	Message string     `json:"message,omitempty"`
}

func succeeded(message string) Result { return Result{Kind: ResultSuccess, Message: message} }
func failed(message string) Result    { return Result{Kind: ResultFailure, Message: message} }

func (r Result) Failed() bool    { return r.Kind == ResultFailure }
func (r Result) Succeeded() bool { return r.Kind == ResultSuccess }

// View is a snapshot of a Client for rendering. Passwords are left out.
type View struct {
	State          State    `json:"state"`
	LoginEmail     string   `json:"login_email,omitempty"`
	RegisterEmail  string   `json:"register_email,omitempty"`
	Humidity       string   `json:"humidity"`
	Pressure       string   `json:"pressure"`
	WindSpeed      string   `json:"wind_speed"`
	Prediction     *float64 `json:"predicted_temperature,omitempty"`
	LoginResult    Result   `json:"login_result"`
	RegisterResult Result   `json:"register_result"`
	PredictResult  Result   `json:"predict_result"`
	Pending        string   `json:"pending,omitempty"`
}

// LoggedIn reports whether the prediction form is shown.
func (v View) LoggedIn() bool { return v.State == StateLoggedIn }

// PredictionText renders the prediction rounded to two decimals, or "" when there is none.
func (v View) PredictionText() string {
	if v.Prediction == nil {
		return ""
	}
	return fmt.Sprintf(predictionDisplayPattern, *v.Prediction)
}
