package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope for every JSON reply.
type Response struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Code    string                 `json:"code"`
	Field   string                 `json:"field,omitempty"`
	Message string                 `json:"message"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

func success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Status:  http.StatusOK,
		Message: http.StatusText(http.StatusOK),
		Data:    data,
	})
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{
		Status:  http.StatusCreated,
		Message: http.StatusText(http.StatusCreated),
		Data:    data,
	})
}

func badRequest(c echo.Context, errs []ValidationError) error {
	return c.JSON(http.StatusBadRequest, Response{
		Status:  http.StatusBadRequest,
		Message: http.StatusText(http.StatusBadRequest),
		Errors:  errs,
	})
}

// failure maps err to a status: invalid input is 400, the rest is 500.
func failure(c echo.Context, err error, badInput ...error) error {
	status := http.StatusInternalServerError
	for _, target := range badInput {
		if errors.Is(err, target) {
			status = http.StatusBadRequest
			break
		}
	}
	return c.JSON(status, Response{
		Status:  status,
		Message: http.StatusText(status),
		Errors:  []ValidationError{{Code: "ERR_" + codeFor(status), Message: err.Error()}},
	})
}

func codeFor(status int) string {
	if status == http.StatusBadRequest {
		return "INVALID"
	}
	return "INTERNAL"
}
