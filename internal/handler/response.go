package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"taskflow/internal/errors"
)

// Response is the envelope shared by every endpoint.
type Response struct {
	Success bool         `json:"success"`
	Data    interface{}  `json:"data,omitempty"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	Count   *int         `json:"count,omitempty"`
}

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Response{Success: true, Data: data})
}

func respondList(c echo.Context, data interface{}, count int) error {
	return c.JSON(http.StatusOK, Response{Success: true, Data: data, Count: &count})
}

func respondMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Response{Success: false, Message: message})
}

// failErr maps a domain error onto the envelope via the taxonomy. Unexpected
// errors are logged and surface as an opaque 500.
func failErr(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Errorf("unhandled error: %v", err)
	}
	return fail(c, httpErr.StatusCode, httpErr.Message)
}

// bindAndValidate decodes the body into req and runs struct validation,
// writing the 400 envelope itself on failure. The returned error is non-nil
// exactly when a response has been written.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) {
			return c.JSON(http.StatusBadRequest, Response{
				Success: false,
				Message: "validation failed",
				Errors:  fieldErrors(verrs),
			})
		}
		return fail(c, http.StatusBadRequest, "validation failed")
	}
	return nil
}

func fieldErrors(verrs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "invalid email"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "uuid":
		return fe.Field() + " must be a valid id"
	default:
		return fe.Field() + " is invalid"
	}
}
