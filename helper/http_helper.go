package helper

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"

	"conduit-api/models"
)

const (
	textError             = `error`
	textOk                = `ok`
	codeSuccess           = 200
	codeBadRequestError   = 400
	codeUnauthorizedError = 401
	codeValidationError   = 403
	codeNotFound          = 404
	codeConflict          = 409
	codeInternalError     = 500
)

// ResponseHelper ...
type ResponseHelper struct {
	C        *gin.Context
	Status   string
	Message  string
	Data     interface{}
	Code     int // not the http code
	CodeType string
}

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

// SetResponse ...
// Set response data.
func (u *HTTPHelper) SetResponse(c *gin.Context, status string, message string, data interface{}, code int, codeType string) ResponseHelper {
	return ResponseHelper{c, status, message, data, code, codeType}
}

// SendError ...
// Send error response to consumers.
func (u *HTTPHelper) SendError(c *gin.Context, message string, data interface{}, code int, codeType string) error {
	res := u.SetResponse(c, textError, message, data, code, codeType)

	return u.SendResponse(res)
}

// SendFromError ...
// Map a service error onto the envelope by its type.
func (u *HTTPHelper) SendFromError(c *gin.Context, err error) error {
	switch err.(type) {
	case models.ErrorValidation:
		return u.SendError(c, err.Error(), u.EmptyJsonMap(), codeValidationError, `validationError`)
	case models.ErrorNotFound:
		return u.SendNotFoundError(c, err.Error(), u.EmptyJsonMap())
	case models.ErrorUnauthorized:
		return u.SendUnauthorizedError(c, err.Error(), u.EmptyJsonMap())
	case models.ErrorConflict:
		return u.SendError(c, err.Error(), u.EmptyJsonMap(), codeConflict, `conflict`)
	default:
		return u.SendError(c, err.Error(), u.EmptyJsonMap(), codeInternalError, `internalServerError`)
	}
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textError, message, data, codeBadRequestError, `badRequest`)

	return u.SendResponse(res)
}

// SendValidationError ...
// Send validation error response to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) error {
	errorResponse := map[string][]string{}
	errorTranslation := validationErrors.Translate(u.Translator)
	for _, err := range validationErrors {
		errKey := Underscore(err.StructField())
		errorResponse[errKey] = append(errorResponse[errKey], errorTranslation[err.Namespace()])
	}

	c.JSON(http.StatusBadRequest, map[string]interface{}{
		"code":         codeValidationError,
		"code_type":    `validationError`,
		"code_message": errorResponse,
		"data":         u.EmptyJsonMap(),
	})
	return nil
}

// SendUnauthorizedError ...
// Send unauthorized response to consumers.
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, codeUnauthorizedError, `unAuthorized`)
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, codeNotFound, `notFound`)
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textOk, message, data, codeSuccess, `success`)

	return u.SendResponse(res)
}

// SendCreated ...
// Send success response with 201 for newly created resources.
func (u *HTTPHelper) SendCreated(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textOk, message, data, codeSuccess, `success`)

	if len(res.Message) == 0 {
		res.Message = `success`
	}

	res.C.JSON(http.StatusCreated, map[string]interface{}{
		"code":         res.Code,
		"code_type":    res.CodeType,
		"code_message": res.Message,
		"data":         res.Data,
	})
	return nil
}

// SendResponse ...
// Send response
func (u *HTTPHelper) SendResponse(res ResponseHelper) error {
	if len(res.Message) == 0 {
		res.Message = `success`
	}

	var resCode int
	switch res.Code {
	case codeSuccess:
		resCode = http.StatusOK
	case codeBadRequestError, codeValidationError:
		resCode = http.StatusBadRequest
	case codeUnauthorizedError:
		resCode = http.StatusUnauthorized
	case codeNotFound:
		resCode = http.StatusNotFound
	case codeConflict:
		resCode = http.StatusConflict
	default:
		resCode = http.StatusInternalServerError
	}

	res.C.JSON(resCode, map[string]interface{}{
		"code":         res.Code,
		"code_type":    res.CodeType,
		"code_message": res.Message,
		"data":         res.Data,
	})
	return nil
}

func (u *HTTPHelper) EmptyJsonMap() map[string]interface{} {
	return make(map[string]interface{})
}

// Underscore converts a StructField name to its snake_case form.
func Underscore(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// get pagination URL
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, page, limit int) string {
	r := c.Request
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	currentURL := scheme + "://" + r.Host + r.URL.Path + "?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
	return currentURL
}

// Set paginantion response
func (u *HTTPHelper) GeneratePaging(c *gin.Context, prev, next, limit, page, totalRecord int) map[string]interface{} {

	prevURL, nextURL, firstURL, lastURL := "", "", "", ""

	totalPages := int(math.Ceil(float64(totalRecord) / float64(limit)))

	if page > 1 {
		prev = page - 1
		if page < totalPages {
			next = page + 1
		} else {
			next = totalPages
		}
	}

	if totalPages >= page && page > 1 {
		prevURL = u.GetPagingUrl(c, prev, limit)
	}

	if totalPages > page {
		nextURL = u.GetPagingUrl(c, next, limit)
	}

	if totalPages >= page && page > 1 {
		firstURL = u.GetPagingUrl(c, 1, limit)
	}

	if totalPages >= page && totalPages != page {
		lastURL = u.GetPagingUrl(c, totalPages, limit)
	}

	links := map[string]interface{}{
		"previous": prevURL,
		"next":     nextURL,
		"first":    firstURL,
		"last":     lastURL,
	}

	pagination := map[string]interface{}{
		"total_records": totalRecord,
		"per_page":      limit,
		"current_page":  page,
		"total_pages":   totalPages,
		"links":         links,
	}

	return pagination
}
