package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

var duplicateKeyDetail = regexp.MustCompile(`Key \(([^)]+)\)=`)

// Respond writes err as an error envelope. Errors that are not business,
// validation, not-found or duplicate-key errors are logged and hidden behind
// a generic 500 carrying fallback as message.
func Respond(c *gin.Context, err error, fallback string) {
	var be BusinessError
	if errors.As(err, &be) {
		Write(c, be.Status, be.Code, be.Message)
		return
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		BadRequest(c, "validation_error", ValidationMessage(verrs))
		return
	}

	if isMalformedBody(err) {
		BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, "not_found", "Resource not found")
		return
	}

	if field, ok := DuplicateField(err); ok {
		BadRequest(c, "duplicate_key", fmt.Sprintf("%s already exists", field))
		return
	}

	zerolog.Ctx(c.Request.Context()).Error().
		Err(err).
		Str("path", c.FullPath()).
		Msg(fallback)
	Internal(c, "internal_error", fallback)
}

// ValidationMessage joins one message per failing field.
func ValidationMessage(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, field+" must be a valid email")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, ", ")
}

// DuplicateField extracts the offending column of a unique-index violation.
func DuplicateField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return "", false
	}

	m := duplicateKeyDetail.FindStringSubmatch(pgErr.Detail)
	if m == nil {
		return "value", true
	}
	cols := strings.Split(m[1], ",")
	return camelCase(strings.TrimSpace(cols[len(cols)-1])), true
}

func isMalformedBody(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, http.ErrBodyNotAllowed)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func camelCase(column string) string {
	parts := strings.Split(column, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	return strings.Join(parts, "")
}
