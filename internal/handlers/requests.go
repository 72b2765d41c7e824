package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"kpi-api/internal/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var registerOnce sync.Once

// RegisterValidators регистрирует в валидаторе gin теги notblank и т.п.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("notblank", validators.NotBlank)
		}
	})
}

var ErrPayloadTooLarge = &apperrors.Error{
	Kind:    apperrors.KindValidation,
	Status:  http.StatusRequestEntityTooLarge,
	Message: "payload too large",
}

type whoAmIRequest struct {
	Manv string `json:"manv" binding:"required,notblank"`
	PIN  string `json:"pin"`
}

type checkAuthRequest struct {
	Manv string `json:"manv" binding:"required,notblank"`
	PIN  string `json:"pin" binding:"required,notblank"`
}

type listUsersRequest struct {
	Manv string `json:"manv"`
}

type enrichRequest struct {
	Manv string `json:"manv" binding:"required,notblank"`
}

// указатель: /enrichUsers отличает отсутствующий список от пустого
type enrichBatchRequest struct {
	Manv  string    `json:"manv"`
	Manvs *[]string `json:"manvs"`
}

type roundsRequest struct {
	Manv string `json:"manv" form:"manv" binding:"required,notblank"`
	Date string `json:"date" form:"date"`
}

// bindJSON: тело необязательно, пустое проверяется как {}
func bindJSON(c *gin.Context, req any) error {
	var err error
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		err = binding.Validator.ValidateStruct(req)
	} else {
		err = c.ShouldBindJSON(req)
		if errors.Is(err, io.EOF) {
			err = binding.Validator.ValidateStruct(req)
		}
	}
	return bindError(err)
}

// на GET параметры из query, иначе из JSON
func bindRounds(c *gin.Context, req *roundsRequest) error {
	if c.Request.Method == http.MethodGet {
		return bindError(c.ShouldBindQuery(req))
	}
	return bindJSON(c, req)
}

func bindError(err error) error {
	if err == nil {
		return nil
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return ErrPayloadTooLarge
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Manv":
			return apperrors.ErrManvRequired
		case "PIN":
			return apperrors.ErrPINRequired
		}
	}
	return apperrors.ErrBadRequest
}

// код сотрудника: без пробелов и в верхнем регистре
func normalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// убираем пустые и дубли, порядок сохраняем
func normalizeCodes(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		code := normalizeCode(s)
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}

// normalizeDate: пустая дата означает сегодня, иначе берём первые десять
// символов и требуем YYYY-MM-DD
func (h *Handler) normalizeDate(raw string) (string, error) {
	d := strings.TrimSpace(raw)
	if d == "" {
		return h.today(), nil
	}
	if r := []rune(d); len(r) > 10 {
		d = string(r[:10])
	}
	if _, err := time.Parse(dateLayout, d); err != nil {
		return "", apperrors.ErrInvalidDate
	}
	return d, nil
}
