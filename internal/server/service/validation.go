package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	serr "github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/utils"
)

// bcrypt не принимает пароли длиннее 72 байт
const maxPasswordBytes = 72

// CreateUserInput — входные данные создания пользователя.
type CreateUserInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateUserInput — входные данные частичного обновления.
// nil — поле не передано.
type UpdateUserInput struct {
	Username        *string `json:"username"`
	Email           *string `json:"email"`
	OldPassword     *string `json:"oldPassword" validate:"omitnil,min=6"`
	NewPassword     *string `json:"newPassword" validate:"omitnil,min=6"`
	ConfirmPassword *string `json:"confirmPassword"`
}

// ChangesPassword — запрос идёт по ветке смены пароля.
func (in UpdateUserInput) ChangesPassword() bool {
	return in.OldPassword != nil
}

// Validator проверяет входные данные сервиса.
//
// Правила отдельных полей описаны тегами validate, условные правила
// смены пароля — обычными ветками кода (passwordChangeRules / profileRules).
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// в ошибках используем имена полей из JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Create нормализует и проверяет данные создания.
// Email приводится к нижнему регистру, username и email обрезаются по краям.
// Пароль не трогаем: сравнение паролей побайтовое.
func (vl *Validator) Create(in CreateUserInput) (CreateUserInput, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)

	verr := serr.NewValidationError()
	vl.collect(in, verr)
	checkPasswordBytes("password", &in.Password, verr)

	if !verr.Empty() {
		return in, verr
	}
	return in, nil
}

// Update нормализует и проверяет данные обновления.
func (vl *Validator) Update(in UpdateUserInput) (UpdateUserInput, error) {
	in.Username = utils.MapPtr(in.Username, strings.TrimSpace)
	in.Email = utils.MapPtr(in.Email, normalizeEmail)

	verr := serr.NewValidationError()
	vl.collect(in, verr)

	if in.ChangesPassword() {
		passwordChangeRules(in, verr)
	} else {
		profileRules(in, verr)
	}

	if !verr.Empty() {
		return in, verr
	}
	return in, nil
}

// passwordChangeRules: передан oldPassword, значит меняем пароль.
// newPassword обязателен, confirmPassword обязателен и побайтово равен newPassword.
func passwordChangeRules(in UpdateUserInput, verr *serr.ValidationError) {
	checkPasswordBytes("oldPassword", in.OldPassword, verr)

	if in.NewPassword == nil {
		verr.Add("newPassword", "is required when oldPassword is set")
		return
	}
	checkPasswordBytes("newPassword", in.NewPassword, verr)

	if in.ConfirmPassword == nil {
		verr.Add("confirmPassword", "is required when newPassword is set")
		return
	}
	if *in.ConfirmPassword != *in.NewPassword {
		verr.Add("confirmPassword", "must match newPassword")
	}
}

// profileRules: oldPassword не передан, пароль не меняется.
// Новый пароль без текущего не принимаем.
func profileRules(in UpdateUserInput, verr *serr.ValidationError) {
	if in.NewPassword != nil {
		verr.Add("newPassword", "requires oldPassword")
	}
	if in.ConfirmPassword != nil {
		verr.Add("confirmPassword", "requires oldPassword")
	}
}

func (vl *Validator) collect(in any, verr *serr.ValidationError) {
	err := vl.v.Struct(in)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("_", "is invalid")
		return
	}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), describe(fe))
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return "is invalid"
	}
}

func checkPasswordBytes(field string, p *string, verr *serr.ValidationError) {
	if p != nil && len(*p) > maxPasswordBytes {
		verr.Add(field, fmt.Sprintf("must be at most %d bytes", maxPasswordBytes))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
