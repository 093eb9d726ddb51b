package handlers

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"productos/internal/errs"
	"productos/internal/models"
)

// Validator checks request payloads and reports failures as *errs.ValidationError
// keyed by JSON field name.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewValidator builds a Validator with English messages, the custom
// category and notblank tags and the price bounds of ProductInput.
func NewValidator() *Validator {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		in := sl.Current().Interface().(ProductInput)
		if in.Price.IsPositive() && !models.ValidPrice(in.Price) {
			sl.ReportError(in.Price, "price", "Price", "price", "")
		}
	}, ProductInput{})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, trans)

	registerTranslation(validate, trans, "category",
		"{0} must be one of: "+strings.Join(models.CategoryNames(), ", "))
	registerTranslation(validate, trans, "notblank", "{0} must not be blank")
	registerTranslation(validate, trans, "price",
		"{0} must have at most 2 decimal places and be less than "+models.MaxPrice.String())

	return &Validator{validate: validate, trans: trans}
}

func registerTranslation(validate *validator.Validate, trans ut.Translator, tag, text string) {
	_ = validate.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, err := ut.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

// Struct validates s. It returns nil, a *errs.ValidationError, or the
// validator's own error when s is not a struct.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	verr := errs.NewValidationError()
	for _, fe := range fieldErrors {
		verr.Add(fieldKey(fe.Namespace()), fe.Translate(v.trans))
	}
	return verr
}

// fieldKey drops the root struct name: "ProductInput.name" becomes "name".
func fieldKey(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
