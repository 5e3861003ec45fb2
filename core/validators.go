package core

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	requiredTag  = "required"
	requiredText = "this field is required"

	datetimeTag  = "datetime"
	datetimeText = "{0} must be a date like 2006-01-02"

	int32Tag  = "int32"
	int32Text = "{0} is out of range"
)

// NewTranslator returns the english translator used for validation messages.
func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use form tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(int32Tag, isInt32)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, datetimeTag, datetimeText, true)
	RegisterCustomTranslation(validate, translator, int32Tag, int32Text)
}

// isInt32 checks that a string field holds an integer storable in an INTEGER column.
func isInt32(fl validator.FieldLevel) bool {
	_, err := ParseInt32(fl.Field().String())
	return err == nil
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// FieldErrors flattens validator.ValidationErrors and ValidationError into FieldErrors.
// ok is false when err is neither.
func FieldErrors(err error, translator ut.Translator) (flds []FieldError, ok bool) {
	switch vErr := err.(type) {
	case validator.ValidationErrors:
		flds = make([]FieldError, 0, len(vErr))
		for _, fe := range vErr {
			flds = append(flds, FieldError{Field: fe.Field(), Error: fe.Translate(translator)})
		}
		return flds, true
	case *ValidationError:
		if vErr.Fields != nil {
			return vErr.Fields, true
		}
		return []FieldError{{Error: vErr.Error()}}, true
	}
	return nil, false
}
