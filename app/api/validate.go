package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := validate.RegisterValidation("nonnegative", nonNegative); err != nil {
			panic(fmt.Sprintf("api: register nonnegative: %v", err))
		}
		if err := validate.RegisterValidation("decimal_lt", decimalLessThan); err != nil {
			panic(fmt.Sprintf("api: register decimal_lt: %v", err))
		}
	})
	return validate
}

// nonNegative accepts ints and anything with a Sign() int method, such as decimal.Decimal.
func nonNegative(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return field.Int() >= 0
	}
	if s, ok := field.Interface().(interface{ Sign() int }); ok {
		return s.Sign() >= 0
	}
	return false
}

// decimalLessThan bounds a decimal.Decimal field by the tag parameter.
func decimalLessThan(fl validator.FieldLevel) bool {
	limit, err := decimal.NewFromString(fl.Param())
	if err != nil {
		return false
	}
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && d.LessThan(limit)
}

// Validate checks the `validate` tags of a request body and returns the
// first violation as a client-facing message.
func Validate(req interface{}) error {
	err := instance().Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "max":
			return fmt.Errorf("Invalid %s: maximum %s characters", fe.Field(), fe.Param())
		case "decimal_lt":
			return fmt.Errorf("Invalid %s: must be less than %s", fe.Field(), fe.Param())
		}
		return fmt.Errorf("Invalid %s: failed %s validation", fe.Field(), fe.Tag())
	}
	return fmt.Errorf("validation error: %w", err)
}
