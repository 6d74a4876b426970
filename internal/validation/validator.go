package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	// Use a singleton validator instance to avoid recreating it
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by the environment variable that sets them.
		validatorInstance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("env"), ",", 2)[0]

			if name == "" || name == "-" {
				return fld.Name
			}

			return name
		})
	})

	return validatorInstance
}

// Validate checks input against its `validate` struct tags. The result maps a
// field name to its error messages, or is nil when the input is valid.
// Messages are looked up by "<field>.<tag>"; a generic message is used when
// none is registered.
func Validate(input any, messages map[string]string) map[string][]string {
	err := getValidator().Struct(input)

	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors

	if !errors.As(err, &validationErrors) {
		return map[string][]string{"_": {err.Error()}}
	}

	e := make(map[string][]string)

	for _, x := range validationErrors {
		fieldKey := x.Field()
		messageKey := fmt.Sprintf("%s.%s", fieldKey, x.Tag())

		message, ok := messages[messageKey]

		if !ok {
			message = fmt.Sprintf("%s failed the %q rule", fieldKey, x.Tag())
		}

		e[fieldKey] = append(e[fieldKey], message)
	}

	return e
}

// Error flattens a Validate result into a single error.
func Error(result map[string][]string) error {
	if len(result) == 0 {
		return nil
	}

	keys := make([]string, 0, len(result))

	for key := range result {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var messages []string

	for _, key := range keys {
		messages = append(messages, result[key]...)
	}

	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}
