package requests

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"love-unlock/internal/domain/page"
)

var registerOnce sync.Once

// RegisterValidations installs the custom binding tags used by request structs.
func RegisterValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("choice", func(fl validator.FieldLevel) bool {
			choice := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
			return choice == page.ChoiceYes || choice == page.ChoiceNo
		})
	})
}
