package http

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators agrega los tags propios al validador de gin.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("image_mime", func(fl validator.FieldLevel) bool {
			ct := strings.ToLower(strings.TrimSpace(fl.Field().String()))
			return strings.HasPrefix(ct, "image/") && len(ct) > len("image/")
		})
	})
}
