// pkg/validator/validator.go
package validator

import (
	"reflect"
	"strings"

	"github.com/Limkon/Netnope-sub000/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// 使用 JSON 标签名作为字段名
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// 注册自定义验证规则
	registerCustomValidators()
}

func registerCustomValidators() {
	// 验证用户角色
	validate.RegisterValidation("userrole", func(fl validator.FieldLevel) bool {
		return models.IsValidRole(fl.Field().String())
	})

	// 验证文章状态
	validate.RegisterValidation("articlestatus", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		return status == models.StatusDraft || status == models.StatusPublished
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func GetValidator() *validator.Validate {
	return validate
}
