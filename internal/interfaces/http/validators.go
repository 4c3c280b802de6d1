package http

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"verdant/internal/domain/grid"
	"verdant/internal/domain/plan"
)

// RegisterValidators installs the domain-aware binding validators on gin's
// validator engine so request structs can declare them in binding tags.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("cellsize", func(fl validator.FieldLevel) bool {
		return plan.IsAllowedCellSize(int(fl.Field().Int()))
	})

	_ = v.RegisterValidation("celltype", func(fl validator.FieldLevel) bool {
		return grid.CellType(fl.Field().String()).IsValid()
	})
}
