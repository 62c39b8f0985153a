package validator

import (
	"ctchen222/growing-tic-tac-toe/internal/game"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())

	// "mark" accepts the two marks a player can choose.
	_ = validate.RegisterValidation("mark", func(fl validator.FieldLevel) bool {
		return game.PlayerMark(fl.Field().String()).Valid()
	})
}

func GetValidator() *validator.Validate {
	return validate
}
