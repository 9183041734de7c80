package main

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		logger.Info("HTTP Request", fields...)
		return err
	}
}

// structValidator plugs validator/v10 into fiber's binder.
type structValidator struct {
	validate *validator.Validate
}

func newStructValidator() *structValidator {
	return &structValidator{validate: validator.New()}
}

func (v *structValidator) Validate(out any) error {
	return v.validate.Struct(out)
}
