package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// LoggerMiddleware mencatat ringkasan tiap request. Detail per-request
// (request-id + durasi) sudah ada di middleware timing di main.
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "02 Jan 15:04:05",
		TimeZone:   "Asia/Jakarta", // jam operasional pengurus
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} ${path}\n",
	})
}
