// Package web holds the response envelope helpers. Every endpoint answers
// { "success": bool, "data"?: ..., "error"?: string }.
package web

import "github.com/gofiber/fiber/v2"

func OK(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func Created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

func Message(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"success": true, "message": msg})
}

func Fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": msg})
}
