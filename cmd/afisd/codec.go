package main

import (
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/gofiber/fiber/v2"
)

const mimeCBOR = "application/cbor"

// decode reads a JSON or CBOR body depending on Content-Type.
func decode(c *fiber.Ctx, v interface{}) error {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), mimeCBOR) {
		if err := cbor.Unmarshal(c.Body(), v); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
		}
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	return nil
}

// encode answers in CBOR when the client prefers it, JSON otherwise.
func encode(c *fiber.Ctx, v interface{}) error {
	if c.Accepts(fiber.MIMEApplicationJSON, mimeCBOR) != mimeCBOR {
		return c.JSON(v)
	}
	data, err := cbor.Marshal(v)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, mimeCBOR)
	return c.Send(data)
}
