package handlers

import (
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"freelancehub/internal/flash"
)

// flashCookie identifies a visitor across the redirect that follows a
// mutating request, independent of the session cookie so notices also work
// for logged-out flows (register -> login).
const flashCookie = "fh_flash"

func getUserID(c *fiber.Ctx) (uint, error) {
	v := c.Locals("userId")
	if v == nil {
		return 0, fmt.Errorf("unauthorized")
	}

	switch t := v.(type) {
	case uint:
		return t, nil
	case int:
		return uint(t), nil
	case string:
		n, err := strconv.ParseUint(t, 10, 64)
		return uint(n), err
	default:
		return 0, fmt.Errorf("invalid userId type: %T", v)
	}
}

type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func validationFail(c *fiber.Ctx, errs FieldErrors) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": false,
		"message": "Validation error",
		"errors":  errs,
	})
}

func flashKey(c *fiber.Ctx) string {
	if v := c.Cookies(flashCookie); v != "" {
		return v
	}

	key := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    key,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   30 * 60,
	})
	return key
}

func pushFlash(c *fiber.Ctx, store flash.Store, level, message string) {
	if store == nil {
		return
	}
	if err := store.Push(c.Context(), flashKey(c), flash.Notice{Level: level, Message: message}); err != nil {
		log.Println("Error storing flash notice:", err)
	}
}

func popFlash(c *fiber.Ctx, store flash.Store) []flash.Notice {
	if store == nil {
		return []flash.Notice{}
	}
	notices, err := store.Pop(c.Context(), flashKey(c))
	if err != nil {
		log.Println("Error reading flash notices:", err)
		return []flash.Notice{}
	}
	if notices == nil {
		notices = []flash.Notice{}
	}
	return notices
}
