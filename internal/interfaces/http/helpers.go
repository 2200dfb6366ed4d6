package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// queryBool lee un query param booleano opcional; nil si no viene.
func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", key, err)
	}
	return &v, nil
}

// queryInt lee un query param entero opcional; nil si no viene.
func queryInt(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", key, err)
	}
	return &v, nil
}
