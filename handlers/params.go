package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/livingprogress/mentorme-api/utils/query"
)

// ParseID reads a positive integer route parameter.
func ParseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint(id), nil
}

// ParseQueryOptions reads the shared search knobs from the query string:
// sortColumn, sortOrder, pageNumber, pageSize. Absent paging params stay nil
// so the search layer can tell "not paging" from "page zero".
func ParseQueryOptions(c *fiber.Ctx) (query.Options, error) {
	opts := query.Options{
		SortColumn: c.Query("sortColumn"),
		SortOrder:  c.Query("sortOrder"),
	}

	if raw := c.Query("pageNumber"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid pageNumber %q", raw)
		}
		opts.PageNumber = &n
	}
	if raw := c.Query("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid pageSize %q", raw)
		}
		opts.PageSize = &n
	}

	return opts, nil
}

// QueryUint reads an optional unsigned integer query parameter.
func QueryUint(c *fiber.Ctx, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	v := uint(n)
	return &v, nil
}

// QueryInt reads an optional integer query parameter.
func QueryInt(c *fiber.Ctx, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &n, nil
}

// QueryBool reads an optional boolean query parameter.
func QueryBool(c *fiber.Ctx, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &b, nil
}
