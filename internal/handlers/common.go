package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// parsePage returns the 1-based page number, defaulting to 1.
func parsePage(c *fiber.Ctx) int {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// parsePageSize returns the requested page size; the service layer clamps it.
func parsePageSize(c *fiber.Ctx) int {
	size, err := strconv.Atoi(c.Query("page_size", "20"))
	if err != nil || size < 1 {
		return 20
	}
	return size
}

// attrParams collects every attr_-prefixed query parameter. These are the
// dynamic filter values compiled against the property type's schema.
func attrParams(c *fiber.Ctx) map[string]string {
	params := make(map[string]string)

	args := c.Context().QueryArgs()
	for key, value := range args.All() {
		k := string(key)
		if strings.HasPrefix(k, "attr_") {
			params[k] = string(value)
		}
	}

	if len(params) == 0 {
		return nil
	}
	return params
}

// parseIDList extracts uint64 ids from a query parameter, supporting both
// repeated keys and comma-separated values. Malformed ids are skipped.
func parseIDList(c *fiber.Ctx, name string) []uint64 {
	idMap := make(map[uint64]struct{})

	args := c.Context().QueryArgs()
	for key, value := range args.All() {
		if string(key) == name {
			vals := strings.Split(string(value), ",")
			for _, v := range vals {
				v = strings.TrimSpace(v)
				if v == "" {
					continue
				}
				if id, err := strconv.ParseUint(v, 10, 64); err == nil {
					idMap[id] = struct{}{}
				}
			}
		}
	}

	if len(idMap) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(idMap))
	for id := range idMap {
		ids = append(ids, id)
	}
	return ids
}

// pathID parses the :id path parameter.
func pathID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
