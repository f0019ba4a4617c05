package pasetotoken

import (
	"github.com/gofiber/fiber/v3"
)

// CtxKeyClaims is the fiber Locals key under which the auth middleware stores
// verified claims.
const CtxKeyClaims = "auth.claims"

// ClaimsFromFiber reads verified claims out of fiber Locals.
func ClaimsFromFiber(c fiber.Ctx) (*Claims, bool) {
	cl, ok := c.Locals(CtxKeyClaims).(*Claims)
	return cl, ok
}
