package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Omar96MJ/sanad-sub001/pkg/authorize"
	pasetotoken "github.com/Omar96MJ/sanad-sub001/pkg/paseto"
)

// RequirePermission checks that the authenticated user may perform action on
// resource. The decision runs in the caller's private user domain; account
// roles are granted across domains and platform admins in the sys domain, so
// both reach here through the grouping rules.
func RequirePermission(auth authorize.IAuthorization, resource authorize.Resource, action authorize.Action) fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, ok := pasetotoken.ClaimsFromFiber(c)
		if !ok {
			return fiber.ErrUnauthorized
		}

		subject := authorize.GroupSubject(claims.UserID.String())
		domain := authorize.UserDomain(claims.UserID.String())

		if err := auth.MustEnforce(c.Context(), subject, domain, resource, action); err != nil {
			if errors.Is(err, authorize.ErrForbidden) {
				return fiber.ErrForbidden
			}
			return err
		}

		return c.Next()
	}
}
