package serverutils

import (
	"crm-renewal-be/internal/entity"
	"crm-renewal-be/pkg/renewal"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	localAdminId   = "admin_id"
	localRole      = "role"
	localPartnerId = "partner_id"
	localEmail     = "email"
)

// NewJwtMiddleware verifies the bearer token issued by the auth service and
// stores the caller's tenant, role and optional partner in ctx.Locals.
func NewJwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Missing token"))
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid claims"))
		}

		adminId, err := uuidClaim(claims, "admin_id")
		if err != nil || adminId == uuid.Nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid claims"))
		}
		role, _ := claims["role"].(string)

		ctx.Locals(localAdminId, adminId)
		ctx.Locals(localRole, entity.UserRole(role))
		if email, ok := claims["email"].(string); ok {
			ctx.Locals(localEmail, email)
		}

		if entity.UserRole(role) == entity.UserRolePartner {
			partnerId, err := uuidClaim(claims, "partner_id")
			if err != nil || partnerId == uuid.Nil {
				return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Partner token without partner_id"))
			}
			ctx.Locals(localPartnerId, partnerId)
		}

		return ctx.Next()
	}
}

// RequireRole rejects callers whose token role is not one of roles.
func RequireRole(roles ...entity.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, _ := ctx.Locals(localRole).(entity.UserRole)
		for _, r := range roles {
			if role == r {
				return ctx.Next()
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(403, "Access denied"))
	}
}

// ScopeFromCtx builds the data scope of the authenticated caller. Partners
// only ever see their own customers.
func ScopeFromCtx(ctx *fiber.Ctx) (renewal.Scope, error) {
	adminId, ok := ctx.Locals(localAdminId).(uuid.UUID)
	if !ok || adminId == uuid.Nil {
		return renewal.Scope{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	scope := renewal.Scope{AdminId: adminId}
	if partnerId, ok := ctx.Locals(localPartnerId).(uuid.UUID); ok {
		scope.PartnerId = &partnerId
	}
	return scope, nil
}

// ActorFromCtx names the caller for audit metadata.
func ActorFromCtx(ctx *fiber.Ctx) string {
	if email, ok := ctx.Locals(localEmail).(string); ok && email != "" {
		return email
	}
	if adminId, ok := ctx.Locals(localAdminId).(uuid.UUID); ok {
		return adminId.String()
	}
	return ""
}

func uuidClaim(claims jwt.MapClaims, key string) (uuid.UUID, error) {
	raw, _ := claims[key].(string)
	return uuid.Parse(raw)
}
