package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/pkg/jwt"
)

// Locals keys para la identidad del token en Fiber.
const (
	LocalUserID     = "user_id"
	LocalAuthUserID = "auth_user_id"
	LocalOrgID      = "org_id"
	LocalBranchID   = "branch_id"
	LocalRole       = "role"
)

// HeaderBranchID selector de sucursal alternativo al query ?branch_id=.
const HeaderBranchID = "X-Branch-ID"

// AuthMiddleware valida el Bearer Token JWT y deja la identidad en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalAuthUserID, id.AuthUserID)
		c.Locals(LocalOrgID, id.OrgID)
		c.Locals(LocalBranchID, id.BranchID)
		c.Locals(LocalRole, id.Type)
		return c.Next()
	}
}

// RequireRole deja pasar solo a los tipos de usuario indicados. Va después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye el tipo de usuario"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tiene permiso para esta sección"})
	}
}

// GetUserID users.id del token; 0 si no hay sesión.
func GetUserID(c *fiber.Ctx) int64 {
	return localInt64(c, LocalUserID)
}

// GetOrgID organización del token.
func GetOrgID(c *fiber.Ctx) int64 {
	return localInt64(c, LocalOrgID)
}

// GetAuthUserID UUID de autenticación del token.
func GetAuthUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalAuthUserID).(string)
	return s
}

// GetRole tipo de usuario del token ("admin" | "user").
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// BranchScope sucursal de trabajo de la petición. Un admin puede cambiarla con ?branch_id= o
// X-Branch-ID (0 = todas); un usuario normal queda fijo en la sucursal de su token.
func BranchScope(c *fiber.Ctx) int64 {
	own := localInt64(c, LocalBranchID)
	if GetRole(c) != entity.UserTypeAdmin {
		return own
	}
	raw := c.Query("branch_id")
	if raw == "" {
		raw = c.Get(HeaderBranchID)
	}
	if raw == "" {
		return own
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return own
	}
	return id
}

// RecordScope alcance de las operaciones sobre un registro por id: 0 para un admin (toda la
// organización), la sucursal del token para un usuario normal.
func RecordScope(c *fiber.Ctx) int64 {
	if GetRole(c) == entity.UserTypeAdmin {
		return 0
	}
	return localInt64(c, LocalBranchID)
}

func localInt64(c *fiber.Ctx, key string) int64 {
	v, _ := c.Locals(key).(int64)
	return v
}
