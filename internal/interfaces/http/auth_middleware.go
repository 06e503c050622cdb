package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/pkg/jwt"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

// localActorID clave en Fiber Locals del usuario que firma los movimientos.
const localActorID = "actor_id"

var (
	errMissingToken = dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"}
	errBadScheme    = dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"}
	errEmptyToken   = dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"}
	errBadToken     = dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"}
)

// ActorMiddleware exige un Bearer JWT con claim user_id. El actor queda disponible vía ActorID.
// Si el usuario no existe en el catálogo lo detecta el caso de uso (404), no este middleware.
func ActorMiddleware(jwtSecret string, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("auth")
	return func(c *fiber.Ctx) error {
		tok, rejected := bearerToken(c.Get(fiber.HeaderAuthorization))
		if rejected != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(rejected)
		}
		actorID, err := jwt.Parse(jwtSecret, tok)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("token rechazado")
			return c.Status(fiber.StatusUnauthorized).JSON(errBadToken)
		}
		c.Locals(localActorID, actorID)
		return c.Next()
	}
}

func bearerToken(header string) (string, *dto.ErrorResponse) {
	if header == "" {
		return "", &errMissingToken
	}
	scheme, tok, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", &errBadScheme
	}
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return "", &errEmptyToken
	}
	return tok, nil
}

// ActorID devuelve el usuario autenticado, o "" fuera de ActorMiddleware.
func ActorID(c *fiber.Ctx) string {
	s, _ := c.Locals(localActorID).(string)
	return s
}
