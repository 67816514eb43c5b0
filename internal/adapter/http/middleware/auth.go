package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/mew228/Flowstate/internal/core/domain"
	"github.com/mew228/Flowstate/pkg/apierrors"
)

const userKey = "user"

var errMissingToken = errors.New("missing bearer token")

// IdentityClaims is the ID token issued by the identity provider.
type IdentityClaims struct {
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	Email   string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies the HS256 bearer token and stores the signed-in
// user on the context. Requests without a valid token get 401.
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	return func(c *gin.Context) {
		user, err := authenticate(parser, key, c.GetHeader("Authorization"))
		if err != nil {
			zap.L().Debug("rejected identity token", zap.Error(err))
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, GetLang(c)),
			)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

func authenticate(parser *jwt.Parser, key []byte, header string) (domain.User, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return domain.User{}, errMissingToken
	}

	var claims IdentityClaims
	_, err := parser.ParseWithClaims(strings.TrimSpace(raw), &claims, func(*jwt.Token) (any, error) {
		return key, nil
	})
	if err != nil {
		return domain.User{}, err
	}

	if claims.Subject == "" {
		return domain.User{}, jwt.ErrTokenInvalidSubject
	}

	return domain.User{
		ID:          claims.Subject,
		DisplayName: claims.Name,
		AvatarURL:   claims.Picture,
		Email:       claims.Email,
	}, nil
}

// GetUser returns the user set by AuthMiddleware.
func GetUser(c *gin.Context) (domain.User, bool) {
	value, exists := c.Get(userKey)
	if !exists {
		return domain.User{}, false
	}
	user, ok := value.(domain.User)
	return user, ok
}
