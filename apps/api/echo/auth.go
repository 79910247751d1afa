package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/ttgamma/gemportal/core"
	"github.com/ttgamma/gemportal/core/gem"
	"github.com/ttgamma/gemportal/core/member"
)

// appJWTConfig is the default JWT auth middleware config. Tokens are minted by
// the member-management service; this API only verifies and reads them.
var appJWTConfig = middleware.JWTConfig{
	SigningKey:    []byte(core.Conf.SecretKey),
	SigningMethod: middleware.AlgorithmHS256,
	ContextKey:    "memberToken",
	Claims:        new(Claims),
}

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64    `json:"oriat,omitempty"`
	Email        string   `json:"email,omitempty"`
	IsAdmin      bool     `json:"is_admin,omitempty"`
	IsECouncil   bool     `json:"is_ecouncil,omitempty"`
	Roles        []string `json:"roles,omitempty"`
}

func GetMemberClaims(mbr member.Member, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	var oriat int64
	if len(origIat) > 0 {
		oriat = origIat[0]
	} else {
		oriat = nownix
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    core.Conf.AppName,
			Subject:   mbr.ID,
			Audience:  "Chapter",
			ExpiresAt: now.Add(core.Conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		Email:        mbr.Email,
		IsAdmin:      mbr.IsAdmin(),
		IsECouncil:   mbr.IsECouncil,
		Roles:        []string{mbr.Role},
	}
}

// GenerateToken generates a signed JWT token string representing the member Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// getContextViewer maps the verified claims to the standing engine's caller.
func getContextViewer(ctx echo.Context) (gem.Viewer, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return gem.Viewer{}, err
	}
	return gem.Viewer{
		MemberID:   claims.Subject,
		Privileged: claims.IsAdmin || claims.IsECouncil,
	}, nil
}
