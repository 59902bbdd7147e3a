package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EditorTokenType marks tokens allowed to call the movie write routes.
const EditorTokenType = "editor"

var (
	ErrMissingSecret = errors.New("jwt secret is required")
	ErrMissingEditor = errors.New("editor name is required")
	ErrInvalidToken  = errors.New("invalid token")
)

type JWTProvider struct {
	Secret string
	TTL    time.Duration
}

func NewJWTProvider(secret string, ttl time.Duration) *JWTProvider {
	return &JWTProvider{
		Secret: secret,
		TTL:    ttl,
	}
}

// GenerateEditorToken signs an HS256 token for editor. The HTTP server
// verifies it with the same secret.
func (p *JWTProvider) GenerateEditorToken(editor string) (string, error) {
	if p.Secret == "" {
		return "", ErrMissingSecret
	}
	if editor == "" {
		return "", ErrMissingEditor
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  editor,
		"type": EditorTokenType,
		"iat":  now.Unix(),
		"exp":  now.Add(p.TTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(p.Secret))
}

// ParseEditorToken returns the editor name carried by token.
func (p *JWTProvider) ParseEditorToken(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(p.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	if claimType, ok := claims["type"].(string); !ok || claimType != EditorTokenType {
		return "", errors.New("invalid token type")
	}

	editor, err := claims.GetSubject()
	if err != nil || editor == "" {
		return "", errors.New("invalid editor")
	}

	return editor, nil
}
