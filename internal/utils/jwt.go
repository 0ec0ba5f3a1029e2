package utils // package utils provides helper functions for token creation and hashing

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
    "github.com/google/uuid"       // uuid generates the per-token jti revocation key
)

// Token type values carried in the "typ" claim.  Access tokens are the only
// tokens accepted by the auth middleware; refresh tokens are accepted only
// by the refresh endpoint.
const (
    TokenTypeAccess  = "access"
    TokenTypeRefresh = "refresh"
)

// ErrInvalidToken is returned by ParseToken for any token that fails
// signature, structure, or expiry checks.  The parse error is collapsed into
// a single sentinel so callers never leak verification detail to clients.
var ErrInvalidToken = errors.New("invalid token")

// IssuedToken is a freshly signed JWT along with the metadata callers need:
// the jti under which it can later be revoked and its expiration time.
type IssuedToken struct {
    Token string    // the serialized JWT string
    JTI   string    // unique token identifier, the revocation key
    Exp   time.Time // UTC expiration time
}

// TokenClaims is the validated content of a parsed token.  Subject is the
// user id, Role the access-control tag embedded at issuance, and Type
// distinguishes access from refresh tokens.
type TokenClaims struct {
    Subject uint64
    Role    string
    JTI     string
    Type    string
}

// NewAccessToken builds and signs a short-lived HS256 access token.  The JWT
// carries sub (user id), role, jti, typ=access, iat and exp.  The role claim
// is what the authorization gate checks, so every issuance path must embed
// the user's current role.
func NewAccessToken(secret string, userID uint64, role string, ttlMin int) (IssuedToken, error) {
    return newToken(secret, userID, role, TokenTypeAccess,
        time.Duration(ttlMin)*time.Minute)
}

// NewRefreshToken builds and signs a long-lived HS256 refresh token.  It
// carries the same claim set as an access token but typ=refresh, so it is
// rejected by the auth middleware and accepted only by the refresh flow.
func NewRefreshToken(secret string, userID uint64, role string, ttlDays int) (IssuedToken, error) {
    return newToken(secret, userID, role, TokenTypeRefresh,
        time.Duration(ttlDays)*24*time.Hour)
}

func newToken(secret string, userID uint64, role, typ string, ttl time.Duration) (IssuedToken, error) {
    now := time.Now().UTC()
    exp := now.Add(ttl)
    jti := uuid.NewString()
    claims := jwt.MapClaims{
        "sub":  userID,
        "role": role,
        "jti":  jti,
        "typ":  typ,
        "iat":  now.Unix(),
        "exp":  exp.Unix(),
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return IssuedToken{}, err
    }
    return IssuedToken{Token: signed, JTI: jti, Exp: exp}, nil
}

// ParseToken verifies the signature and expiry of a raw JWT and extracts its
// claims.  Only HMAC-signed tokens are accepted; any other signing method,
// a bad signature, or an expired token yields ErrInvalidToken.  Revocation
// is not checked here; that is the caller's responsibility, and must happen
// before the token is trusted for authorization.
func ParseToken(secret, raw string) (TokenClaims, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return TokenClaims{}, ErrInvalidToken
    }
    mc, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return TokenClaims{}, ErrInvalidToken
    }

    var out TokenClaims
    // Numeric JSON claims decode as float64.
    if sub, ok := mc["sub"].(float64); ok {
        out.Subject = uint64(sub)
    } else {
        return TokenClaims{}, ErrInvalidToken
    }
    out.Role, _ = mc["role"].(string)
    out.Type, _ = mc["typ"].(string)
    out.JTI, _ = mc["jti"].(string)
    if out.JTI == "" {
        // A token without a jti can never be revoked; refuse it outright.
        return TokenClaims{}, ErrInvalidToken
    }
    return out, nil
}
