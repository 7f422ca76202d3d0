package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwtlib.Claims, secret string) string {
	t.Helper()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestValidateToken(t *testing.T) {
	svc := NewHMACService(testSecret)
	userID := uuid.New()

	signed := signToken(t, Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	claims, err := svc.ValidateToken(signed)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user id = %s, want %s", claims.UserID, userID)
	}
}

func TestValidateTokenSubjectFallback(t *testing.T) {
	svc := NewHMACService(testSecret)
	userID := uuid.New()

	signed := signToken(t, jwtlib.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	}, testSecret)

	claims, err := svc.ValidateToken(signed)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user id = %s, want %s", claims.UserID, userID)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewHMACService(testSecret)

	signed := signToken(t, Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, testSecret)

	if _, err := svc.ValidateToken(signed); err != ErrTokenExpired {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewHMACService(testSecret)

	signed := signToken(t, Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, "other-secret")

	if _, err := svc.ValidateToken(signed); err != ErrTokenInvalid {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewHMACService(testSecret)
	if _, err := svc.ValidateToken("not-a-token"); err != ErrTokenInvalid {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestValidateTokenMissingUserID(t *testing.T) {
	svc := NewHMACService(testSecret)

	signed := signToken(t, jwtlib.RegisteredClaims{
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	}, testSecret)

	if _, err := svc.ValidateToken(signed); err != ErrTokenInvalid {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}
