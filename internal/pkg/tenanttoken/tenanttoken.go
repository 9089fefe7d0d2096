package tenanttoken

import (
	"time"

	"staybook/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errs.New("invalid tenant token")
	ErrMissingHotel = errs.New("token missing hotel_id claim")
)

type Claims struct {
	HotelID uuid.UUID `json:"hotel_id"`
	jwt.RegisteredClaims
}

// Service issues and verifies bearer tokens that scope a caller to one hotel.
// Role/permission checks live in the dashboard's auth service, not here.
type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

func (s *Service) Issue(hotelID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		HotelID: hotelID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   hotelID.String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) Verify(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, errs.Mark(err, ErrInvalidToken)
	}
	if claims.HotelID == uuid.Nil {
		return uuid.Nil, ErrMissingHotel
	}
	return claims.HotelID, nil
}
