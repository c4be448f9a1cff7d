package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ademilsodream/tcponto-app-sub002/database"
	"github.com/ademilsodream/tcponto-app-sub002/models"
)

type contextKey string

const EmployeeContextKey contextKey = "employee"

type Claims struct {
	EmployeeID uuid.UUID   `json:"employee_id"`
	Email      string      `json:"email"`
	Role       models.Role `json:"role"`
	jwt.RegisteredClaims
}

var jwtSecret []byte

func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

func GenerateToken(emp *models.Employee, expiration time.Duration) (string, error) {
	claims := &Claims{
		EmployeeID: emp.ID,
		Email:      emp.Email,
		Role:       emp.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Cookie first, Authorization header as fallback.
		var tokenString string
		cookie, err := r.Cookie("token")
		if err == nil {
			tokenString = cookie.Value
		}

		if tokenString == "" {
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && parts[0] == "Bearer" {
					tokenString = parts[1]
				}
			}
		}

		if tokenString == "" {
			unauthorized(w)
			return
		}

		claims, err := ValidateToken(tokenString)
		if err != nil {
			// Clear invalid cookie
			http.SetCookie(w, &http.Cookie{
				Name:     "token",
				Value:    "",
				Path:     "/",
				MaxAge:   -1,
				HttpOnly: true,
			})
			unauthorized(w)
			return
		}

		var emp models.Employee
		if err := database.GetDB().First(&emp, "id = ?", claims.EmployeeID).Error; err != nil {
			unauthorized(w)
			return
		}
		if !emp.Active {
			forbidden(w, "account deactivated")
			return
		}

		ctx := context.WithValue(r.Context(), EmployeeContextKey, &emp)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePasswordChange blocks everything except the change-password
// endpoint until a forced password change is done.
func RequirePasswordChange(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		emp := GetEmployeeFromContext(r.Context())
		if emp != nil && emp.MustChangePassword {
			if strings.HasSuffix(r.URL.Path, "/auth/change-password") {
				next.ServeHTTP(w, r)
				return
			}
			forbidden(w, "password change required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			emp := GetEmployeeFromContext(r.Context())
			if emp == nil {
				unauthorized(w)
				return
			}

			for _, role := range roles {
				if emp.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			forbidden(w, "insufficient role")
		})
	}
}

func GetEmployeeFromContext(ctx context.Context) *models.Employee {
	emp, ok := ctx.Value(EmployeeContextKey).(*models.Employee)
	if !ok {
		return nil
	}
	return emp
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized"}`))
}

func forbidden(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
