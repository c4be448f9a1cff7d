package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ademilsodream/tcponto-app-sub002/models"
)

func TestTokenRoundtrip(t *testing.T) {
	SetJWTSecret("test-secret")

	emp := &models.Employee{
		ID:    uuid.New(),
		Email: "ana@example.com",
		Role:  models.RoleEmployee,
	}

	token, err := GenerateToken(emp, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, emp.ID, claims.EmployeeID)
	assert.Equal(t, emp.Email, claims.Email)
	assert.Equal(t, models.RoleEmployee, claims.Role)
}

func TestValidateToken_RejectsExpired(t *testing.T) {
	SetJWTSecret("test-secret")

	emp := &models.Employee{ID: uuid.New(), Email: "ana@example.com", Role: models.RoleEmployee}
	token, err := GenerateToken(emp, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	SetJWTSecret("first-secret")
	emp := &models.Employee{ID: uuid.New(), Email: "ana@example.com", Role: models.RoleAdmin}
	token, err := GenerateToken(emp, time.Hour)
	require.NoError(t, err)

	SetJWTSecret("second-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestGetEmployeeFromContext(t *testing.T) {
	assert.Nil(t, GetEmployeeFromContext(context.Background()))

	emp := &models.Employee{ID: uuid.New()}
	ctx := context.WithValue(context.Background(), EmployeeContextKey, emp)
	assert.Equal(t, emp, GetEmployeeFromContext(ctx))
}
