package services

import (
	"context"
	"testing"
	"time"

	"shopmart/internal/config"
	"shopmart/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		CustomerSecret: "customer-secret",
		VendorSecret:   "vendor-secret",
		TokenTTL:       time.Hour,
		BcryptCost:     bcrypt.MinCost,
	}
}

func newAuthService(mock pgxmock.PgxPoolIface) AuthService {
	return NewAuthService(
		mock,
		repositories.NewCustomerRepo(mock),
		repositories.NewVendorRepo(mock),
		repositories.NewCategoryRepo(mock),
		testAuthConfig(),
	)
}

func customerRow(mock pgxmock.PgxPoolIface, id uuid.UUID, username, passwordHash string) *pgxmock.Rows {
	return mock.NewRows([]string{
		"customer_id", "username", "password", "first_name", "last_name", "email", "phone",
		"address_line1", "address_line2", "city", "postal_code", "country", "created_at",
	}).AddRow(id, username, passwordHash, "Jo", "Buyer", "jo@example.com", "555-0100",
		"1 Main St", nil, "Springfield", "12345", "US", time.Now())
}

func TestLoginCustomerIssuesTokenUnderCustomerSecret(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	customerID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM customers WHERE username`).
		WithArgs("jo").
		WillReturnRows(customerRow(mock, customerID, "jo", string(hash)))

	svc := newAuthService(mock)
	tokenString, err := svc.LoginCustomer(context.Background(), "jo", "hunter2hunter2")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (any, error) {
		return []byte("customer-secret"), nil
	})
	require.NoError(t, err)
	sub, err := token.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, customerID.String(), sub)

	// the same token must fail vendor-side verification
	_, err = jwt.Parse(tokenString, func(*jwt.Token) (any, error) {
		return []byte("vendor-secret"), nil
	})
	assert.Error(t, err)
}

func TestLoginCustomerWrongPassword(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM customers WHERE username`).
		WithArgs("jo").
		WillReturnRows(customerRow(mock, uuid.New(), "jo", string(hash)))

	svc := newAuthService(mock)
	_, err = svc.LoginCustomer(context.Background(), "jo", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginCustomerUnknownUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM customers WHERE username`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	svc := newAuthService(mock)
	_, err = svc.LoginCustomer(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterVendorCreatesRootCategoryInSameTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO vendors`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(rgt\), 0\) FROM categories`).
		WillReturnRows(mock.NewRows([]string{"coalesce"}).AddRow(6))
	mock.ExpectExec(`INSERT INTO categories`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "Acme", 7, 8).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	svc := newAuthService(mock)
	vendor, err := svc.RegisterVendor(context.Background(), RegisterVendorInput{
		Username:     "acme",
		Password:     "hunter2hunter2",
		Name:         "Acme",
		Email:        "acme@example.com",
		AddressLine1: "1 Factory Rd",
		City:         "Springfield",
		PostalCode:   "12345",
		Country:      "US",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", vendor.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterVendorRollsBackWhenRootInsertFails(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO vendors`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(rgt\), 0\) FROM categories`).
		WillReturnRows(mock.NewRows([]string{"coalesce"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO categories`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	svc := newAuthService(mock)
	_, err = svc.RegisterVendor(context.Background(), RegisterVendorInput{
		Username: "acme",
		Password: "hunter2hunter2",
		Name:     "Acme",
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterCustomerRejectsShortPassword(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	svc := newAuthService(mock)
	_, err = svc.RegisterCustomer(context.Background(), RegisterCustomerInput{
		Username: "jo",
		Password: "short",
	})
	assert.Error(t, err)
}
