package tenant_test

import (
	"testing"

	"github.com/anubhawdwd/hrms-be/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type row struct {
	ID         string
	CompanyID  string
	EmployeeID string
}

func dryRun(t *testing.T) *gorm.DB {
	t.Helper()
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db.Session(&gorm.Session{DryRun: true})
}

func TestScope(t *testing.T) {
	stmt := dryRun(t).Scopes(tenant.Scope("c-1")).Find(&[]row{}).Statement

	assert.Contains(t, stmt.SQL.String(), "company_id = $1")
	assert.Equal(t, []any{"c-1"}, stmt.Vars)
}

func TestEmployee(t *testing.T) {
	stmt := dryRun(t).Scopes(tenant.Employee("c-1", "e-1")).Find(&[]row{}).Statement

	assert.Contains(t, stmt.SQL.String(), "company_id = $1 AND employee_id = $2")
	assert.Equal(t, []any{"c-1", "e-1"}, stmt.Vars)
}
