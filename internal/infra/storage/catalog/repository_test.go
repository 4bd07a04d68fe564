package catalog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sohelnm1/HCS-BookingService/internal/domain"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(db), mock
}

func TestGetService(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM services WHERE id =").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "duration_minutes", "price", "gender_preference_fee",
			"max_extras", "schedule_config_id", "is_active",
		}).AddRow(int64(1), "Уход на дому", 60, 1000.0, 200.0, 3, nil, true))

	got, err := repo.GetService(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Уход на дому", got.Name)
	assert.True(t, got.IsActive)
}

func TestGetService_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM services WHERE id =").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetService(context.Background(), 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetEligibleEmployees_FiltersInactiveAssignments(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Фильтр и по активности сотрудника, и по активности привязки к услуге;
	// squirrel сортирует условия Eq по ключу
	mock.ExpectQuery("SELECT (.+) FROM employees e JOIN employee_services es ON es.employee_id = e.id " +
		"WHERE e.is_active = (.+) AND es.is_active = (.+) AND es.service_id = (.+) ORDER BY e.id").
		WithArgs(true, true, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "gender", "is_active"}).
			AddRow(int64(2), "Анна", "female", true))

	got, err := repo.GetEligibleEmployees(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, domain.GenderFemale, got[0].Gender)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExtras_MissingIDRejected(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM extras WHERE id IN").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "price", "duration_hours", "duration_mins", "max_quantity",
		}).AddRow(int64(5), "Массаж", 200.0, 0, 30, 2))

	_, err := repo.GetExtras(context.Background(), []int64{5, 6})
	assert.ErrorIs(t, err, ErrExtraNotFound)
}
