package policy

import (
	"context"
	"database/sql"
	"testing"
	"time"

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

func policyRow(policyType string) *sqlmock.Rows {
	return sqlmock.NewRows(policyColumns).AddRow(
		int64(1), "standard", policyType,
		24, 4, 200.0,
		4, 0.0, 3,
		30, true, true, true,
		time.Now(), time.Now(),
	)
}

func TestGetActive(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Действующая политика выбирается по флагу is_active, свежая первой
	mock.ExpectQuery("SELECT (.+) FROM booking_policies WHERE is_active = (.+) ORDER BY id DESC LIMIT 1").
		WithArgs(true).
		WillReturnRows(policyRow("late_fee"))

	got, err := repo.GetActive(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, domain.PolicyLateFee, got.PolicyType)
	assert.Equal(t, 24, got.CancellationWindowHours)
	assert.Equal(t, 200.0, got.LateCancellationFee)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM booking_policies WHERE id = (.+) ORDER BY id DESC LIMIT 1").
		WithArgs(int64(1)).
		WillReturnRows(policyRow("full_refund"))

	got, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.PolicyFullRefund, got.PolicyType)
}

func TestGetActive_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM booking_policies").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetActive(context.Background())
	assert.ErrorIs(t, err, ErrPolicyNotFound)
}

func TestGetActive_UnknownTypeRejected(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM booking_policies").
		WillReturnRows(policyRow("flexible"))

	_, err := repo.GetActive(context.Background())
	assert.ErrorIs(t, err, ErrScanRow)
}
