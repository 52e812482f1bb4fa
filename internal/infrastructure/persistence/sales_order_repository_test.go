package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormSalesOrderRepository_NextOrderNumber(t *testing.T) {
	t.Run("increments the highest number of the year", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		repo := NewGormSalesOrderRepository(db)

		prefix := fmt.Sprintf("SO-%d-", time.Now().Year())
		rows := sqlmock.NewRows([]string{"id", "order_number"}).
			AddRow(uuid.New(), prefix+"00041")

		// The per-year advisory lock must be taken before the maximum is
		// read, otherwise two concurrent allocations can hand out the
		// same number and collide on the unique index.
		mock.ExpectExec(`SELECT pg_advisory_xact_lock\(\$1, \$2\)`).
			WithArgs(orderNumberLockKey, time.Now().Year()).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "sales_orders" WHERE order_number LIKE \$1 ORDER BY order_number DESC,.* LIMIT .*`).
			WillReturnRows(rows)

		number, err := repo.NextOrderNumber(context.Background())

		require.NoError(t, err)
		assert.Equal(t, prefix+"00042", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("starts at one when the year has no orders", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		repo := NewGormSalesOrderRepository(db)

		mock.ExpectExec(`SELECT pg_advisory_xact_lock\(\$1, \$2\)`).
			WithArgs(orderNumberLockKey, time.Now().Year()).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "sales_orders" WHERE order_number LIKE \$1 ORDER BY order_number DESC,.* LIMIT .*`).
			WillReturnError(gorm.ErrRecordNotFound)

		number, err := repo.NextOrderNumber(context.Background())

		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("SO-%d-00001", time.Now().Year()), number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSalesOrderRepository_FindByIDForUpdate(t *testing.T) {
	t.Run("locks the order row and loads line items", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		repo := NewGormSalesOrderRepository(db)

		orderID := uuid.New()
		orderRows := sqlmock.NewRows([]string{
			"id", "order_number", "distributor_id", "sales_rep_id", "currency",
			"order_amount", "amount_paid", "amount_remaining", "payment_status",
		}).AddRow(orderID, "SO-2026-00001", uuid.New(), uuid.New(), "NGN",
			"100", "40", "60", "PARTIAL")

		mock.ExpectQuery(`SELECT \* FROM "sales_orders" WHERE id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(orderID, 1).
			WillReturnRows(orderRows)

		itemRows := sqlmock.NewRows([]string{"id", "sales_order_id", "medicine_id", "batch_id", "quantity", "unit_price", "line_total"}).
			AddRow(uuid.New(), orderID, uuid.New(), uuid.New(), 10, "10", "100")

		mock.ExpectQuery(`SELECT \* FROM "sales_line_items" WHERE sales_order_id = \$1`).
			WithArgs(orderID).
			WillReturnRows(itemRows)

		order, err := repo.FindByIDForUpdate(context.Background(), orderID)

		require.NoError(t, err)
		assert.Equal(t, orderID, order.ID)
		assert.Len(t, order.LineItems, 1)
		assert.Equal(t, "60", order.AmountRemaining.Amount().String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing order to ErrNotFound", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		repo := NewGormSalesOrderRepository(db)

		orderID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "sales_orders" WHERE id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByIDForUpdate(context.Background(), orderID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "order_number", ValidateSortField("order_number", SalesOrderSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", SalesOrderSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("order_number; DROP TABLE sales_orders", SalesOrderSortFields, "created_at"))
}

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder("sideways"))
}
