package lists

import (
	"context"
	"testing"
	"time"

	"listsync/feature/lists/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

// The mysql dialect is exercised through sqlmock; the sqlite tests cover
// behavior, this covers the generated statements.
func TestRepositoryUpdateListMySQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := &Repository{db: db, logger: zap.NewNop(), observers: &observerSet{}}

	list := &models.List{
		ID:         "11111111-1111-1111-1111-111111111111",
		Name:       "Groceries",
		ModifiedAt: time.Now(),
	}

	t.Run("Row Updated", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `lists` SET .+ WHERE id = .+").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.UpdateList(context.Background(), list))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Row Means Not Found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `lists` SET .+ WHERE id = .+").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.UpdateList(context.Background(), list)
		assert.ErrorIs(t, err, ErrListNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
