package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"todoapi/internal/model"
)

// newDryRunDB opens a session that only generates SQL, so statements can be
// inspected without a running database.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:pass@tcp(127.0.0.1:3306)/todos_test?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	assert.NoError(t, err)
	return db
}

func TestLockedTodoQuery_TakesRowLock(t *testing.T) {
	db := newDryRunDB(t)

	stmt := lockedTodoQuery(db, uuid.New(), uuid.New()).Find(&model.Todo{}).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "FOR UPDATE")
	assert.Contains(t, sql, "creator_id")
}

func TestEnsureDeleted(t *testing.T) {
	tests := []struct {
		name     string
		result   *gorm.DB
		expected error
	}{
		{
			name:     "one row removed",
			result:   &gorm.DB{RowsAffected: 1},
			expected: nil,
		},
		{
			name:     "no rows matched",
			result:   &gorm.DB{RowsAffected: 0},
			expected: gorm.ErrRecordNotFound,
		},
		{
			name:     "driver error wins",
			result:   &gorm.DB{Error: gorm.ErrInvalidTransaction},
			expected: gorm.ErrInvalidTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ensureDeleted(tt.result))
		})
	}
}
