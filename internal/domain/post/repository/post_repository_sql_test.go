package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 浏览计数必须走 view_count = view_count + 1 的相对自增，
// 不能读出来加一再写回，这里钉死生成的 SQL 形态。
func TestRecordViewUsesRelativeIncrement(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.MatchExpectationsInOrder(false)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "view_count", "author_id"}).
			AddRow(1, "match report", "full time", 10, 7))
	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "nickname"}).
			AddRow(7, "son7", "Sonny"))
	mock.ExpectQuery(`SELECT .* FROM "post_teams"`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "team_id"}))
	mock.ExpectQuery(`INSERT INTO "post_view_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "view_count"=view_count + $1 WHERE id = $2`)).
		WithArgs(1, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewPostRepository(db)
	post, err := repo.GetDetailAndRecordView(1)
	require.NoError(t, err)

	// 响应里的计数反映本次浏览
	assert.Equal(t, uint(11), post.ViewCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
