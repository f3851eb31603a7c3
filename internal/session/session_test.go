package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/poisebuild/poise-pms/internal/db"
	"github.com/poisebuild/poise-pms/internal/model"
	"github.com/poisebuild/poise-pms/internal/repository"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "poise.db")
	database, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))
	return database
}

func addPerson(t *testing.T, people *repository.PersonRepository, id int, name string) {
	t.Helper()
	require.NoError(t, people.Create(context.Background(), &model.Person{
		ID:      id,
		Role:    model.RoleCustomer,
		Name:    name,
		Phone:   "0820000000",
		Email:   "test@example.com",
		Address: "1 Test St",
	}))
}

func countCustomers(t *testing.T, database *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.Raw(`SELECT COUNT(*) FROM customers`).Scan(&count).Error)
	return count
}

func TestSavepointRollbackRestoresIterationState(t *testing.T) {
	database := openTestDB(t)
	sess, err := Begin(database, zerolog.Nop())
	require.NoError(t, err)
	defer sess.Close()

	people := repository.NewPersonRepository(sess)

	addPerson(t, people, 1, "Kept Before Savepoint")
	require.NoError(t, sess.Savepoint(MenuSavepoint))
	addPerson(t, people, 2, "Lost After Savepoint")

	require.NoError(t, sess.RollbackTo(MenuSavepoint))
	require.NoError(t, sess.Commit())

	assert.Equal(t, int64(1), countCustomers(t, database), "only pre-savepoint work survives")
}

func TestCommitIsDurableAndRenewsTransaction(t *testing.T) {
	database := openTestDB(t)
	sess, err := Begin(database, zerolog.Nop())
	require.NoError(t, err)
	defer sess.Close()

	people := repository.NewPersonRepository(sess)

	addPerson(t, people, 1, "Committed")
	require.NoError(t, sess.Commit())
	assert.Equal(t, int64(1), countCustomers(t, database))

	// the session keeps working after a commit
	require.NoError(t, sess.Savepoint(MenuSavepoint))
	addPerson(t, people, 2, "Pending")
	require.NoError(t, sess.Rollback())

	assert.Equal(t, int64(1), countCustomers(t, database), "rollback discards only uncommitted work")
}

func TestSavepointSurvivesCommit(t *testing.T) {
	database := openTestDB(t)
	sess, err := Begin(database, zerolog.Nop())
	require.NoError(t, err)
	defer sess.Close()

	people := repository.NewPersonRepository(sess)

	require.NoError(t, sess.Savepoint(MenuSavepoint))
	addPerson(t, people, 1, "Committed Mid-Iteration")
	require.NoError(t, sess.Commit())

	// a failure after the commit still has a savepoint to land on
	addPerson(t, people, 2, "After Commit")
	require.NoError(t, sess.RollbackTo(MenuSavepoint))
	require.NoError(t, sess.Commit())

	assert.Equal(t, int64(1), countCustomers(t, database), "rollback lands on the renewed savepoint")
}

func TestCloseDiscardsPendingWork(t *testing.T) {
	database := openTestDB(t)
	sess, err := Begin(database, zerolog.Nop())
	require.NoError(t, err)

	people := repository.NewPersonRepository(sess)
	addPerson(t, people, 1, "Never Saved")

	sess.Close()
	assert.Zero(t, countCustomers(t, database), "exit performs no implicit commit")

	assert.Error(t, sess.Savepoint(MenuSavepoint), "closed session rejects further work")
}

func TestSessionIDIsStable(t *testing.T) {
	database := openTestDB(t)
	sess, err := Begin(database, zerolog.Nop())
	require.NoError(t, err)
	defer sess.Close()

	id := sess.ID()
	require.NoError(t, sess.Commit())
	assert.Equal(t, id, sess.ID(), "identity survives transaction renewal")
}
