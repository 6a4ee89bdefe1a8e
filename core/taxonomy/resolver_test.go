package taxonomy

import (
	"context"
	"errors"
	"testing"

	"game-importer/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, Models()...))
	return db
}

// setupMockDB creates a mock GORM DB for testing.
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

func TestEnsureTerms_CreatesOnceAndAttachesAdditively(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewResolver(db, zap.NewNop())

	require.NoError(t, r.EnsureTerms(ctx, 1, "genre", []string{"Action", "Indie"}))
	require.NoError(t, r.EnsureTerms(ctx, 1, "genre", []string{"Action", "RPG", ""}))
	require.NoError(t, r.EnsureTerms(ctx, 2, "genre", []string{"Action"}))

	var count int64
	require.NoError(t, db.Model(&Term{}).Where("taxonomy = ?", "genre").Count(&count).Error)
	assert.Equal(t, int64(3), count)

	terms, err := r.TermsOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Indie", "RPG"}, terms["genre"])

	var action Term
	require.NoError(t, db.Where("name = ?", "Action").First(&action).Error)
	assert.Equal(t, "action", action.Slug)
}

func TestEnsureTerms_SameNameDifferentTaxonomies(t *testing.T) {
	ctx := context.Background()
	r := NewResolver(newTestDB(t), zap.NewNop())

	require.NoError(t, r.EnsureTerms(ctx, 1, "developer", []string{"Valve"}))
	require.NoError(t, r.EnsureTerms(ctx, 1, "publisher", []string{"Valve"}))

	terms, err := r.TermsOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Valve"}, terms["developer"])
	assert.Equal(t, []string{"Valve"}, terms["publisher"])
}

func TestEnsureTerms_OneFailureDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_broken_term", func(tx *gorm.DB) {
		if term, ok := tx.Statement.Dest.(*Term); ok && term.Name == "Broken" {
			_ = tx.AddError(errors.New("insert rejected"))
		}
	}))
	r := NewResolver(db, zap.NewNop())

	err := r.EnsureTerms(ctx, 9, "genre", []string{"Action", "Broken", "Strategy"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert rejected")

	terms, err := r.TermsOf(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Strategy"}, terms["genre"])
}

func TestEnsureTerms_NoTaxonomyIsNoop(t *testing.T) {
	db, mock := setupMockDB(t)
	r := NewResolver(db, zap.NewNop())

	assert.NoError(t, r.EnsureTerms(context.Background(), 1, "", []string{"Action"}))
	assert.NoError(t, r.EnsureTerms(context.Background(), 1, "genre", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureTerms_LookupError(t *testing.T) {
	db, mock := setupMockDB(t)
	r := NewResolver(db, zap.NewNop())

	mock.ExpectQuery("SELECT \\* FROM `terms`").WillReturnError(errors.New("db down"))

	err := r.EnsureTerms(context.Background(), 1, "genre", []string{"Action"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDetach(t *testing.T) {
	ctx := context.Background()
	r := NewResolver(newTestDB(t), zap.NewNop())

	require.NoError(t, r.EnsureTerms(ctx, 4, "platform", []string{"Windows", "Linux"}))
	require.NoError(t, r.Detach(ctx, 4))

	terms, err := r.TermsOf(ctx, 4)
	require.NoError(t, err)
	assert.Empty(t, terms)
}
