package cards

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"pocket-cards/core/database"
	"pocket-cards/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupStore opens a fresh in-memory sqlite database with the cards table.
func setupStore(t *testing.T) *Store {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	store := NewStore(db, zap.NewNop())
	require.NoError(t, store.Migrate())
	return store
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

func sampleRun() *reconcile.RunResult {
	return &reconcile.RunResult{
		Language: "en",
		Sets: []reconcile.SetResult{
			{
				Set: reconcile.SetDefinition{Code: "A3b"},
				Records: []reconcile.CardRecord{
					{GlobalSequenceID: 1159, LocalCardNumber: 2, Name: "Flareon", RaritySymbol: "◊", SetCode: "A3b", PackAssignment: reconcile.EveryPack, CanonicalID: "PK_10_002"},
					{GlobalSequenceID: 1158, LocalCardNumber: 1, Name: "Eevee", RaritySymbol: "◊", SetCode: "A3b", PackAssignment: reconcile.EveryPack, CanonicalID: "PK_10_001"},
					{GlobalSequenceID: 1237, LocalCardNumber: 80, Name: "Eevee ex", RaritySymbol: "☆", SetCode: "A3b", PackAssignment: reconcile.EveryPack, CanonicalID: "PK_10_080", Eligible: true},
				},
			},
			{
				Set: reconcile.SetDefinition{Code: "A1"},
				Records: []reconcile.CardRecord{
					{GlobalSequenceID: 227, LocalCardNumber: 227, Name: "Bulbasaur", RaritySymbol: "☆", SetCode: "A1", PackAssignment: "Mewtwo pack", CanonicalID: "PK_10_227", Eligible: true},
					{GlobalSequenceID: 228, LocalCardNumber: 228, Name: "Unknown", RaritySymbol: "☆", SetCode: "A1", Eligible: true},
				},
			},
		},
	}
}

func TestStore_SaveRun(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	firstRun, n, err := store.SaveRun(ctx, sampleRun())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.NotEmpty(t, firstRun)

	records, err := store.ListBySet(ctx, "en", "A3b")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 1, records[0].LocalCardNumber, "ordered by local number")
	assert.Equal(t, "en", records[0].Language, "run language fills records without one")
	assert.Equal(t, "◊", records[0].RaritySymbol)

	t.Run("Saving again updates in place", func(t *testing.T) {
		run := sampleRun()
		run.Sets[0].Records[1].Name = "Eevee (alt)"

		secondRun, n, err := store.SaveRun(ctx, run)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.NotEqual(t, firstRun, secondRun)

		var count int64
		require.NoError(t, store.db.Model(&CardRow{}).Count(&count).Error)
		assert.Equal(t, int64(5), count)

		var row CardRow
		require.NoError(t, store.db.Where("set_code = ? AND id_set = ?", "A3b", 1).First(&row).Error)
		assert.Equal(t, "Eevee (alt)", row.Name)
		assert.Equal(t, secondRun, row.RunID)
	})

	t.Run("Languages are kept apart", func(t *testing.T) {
		run := sampleRun()
		run.Language = "fr"
		_, _, err := store.SaveRun(ctx, run)
		require.NoError(t, err)

		fr, err := store.ListBySet(ctx, "fr", "A1")
		require.NoError(t, err)
		assert.Len(t, fr, 2)

		en, err := store.ListBySet(ctx, "en", "A1")
		require.NoError(t, err)
		assert.Len(t, en, 2)
	})
}

func TestStore_SaveEmptyRun(t *testing.T) {
	store := setupStore(t)

	runID, n, err := store.SaveRun(context.Background(), &reconcile.RunResult{Language: "en"})
	require.NoError(t, err)
	assert.NotEmpty(t, runID)
	assert.Zero(t, n)
}

func TestStore_Eligible(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, _, err := store.SaveRun(ctx, sampleRun())
	require.NoError(t, err)

	eligible, err := store.Eligible(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"A1":  {"PK_10_227"},
		"A3b": {"PK_10_080"},
	}, eligible)

	none, err := store.Eligible(ctx, "fr")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_CheckSchema(t *testing.T) {
	t.Run("Migrated table", func(t *testing.T) {
		report, err := setupStore(t).CheckSchema(context.Background())
		require.NoError(t, err)
		assert.True(t, report.OK)
		assert.Empty(t, report.Missing)
		assert.Equal(t, "sqlite", report.Driver)
	})

	t.Run("Missing table", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		store := NewStore(db, nil)

		expected, err := store.ExpectedColumns()
		require.NoError(t, err)

		report, err := store.CheckSchema(context.Background())
		require.NoError(t, err)
		assert.False(t, report.OK)
		assert.ElementsMatch(t, expected, report.Missing)
	})

	t.Run("MySQL partial table", func(t *testing.T) {
		db, mock := setupMockDB(t)
		store := NewStore(db, nil)

		rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
		for _, col := range []string{"id", "language", "set_code", "id_set", "global_id", "name", "image", "rarity", "set_details", "set_subpack", "id_ingame", "updated_at"} {
			rows.AddRow(col, "varchar(255)", "YES", "", nil, "")
		}
		mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `cards`")).WillReturnRows(rows)

		report, err := store.CheckSchema(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"run_id", "wp_gp_eligible"}, report.Missing)
		assert.Equal(t, "mysql", report.Driver)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_QueryErrors(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db, nil)

	mock.ExpectQuery("SELECT \\* FROM `cards`").WillReturnError(errors.New("connection reset"))
	_, err := store.ListBySet(context.Background(), "en", "A1")
	assert.ErrorContains(t, err, "connection reset")

	mock.ExpectQuery("SELECT `set_code`,`id_ingame` FROM `cards`").WillReturnError(errors.New("connection reset"))
	_, err = store.Eligible(context.Background(), "en")
	assert.ErrorContains(t, err, "failed to list eligible en cards")

	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `cards`")).WillReturnError(errors.New("denied"))
	_, err = store.CheckSchema(context.Background())
	assert.ErrorContains(t, err, "denied")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRowConversion(t *testing.T) {
	rec := sampleRun().Sets[0].Records[2]
	rec.Language = "en"
	rec.ImageURL = "https://cdn/A3b_080.webp"
	rec.SetDetails = "Eevee Grove (A3b)"

	row := RowFromRecord(rec, "run-1")
	assert.Equal(t, "run-1", row.RunID)
	assert.Equal(t, rec, row.Record())
}
