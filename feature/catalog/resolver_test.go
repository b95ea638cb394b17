package catalog

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, sqlMock, err := sqlmock.New()
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

	return gormDB, sqlMock
}

func equivalenceColumns() []string {
	return []string{
		"part_number", "description", "compatible_part_number",
		"equipment_model", "original_brand", "response_brand",
	}
}

func seedColumns() []string {
	return []string{"part_number"}
}

func TestResolveEquivalencesEmptyQuery(t *testing.T) {
	db, sqlMock := setupMockDB(t)

	sqlMock.ExpectQuery("SELECT p.part_number AS part_number(.+)FROM parts AS p LEFT JOIN part_compatibilities(.+)ORDER BY p.part_number").
		WillReturnRows(sqlmock.NewRows(equivalenceColumns()).
			AddRow("NAV1", "Filtro", "X1", "Excavadora", "Kawasaki", "Navitrans").
			AddRow("NAV2", "Filtro largo", "NAV1", "Excavadora", "Kawasaki", "Navitrans"))

	records, err := resolveEquivalences(context.Background(), db, "  ")
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "NAV1", records[0].PartNumber)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestResolveEquivalencesNoSeedShortCircuits(t *testing.T) {
	db, sqlMock := setupMockDB(t)

	// Seed query finds nothing, so neither expansion nor the final
	// projection runs.
	sqlMock.ExpectQuery("SELECT DISTINCT p.part_number").
		WillReturnRows(sqlmock.NewRows(seedColumns()))

	records, err := resolveEquivalences(context.Background(), db, "ZZZ")
	assert.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

// Chain X1 <- NAV1 <- NAV2 <- NAV3 <- NAV4 (each NAVn owns an edge
// pointing at the previous number). Searching X1 seeds {NAV1} and two
// expansion rounds add NAV2 and NAV3. NAV4 sits a generation too far.
func TestResolveEquivalencesBoundedExpansion(t *testing.T) {
	db, sqlMock := setupMockDB(t)

	sqlMock.ExpectQuery("SELECT DISTINCT p.part_number").
		WillReturnRows(sqlmock.NewRows(seedColumns()).AddRow("NAV1"))

	// Generation 1: owners of edges pointing at NAV1.
	sqlMock.ExpectQuery("SELECT DISTINCT p.part_number(.+)JOIN part_compatibilities").
		WillReturnRows(sqlmock.NewRows(seedColumns()).AddRow("NAV2"))

	// Generation 2: owners of edges pointing at NAV2.
	sqlMock.ExpectQuery("SELECT DISTINCT p.part_number(.+)JOIN part_compatibilities").
		WillReturnRows(sqlmock.NewRows(seedColumns()).AddRow("NAV3"))

	// Final projection over the reachable set only.
	sqlMock.ExpectQuery("SELECT p.part_number AS part_number(.+)WHERE p.part_number IN(.+)ORDER BY p.part_number").
		WithArgs("NAV1", "NAV2", "NAV3").
		WillReturnRows(sqlmock.NewRows(equivalenceColumns()).
			AddRow("NAV1", "Filtro", "X1", "Excavadora", "Kawasaki", "Navitrans").
			AddRow("NAV2", "Filtro", "NAV1", "Excavadora", "Kawasaki", "Navitrans").
			AddRow("NAV3", "Filtro", "NAV2", "Excavadora", "Kawasaki", "Navitrans"))

	records, err := resolveEquivalences(context.Background(), db, "X1")
	assert.NoError(t, err)

	got := make([]string, 0, len(records))
	for _, r := range records {
		got = append(got, r.PartNumber)
	}
	assert.Equal(t, []string{"NAV1", "NAV2", "NAV3"}, got)
	assert.NotContains(t, got, "NAV4")
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

// A cycle between two parts must not loop the expansion or duplicate
// members of the reachable set.
func TestExpandReachableCycleSafe(t *testing.T) {
	db, sqlMock := setupMockDB(t)

	// Generation 1 re-discovers the seed (cycle) plus one new owner.
	sqlMock.ExpectQuery("SELECT DISTINCT p.part_number(.+)JOIN part_compatibilities").
		WillReturnRows(sqlmock.NewRows(seedColumns()).AddRow("NAV1").AddRow("NAV2"))

	// Generation 2 only re-discovers known members, frontier empties.
	sqlMock.ExpectQuery("SELECT DISTINCT p.part_number(.+)JOIN part_compatibilities").
		WillReturnRows(sqlmock.NewRows(seedColumns()).AddRow("NAV1"))

	reachable, err := expandReachable(context.Background(), db, []string{"NAV1"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"NAV1", "NAV2"}, reachable)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestExpandReachableFoldsCase(t *testing.T) {
	db, sqlMock := setupMockDB(t)

	// The lower-cased rediscovery of the seed is the same member.
	sqlMock.ExpectQuery("SELECT DISTINCT p.part_number(.+)JOIN part_compatibilities").
		WillReturnRows(sqlmock.NewRows(seedColumns()).AddRow("nav1"))

	reachable, err := expandReachable(context.Background(), db, []string{"NAV1"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"NAV1"}, reachable)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestDedupeRecords(t *testing.T) {
	a := equivalenceRecord{PartNumber: "NAV1", CompatiblePartNumber: "X1"}
	b := equivalenceRecord{PartNumber: "NAV1", CompatiblePartNumber: "X2"}

	out := dedupeRecords([]equivalenceRecord{a, b, a, b, a})
	assert.Equal(t, []equivalenceRecord{a, b}, out)
}
