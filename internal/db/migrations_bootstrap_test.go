package db

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	embeddedmigrations "github.com/terraincognita07/healthdash/migrations"
	"gorm.io/gorm"
)

func TestOpenSQLiteAppliesEmbeddedMigrationsOnCleanDatabase(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "healthdash-clean.db")
	database := openSQLiteForMigrationBootstrapTest(t, databasePath)

	assertUsersSchemaReconciled(t, database)
	assertRecordsSchemaReconciled(t, database)
	assertNormalizedEmailIndexExists(t, database)
	assertAllEmbeddedMigrationsApplied(t, database)
}

func TestOpenSQLiteUpgradesLegacyInitSchema(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "healthdash-legacy.db")
	seedLegacyInitSchema(t, databasePath, false)

	database := openSQLiteForMigrationBootstrapTest(t, databasePath)

	assertUsersSchemaReconciled(t, database)
	assertRecordsSchemaReconciled(t, database)
	assertNormalizedEmailIndexExists(t, database)
	assertAllEmbeddedMigrationsApplied(t, database)

	var migratedUser struct {
		Email              string `gorm:"column:email"`
		MustChangePassword bool   `gorm:"column:must_change_password"`
	}
	if err := database.
		Table("users").
		Select("email", "must_change_password").
		Where("email = ?", "legacy@example.com").
		First(&migratedUser).Error; err != nil {
		t.Fatalf("load migrated legacy user: %v", err)
	}
	if migratedUser.MustChangePassword {
		t.Fatal("expected must_change_password default to be false")
	}

	var migratedRecord struct {
		Kind   string `gorm:"column:kind"`
		Fields string `gorm:"column:fields"`
	}
	if err := database.
		Table("records").
		Select("kind", "fields").
		Where("id = ?", "aaaaaaaaaaaaaaaaaaaaaaaa").
		First(&migratedRecord).Error; err != nil {
		t.Fatalf("load migrated legacy record: %v", err)
	}
	if migratedRecord.Kind != "symptom" {
		t.Fatalf("expected migrated kind=symptom, got %q", migratedRecord.Kind)
	}
	if !strings.Contains(migratedRecord.Fields, "wert_4") {
		t.Fatalf("expected migrated fields to keep the rating, got %q", migratedRecord.Fields)
	}
}

func TestOpenSQLiteSkipsAddColumnWhenColumnAlreadyExists(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "healthdash-manual-column.db")
	seedLegacyInitSchema(t, databasePath, true)

	database := openSQLiteForMigrationBootstrapTest(t, databasePath)

	assertUsersSchemaReconciled(t, database)
	assertAllEmbeddedMigrationsApplied(t, database)
}

func TestOpenSQLiteMigrationBootstrapIsIdempotent(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "healthdash-idempotent.db")

	firstOpen, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("first open sqlite: %v", err)
	}
	firstRecords := loadMigrationRecords(t, firstOpen)

	firstSQLDB, err := firstOpen.DB()
	if err != nil {
		t.Fatalf("first open sql db: %v", err)
	}
	if err := firstSQLDB.Close(); err != nil {
		t.Fatalf("close first sql db: %v", err)
	}

	secondOpen := openSQLiteForMigrationBootstrapTest(t, databasePath)
	secondRecords := loadMigrationRecords(t, secondOpen)

	if !reflect.DeepEqual(firstRecords, secondRecords) {
		t.Fatalf("expected migration records to remain unchanged between boots, before=%v after=%v", firstRecords, secondRecords)
	}
}

func TestOpenRejectsUnsupportedDriver(t *testing.T) {
	_, err := Open(Options{Driver: "mysql", Path: filepath.Join(t.TempDir(), "x.db")}, nil)
	if err == nil {
		t.Fatal("expected unsupported driver error")
	}
	if !strings.Contains(err.Error(), "mysql") {
		t.Fatalf("expected error to name the driver, got %v", err)
	}
}

func TestOpenPostgresRequiresDSN(t *testing.T) {
	if _, err := Open(Options{Driver: DriverPostgres}, nil); err == nil {
		t.Fatal("expected missing DSN error")
	}
}

func TestEmbeddedMigrationsMatchAcrossDialects(t *testing.T) {
	sqliteMigrations, err := loadEmbeddedMigrations(DriverSQLite)
	if err != nil {
		t.Fatalf("load sqlite migrations: %v", err)
	}
	postgresMigrations, err := loadEmbeddedMigrations(DriverPostgres)
	if err != nil {
		t.Fatalf("load postgres migrations: %v", err)
	}

	if len(sqliteMigrations) == 0 {
		t.Fatal("expected embedded sqlite migrations")
	}
	if len(sqliteMigrations) != len(postgresMigrations) {
		t.Fatalf("expected equal migration counts, sqlite=%d postgres=%d", len(sqliteMigrations), len(postgresMigrations))
	}
	for index := range sqliteMigrations {
		if sqliteMigrations[index].Name != postgresMigrations[index].Name {
			t.Fatalf("migration %d differs: sqlite=%s postgres=%s", index, sqliteMigrations[index].Name, postgresMigrations[index].Name)
		}
	}
}

func TestSplitSQLStatementsDropsEmptyParts(t *testing.T) {
	statements := splitSQLStatements("CREATE TABLE a (id INT);\n\n ; CREATE INDEX b ON a(id);  ")
	expected := []string{"CREATE TABLE a (id INT)", "CREATE INDEX b ON a(id)"}
	if !reflect.DeepEqual(statements, expected) {
		t.Fatalf("unexpected statements: %#v", statements)
	}
}

func openSQLiteForMigrationBootstrapTest(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return database
}

func seedLegacyInitSchema(t *testing.T, databasePath string, withManualColumn bool) {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(sqliteDSN(databasePath)), &gorm.Config{})
	if err != nil {
		t.Fatalf("open legacy sqlite: %v", err)
	}

	initSQL, err := fs.ReadFile(embeddedmigrations.Files, "sqlite/001_init.sql")
	if err != nil {
		t.Fatalf("read 001 migration: %v", err)
	}
	for _, statement := range splitSQLStatements(string(initSQL)) {
		if err := database.Exec(statement).Error; err != nil {
			t.Fatalf("apply 001 migration: %v", err)
		}
	}

	if withManualColumn {
		if err := database.Exec(`ALTER TABLE users ADD COLUMN must_change_password BOOLEAN NOT NULL DEFAULT 0`).Error; err != nil {
			t.Fatalf("add manual column: %v", err)
		}
	}

	if err := database.Exec(
		`INSERT INTO users (email, password_hash, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		"legacy@example.com",
		"legacy-hash",
	).Error; err != nil {
		t.Fatalf("insert legacy user: %v", err)
	}

	var legacyUser struct {
		ID uint `gorm:"column:id"`
	}
	if err := database.Raw(`SELECT id FROM users WHERE email = ?`, "legacy@example.com").Scan(&legacyUser).Error; err != nil {
		t.Fatalf("load legacy user id: %v", err)
	}
	if legacyUser.ID == 0 {
		t.Fatal("expected non-zero legacy user id")
	}

	if err := database.Exec(
		`INSERT INTO records (id, user_id, kind, fields, created_at, updated_at) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		"aaaaaaaaaaaaaaaaaaaaaaaa",
		legacyUser.ID,
		"symptom",
		`{"timestamp":"2026-01-10T08:00","rating":"wert_4"}`,
	).Error; err != nil {
		t.Fatalf("insert legacy record: %v", err)
	}

	if database.Migrator().HasTable("schema_migrations") {
		t.Fatal("expected legacy schema to not have schema_migrations table")
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open legacy sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close legacy sql db: %v", err)
	}
}

func assertUsersSchemaReconciled(t *testing.T, database *gorm.DB) {
	t.Helper()

	columns := loadTableColumns(t, database, "users")
	for _, column := range []string{"email", "password_hash", "must_change_password", "created_at"} {
		if _, exists := columns[column]; !exists {
			t.Fatalf("expected users.%s column to exist after migrations", column)
		}
	}
}

func assertRecordsSchemaReconciled(t *testing.T, database *gorm.DB) {
	t.Helper()

	columns := loadTableColumns(t, database, "records")
	for _, column := range []string{"id", "user_id", "kind", "fields", "created_at", "updated_at"} {
		if _, exists := columns[column]; !exists {
			t.Fatalf("expected records.%s column to exist after migrations", column)
		}
	}

	indexSQL := loadSQLiteObjectSQL(t, database, "index", "idx_records_user_kind")
	if strings.TrimSpace(indexSQL) == "" {
		t.Fatal("expected idx_records_user_kind to exist")
	}
}

func assertNormalizedEmailIndexExists(t *testing.T, database *gorm.DB) {
	t.Helper()

	indexSQL := loadSQLiteObjectSQL(t, database, "index", "uidx_users_email_normalized")
	definition := strings.ToLower(strings.Join(strings.Fields(indexSQL), ""))
	if definition == "" {
		t.Fatal("expected normalized email index definition to exist")
	}
	if !strings.Contains(definition, "lower(trim(email))") {
		t.Fatalf("expected normalized email index to use lower(trim(email)), got %q", indexSQL)
	}
}

func assertAllEmbeddedMigrationsApplied(t *testing.T, database *gorm.DB) {
	t.Helper()

	expectedVersions := embeddedMigrationVersionsForTest(t)
	actualVersions := make([]string, 0)

	var rows []struct {
		Version string `gorm:"column:version"`
	}
	if err := database.Raw(`SELECT version FROM schema_migrations ORDER BY version ASC`).Scan(&rows).Error; err != nil {
		t.Fatalf("load applied migration versions: %v", err)
	}
	for _, row := range rows {
		actualVersions = append(actualVersions, row.Version)
	}

	if !reflect.DeepEqual(expectedVersions, actualVersions) {
		t.Fatalf("unexpected applied migration versions: expected=%v actual=%v", expectedVersions, actualVersions)
	}
}

type migrationRecord struct {
	Version   string `gorm:"column:version"`
	Name      string `gorm:"column:name"`
	AppliedAt string `gorm:"column:applied_at"`
}

func loadMigrationRecords(t *testing.T, database *gorm.DB) []migrationRecord {
	t.Helper()

	records := make([]migrationRecord, 0)
	if err := database.Raw(
		`SELECT version, name, applied_at FROM schema_migrations ORDER BY version ASC`,
	).Scan(&records).Error; err != nil {
		t.Fatalf("load migration records: %v", err)
	}
	return records
}

func loadTableColumns(t *testing.T, database *gorm.DB, tableName string) map[string]struct{} {
	t.Helper()

	escapedTable := strings.ReplaceAll(tableName, `"`, `""`)
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, escapedTable)

	var rows []struct {
		Name string `gorm:"column:name"`
	}
	if err := database.Raw(query).Scan(&rows).Error; err != nil {
		t.Fatalf("load table columns for %s: %v", tableName, err)
	}

	columns := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		columns[strings.ToLower(strings.TrimSpace(row.Name))] = struct{}{}
	}
	return columns
}

func loadSQLiteObjectSQL(t *testing.T, database *gorm.DB, objectType string, objectName string) string {
	t.Helper()

	var row struct {
		SQL string `gorm:"column:sql"`
	}
	if err := database.Raw(
		`SELECT sql FROM sqlite_master WHERE type = ? AND name = ?`,
		objectType,
		objectName,
	).Scan(&row).Error; err != nil {
		t.Fatalf("load sqlite master sql for %s %s: %v", objectType, objectName, err)
	}
	return row.SQL
}

func embeddedMigrationVersionsForTest(t *testing.T) []string {
	t.Helper()

	migrations, err := loadEmbeddedMigrations(DriverSQLite)
	if err != nil {
		t.Fatalf("load embedded migrations: %v", err)
	}

	versions := make([]string, 0, len(migrations))
	for _, migration := range migrations {
		versions = append(versions, migration.Version)
	}
	return versions
}
