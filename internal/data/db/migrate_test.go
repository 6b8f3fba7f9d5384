package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// The test harness falls back to in-memory sqlite when no postgres DSN is
// set, so the schema must migrate cleanly on that dialect too. Column
// defaults like now() are postgres-only and must not appear in the tags.
func TestAutoMigrateAllOnSqlite(t *testing.T) {
	handle, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := AutoMigrateAll(handle); err != nil {
		t.Fatalf("AutoMigrateAll on sqlite: %v", err)
	}

	for _, table := range []string{
		"plan", "plan_phase", "phase_reschedule", "plan_task", "plan_rca",
		"plan_reference", "plan_milestone", "plan_component",
		"plan_component_version", "product", "product_component",
	} {
		if !handle.Migrator().HasTable(table) {
			t.Fatalf("table %s missing after migration", table)
		}
	}
}
