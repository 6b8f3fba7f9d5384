package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/planvane/planvane-backend/internal/domain"
)

// AutoMigrateAll creates/updates every table this service owns, then wires
// the cascade foreign keys explicitly since FK creation is disabled during
// automigration.
func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&types.Owner{},
		&types.Team{},
		&types.Feature{},
		&types.ReferenceLevel{},
		&types.RescheduleType{},

		&types.Product{},
		&types.ProductComponent{},

		&types.Plan{},
		&types.PlanPhase{},
		&types.PhaseReschedule{},
		&types.PlanTask{},
		&types.PlanRCA{},
		&types.PlanReference{},
		&types.PlanMilestone{},
		&types.PlanComponent{},
		&types.PlanComponentVersion{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	// sqlite (tests) cannot alter constraints; aggregate deletes remove child
	// rows explicitly so the cascades are a safety net, not a dependency.
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	cascades := []struct {
		table      string
		constraint string
		column     string
		refTable   string
	}{
		{"plan_phase", "fk_plan_phase_plan_id", "plan_id", "plan"},
		{"phase_reschedule", "fk_phase_reschedule_phase_id", "plan_phase_id", "plan_phase"},
		{"plan_task", "fk_plan_task_plan_id", "plan_id", "plan"},
		{"plan_rca", "fk_plan_rca_plan_id", "plan_id", "plan"},
		{"plan_reference", "fk_plan_reference_plan_id", "plan_id", "plan"},
		{"plan_milestone", "fk_plan_milestone_plan_id", "plan_id", "plan"},
		{"plan_component", "fk_plan_component_plan_id", "plan_id", "plan"},
		{"plan_component_version", "fk_plan_component_version_plan_id", "plan_id", "plan"},
		{"product_component", "fk_product_component_product_id", "product_id", "product"},
	}
	for _, c := range cascades {
		stmt := fmt.Sprintf(`
			ALTER TABLE %q
			DROP CONSTRAINT IF EXISTS %q;
			ALTER TABLE %q
			ADD CONSTRAINT %q
			FOREIGN KEY (%q)
			REFERENCES %q("id")
			ON DELETE CASCADE
		`, c.table, c.constraint, c.table, c.constraint, c.column, c.refTable)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add constraint %s: %w", c.constraint, err)
		}
	}
	return nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}
