// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for profiles, injuries, and generated plans.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		date_of_birth TEXT NOT NULL,
		pelvic_risk INTEGER NOT NULL DEFAULT 0,
		bone_density_risk INTEGER NOT NULL DEFAULT 0,
		last_period_date TEXT,
		avg_cycle_length INTEGER NOT NULL DEFAULT 28,
		regularity TEXT NOT NULL DEFAULT 'unknown',
		equipment_tier TEXT,
		flagged_questions TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS injuries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		body_part TEXT NOT NULL,
		injury_type TEXT,
		injury_date TEXT,
		notes TEXT,
		FOREIGN KEY (user_id) REFERENCES profiles(user_id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		plan_date TEXT NOT NULL,
		protocol TEXT NOT NULL,
		phase TEXT,
		payload TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_injuries_user ON injuries(user_id);
	CREATE INDEX IF NOT EXISTS idx_plans_user_date ON plans(user_id, plan_date DESC);
	CREATE INDEX IF NOT EXISTS idx_plans_created ON plans(created_at DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
