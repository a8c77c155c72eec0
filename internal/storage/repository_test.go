// ABOUTME: Tests for Repository interface implementations.
// ABOUTME: Verifies profile and plan persistence using SQLite.
package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

func date(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func testProfile(userID string) *models.Profile {
	p := models.NewProfile(date("1994-05-12")).
		WithLastPeriod(date("2024-06-01")).
		WithCycleLength(30).
		WithRisks(true, false).
		WithInjury("knee", "strain", date("2023-11-02"))
	p.UserID = userID
	p.EquipmentTier = models.TierHomeGym
	p.FlaggedQuestions = []string{"pelvic_leakage"}
	return p
}

func testPlan(userID, day string) *models.Plan {
	p := models.NewPlan(userID, date(day), models.ProtocolCycleSync).
		WithPhase(models.PhaseFollicular, models.PhaseDetails{DayOfCycle: 8, DaysUntilNextPhase: 7, CycleLength: 28, Intensity: "high"})
	p.MainWorkout = []models.ExerciseBlock{
		{ExerciseID: "goblet-squat", ExerciseName: "Goblet Squat", MovementPattern: models.PatternSquat, Sets: 4, Reps: 8},
	}
	p.EstimatedDurationMinutes = 40
	return p
}

func TestSaveAndGetProfile(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	p := testProfile("alice")
	if err := db.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	got, err := db.GetProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if !got.DateOfBirth.Equal(p.DateOfBirth) {
		t.Errorf("DateOfBirth mismatch: got %v, want %v", got.DateOfBirth, p.DateOfBirth)
	}
	if got.Cycle.LastPeriodDate == nil || got.Cycle.LastPeriodDate.Format(models.DateLayout) != "2024-06-01" {
		t.Errorf("LastPeriodDate mismatch: got %v", got.Cycle.LastPeriodDate)
	}
	if got.Cycle.AvgCycleLength != 30 {
		t.Errorf("AvgCycleLength mismatch: got %d, want 30", got.Cycle.AvgCycleLength)
	}
	if got.Cycle.Regularity != models.RegularityUnknown {
		t.Errorf("Regularity mismatch: got %s", got.Cycle.Regularity)
	}
	if !got.PelvicRisk || got.BoneDensityRisk {
		t.Errorf("risk flags mismatch: pelvic=%v bone=%v", got.PelvicRisk, got.BoneDensityRisk)
	}
	if got.EquipmentTier != models.TierHomeGym {
		t.Errorf("EquipmentTier mismatch: got %s", got.EquipmentTier)
	}
	if len(got.FlaggedQuestions) != 1 || got.FlaggedQuestions[0] != "pelvic_leakage" {
		t.Errorf("FlaggedQuestions mismatch: got %v", got.FlaggedQuestions)
	}
	if len(got.Injuries) != 1 || got.Injuries[0].BodyPart != "knee" || got.Injuries[0].Type != "strain" {
		t.Fatalf("Injuries mismatch: got %+v", got.Injuries)
	}
	if got.Injuries[0].Date.Format(models.DateLayout) != "2023-11-02" {
		t.Errorf("injury date mismatch: got %v", got.Injuries[0].Date)
	}
}

func TestSaveProfileUpdatesAndReplacesInjuries(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	p := testProfile("alice")
	if err := db.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	created := p.CreatedAt

	p.Injuries = []models.Injury{{BodyPart: "wrist"}, {BodyPart: "shoulder", Notes: "old tear"}}
	p.Cycle.LastPeriodDate = nil
	p.BoneDensityRisk = true
	if err := db.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile update failed: %v", err)
	}

	got, err := db.GetProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if len(got.Injuries) != 2 || got.Injuries[0].BodyPart != "wrist" || got.Injuries[1].Notes != "old tear" {
		t.Errorf("Injuries not replaced: got %+v", got.Injuries)
	}
	if !got.Injuries[0].Date.IsZero() {
		t.Errorf("expected zero injury date, got %v", got.Injuries[0].Date)
	}
	if got.Cycle.LastPeriodDate != nil {
		t.Errorf("expected cleared last period date, got %v", got.Cycle.LastPeriodDate)
	}
	if !got.BoneDensityRisk {
		t.Error("expected bone density risk to be updated")
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed: got %v, want %v", got.CreatedAt, created)
	}
}

func TestSaveProfileRequiresUserID(t *testing.T) {
	db := setupTestDB(t)
	p := testProfile("")
	if err := db.SaveProfile(context.Background(), p); err == nil {
		t.Fatal("expected error for empty user id")
	}
}

func TestGetProfileNotFound(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.GetProfile(ctx, "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	p, err := db.Profile(ctx, "nobody")
	if err != nil || p != nil {
		t.Errorf("Profile should return nil, nil for missing user; got %v, %v", p, err)
	}
}

func TestListAndDeleteProfiles(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, id := range []string{"alice", "bea"} {
		if err := db.SaveProfile(ctx, testProfile(id)); err != nil {
			t.Fatalf("SaveProfile failed: %v", err)
		}
	}
	if err := db.SavePlan(ctx, testPlan("alice", "2024-06-10")); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}

	all, err := db.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("ListProfiles failed: %v", err)
	}
	if len(all) != 2 || all[0].UserID != "alice" {
		t.Fatalf("unexpected profiles: %d", len(all))
	}
	if len(all[1].Injuries) != 1 {
		t.Errorf("expected injuries loaded for listed profiles")
	}

	if err := db.DeleteProfile(ctx, "alice"); err != nil {
		t.Fatalf("DeleteProfile failed: %v", err)
	}
	plans, err := db.ListPlans(ctx, "alice", 0)
	if err != nil {
		t.Fatalf("ListPlans failed: %v", err)
	}
	if len(plans) != 0 {
		t.Errorf("expected plans deleted with profile, got %d", len(plans))
	}
	if err := db.DeleteProfile(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSaveAndGetPlan(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	p := testPlan("alice", "2024-06-10")
	p.Warnings = []string{"careful"}
	if err := db.SavePlan(ctx, p); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}

	got, err := db.GetPlan(ctx, p.ID.String())
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if got.ID != p.ID || got.Date != "2024-06-10" || got.Protocol != models.ProtocolCycleSync {
		t.Errorf("plan mismatch: got %+v", got)
	}
	if got.Phase == nil || *got.Phase != models.PhaseFollicular {
		t.Errorf("phase mismatch: got %v", got.Phase)
	}
	if len(got.MainWorkout) != 1 || got.MainWorkout[0].ExerciseID != "goblet-squat" {
		t.Errorf("main workout mismatch: got %+v", got.MainWorkout)
	}
	if len(got.Warnings) != 1 {
		t.Errorf("warnings mismatch: got %v", got.Warnings)
	}

	byPrefix, err := db.GetPlan(ctx, p.ID.String()[:8])
	if err != nil {
		t.Fatalf("GetPlan by prefix failed: %v", err)
	}
	if byPrefix.ID != p.ID {
		t.Errorf("prefix lookup returned %v", byPrefix.ID)
	}
}

func TestGetPlanNotFound(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.GetPlan(ctx, "deadbeef"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for prefix, got %v", err)
	}
	if _, err := db.GetPlan(ctx, uuid.New().String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for full id, got %v", err)
	}
	if err := db.DeletePlan(ctx, uuid.New().String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestAmbiguousPlanPrefix(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	a := testPlan("alice", "2024-06-10")
	a.ID = uuid.MustParse("abcd0000-0000-0000-0000-000000000001")
	b := testPlan("alice", "2024-06-11")
	b.ID = uuid.MustParse("abcd0000-0000-0000-0000-000000000002")
	if err := db.SavePlans(ctx, []*models.Plan{a, b}); err != nil {
		t.Fatalf("SavePlans failed: %v", err)
	}

	_, err := db.GetPlan(ctx, "abcd")
	if err == nil || !strings.Contains(err.Error(), "ambiguous prefix") {
		t.Errorf("expected ambiguous prefix error, got %v", err)
	}
}

func TestListPlans(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	p1 := testPlan("alice", "2024-06-10")
	p2 := testPlan("alice", "2024-06-12")
	p3 := testPlan("bea", "2024-06-11")
	for _, p := range []*models.Plan{p1, p2, p3} {
		if err := db.SavePlan(ctx, p); err != nil {
			t.Fatalf("SavePlan failed: %v", err)
		}
	}

	all, err := db.ListPlans(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListPlans failed: %v", err)
	}
	if len(all) != 3 || all[0].ID != p2.ID || all[2].ID != p1.ID {
		t.Errorf("expected newest first across users, got %d plans", len(all))
	}

	alice, err := db.ListPlans(ctx, "alice", 0)
	if err != nil {
		t.Fatalf("ListPlans for user failed: %v", err)
	}
	if len(alice) != 2 {
		t.Errorf("expected 2 plans for alice, got %d", len(alice))
	}

	limited, err := db.ListPlans(ctx, "", 1)
	if err != nil {
		t.Fatalf("ListPlans with limit failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != p2.ID {
		t.Errorf("expected latest plan with limit 1")
	}
}

func TestDeletePlanByPrefix(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	p := testPlan("alice", "2024-06-10")
	if err := db.SavePlan(ctx, p); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}
	if err := db.DeletePlan(ctx, p.ID.String()[:8]); err != nil {
		t.Fatalf("DeletePlan failed: %v", err)
	}
	if _, err := db.GetPlan(ctx, p.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected plan gone, got %v", err)
	}
}

func TestSavePlansRollsBackOnDuplicate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	p := testPlan("alice", "2024-06-10")
	fresh := testPlan("alice", "2024-06-11")
	if err := db.SavePlans(ctx, []*models.Plan{fresh, p, p}); err == nil {
		t.Fatal("expected duplicate id error")
	}
	plans, err := db.ListPlans(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListPlans failed: %v", err)
	}
	if len(plans) != 0 {
		t.Errorf("expected rollback, found %d plans", len(plans))
	}
}

func TestOpenCreatesPrivateFile(t *testing.T) {
	db := setupTestDB(t)
	info, err := os.Stat(db.Path())
	if err != nil {
		t.Fatalf("stat database: %v", err)
	}
	if info.Mode().Perm()&0077 != 0 {
		t.Errorf("database should not be group/world accessible: %v", info.Mode().Perm())
	}
}

func TestDataDirUsesXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	if got := DataDir(); got != filepath.Join("/tmp/xdg-data", "femfit") {
		t.Errorf("DataDir = %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/xdg-data", "femfit", "femfit.db") {
		t.Errorf("DefaultDBPath = %s", got)
	}
}

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir := t.TempDir()
	db, err := Open(filepath.Join(tmpDir, "femfit.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}
