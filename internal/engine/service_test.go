package engine

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"ritualist/internal/schedule"
	"ritualist/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewService(db, storage.MainProfileKey, nil)
}

func createDaily(t *testing.T, svc *Service, name, slot string) string {
	t.Helper()
	res, err := svc.CreateRitual(context.Background(), CreateRitualInput{
		Name: name,
		Time: slot,
		Rule: schedule.RuleConfig{Frequency: schedule.FrequencyDaily, Interval: 1},
	})
	if err != nil {
		t.Fatalf("CreateRitual %s: %v", name, err)
	}
	return res.RitualID
}

func TestCreateRitual_RejectsInvalidRule(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateRitual(ctx, CreateRitualInput{
		Name: "Broken",
		Rule: schedule.RuleConfig{Frequency: schedule.FrequencyWeekly, Interval: 1},
	})
	if err == nil {
		t.Fatalf("expected error for weekly rule without days")
	}

	_, err = svc.CreateRitual(ctx, CreateRitualInput{
		Name: "Lift",
		Rule: schedule.RuleConfig{Frequency: schedule.FrequencyDaily, Interval: 1},
		Steps: []StepInput{
			{Name: "Squats", Exercise: "squat", Measurement: MeasurementWeight},
			{Name: "Squat hold", Exercise: "squat", Measurement: MeasurementTime},
		},
	})
	if err == nil {
		t.Fatalf("expected conflicting measurement error")
	}
}

func TestResolveDayWithOverridesAndConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	day := schedule.MustDate("2024-01-03") // Wednesday

	runID := createDaily(t, svc, "Run", "07:00")
	createDaily(t, svc, "Meditate", "07:00")
	createDaily(t, svc, "Journal", "")

	weekly, err := svc.CreateRitual(ctx, CreateRitualInput{
		Name: "Climbing",
		Time: "18:00",
		Rule: schedule.RuleConfig{Frequency: schedule.FrequencyWeekly, Interval: 1, DaysOfWeek: []int{1, 5}},
	})
	if err != nil {
		t.Fatalf("CreateRitual climbing: %v", err)
	}

	sched, err := svc.ResolveDay(ctx, day)
	if err != nil {
		t.Fatalf("ResolveDay: %v", err)
	}
	if len(sched.Occurrences) != 3 {
		t.Fatalf("occurrences=%d, want 3 (climbing is Mon/Fri only)", len(sched.Occurrences))
	}
	for _, occ := range sched.Occurrences {
		if occ.RitualID == weekly.RitualID {
			t.Fatalf("climbing should not be due on a Wednesday")
		}
	}
	if sched.Occurrences[2].Time != "" {
		t.Fatalf("unscheduled ritual should sort last, got time %q", sched.Occurrences[2].Time)
	}
	if len(sched.Conflicts) != 1 || sched.Conflicts[0].Time != "07:00" {
		t.Fatalf("conflicts=%v, want one 07:00 group", sched.Conflicts)
	}
	if len(sched.Occurrences[0].ConflictWith) != 1 {
		t.Fatalf("expected conflict cross-reference on first occurrence")
	}

	// Retiming Run clears the conflict; removing it shrinks the day.
	if err := svc.SetOverride(ctx, runID, day, false, "06:30"); err != nil {
		t.Fatalf("SetOverride retime: %v", err)
	}
	sched, err = svc.ResolveDay(ctx, day)
	if err != nil {
		t.Fatalf("ResolveDay after retime: %v", err)
	}
	if len(sched.Conflicts) != 0 {
		t.Fatalf("conflicts after retime=%v, want none", sched.Conflicts)
	}
	if sched.Occurrences[0].RitualID != runID || sched.Occurrences[0].Time != "06:30" {
		t.Fatalf("retimed run should now lead the day")
	}

	if err := svc.SetOverride(ctx, "Journal", day, true, ""); err != nil {
		t.Fatalf("SetOverride remove: %v", err)
	}
	sched, err = svc.ResolveDay(ctx, day)
	if err != nil {
		t.Fatalf("ResolveDay after remove: %v", err)
	}
	if len(sched.Occurrences) != 2 {
		t.Fatalf("occurrences after removal=%d, want 2", len(sched.Occurrences))
	}

	// The next day is untouched by 2024-01-03 overrides.
	next, err := svc.ResolveDay(ctx, day.AddDays(1))
	if err != nil {
		t.Fatalf("ResolveDay next day: %v", err)
	}
	if len(next.Occurrences) != 3 {
		t.Fatalf("next day occurrences=%d, want 3", len(next.Occurrences))
	}
}

func TestRecordCompletion_UpsertIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	day := schedule.MustDate("2024-01-03")
	id := createDaily(t, svc, "Run", "07:00")

	if err := svc.RecordCompletion(ctx, id, day, true, nil); err != nil {
		t.Fatalf("RecordCompletion: %v", err)
	}
	// A second write for the same (ritual, date) replaces, never appends.
	if err := svc.RecordCompletion(ctx, id, day, false, nil); err != nil {
		t.Fatalf("RecordCompletion second write: %v", err)
	}

	history, err := svc.CompletionRepo().ListByRitual(ctx, id)
	if err != nil {
		t.Fatalf("ListByRitual: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("ledger entries=%d, want 1", len(history))
	}
	if history[0].Completed {
		t.Fatalf("last write should win: want completed=false")
	}
}

func TestStreakFromLedger(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := createDaily(t, svc, "Run", "")

	days := []struct {
		date string
		done bool
	}{
		{"2024-01-01", true},
		{"2024-01-02", true},
		{"2024-01-03", true},
		{"2024-01-04", false},
		{"2024-01-05", true},
		{"2024-01-06", true},
	}
	for _, d := range days {
		if err := svc.RecordCompletion(ctx, id, schedule.MustDate(d.date), d.done, nil); err != nil {
			t.Fatalf("RecordCompletion %s: %v", d.date, err)
		}
	}

	res, err := svc.Streak(ctx, "Run")
	if err != nil {
		t.Fatalf("Streak: %v", err)
	}
	if res.Current != 2 || res.Longest != 3 || res.CompletionRate != 83 {
		t.Fatalf("streak=%+v, want current 2, longest 3, rate 83", res)
	}
}

func TestRecordCompletions_PartialSuccess(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	day := schedule.MustDate("2024-01-03")
	createDaily(t, svc, "Run", "")

	results := svc.RecordCompletions(ctx, day, []CompletionInput{
		{Ref: "Run", Completed: true},
		{Ref: "no-such-ritual", Completed: true},
	})
	if len(results) != 2 {
		t.Fatalf("results=%d, want 2", len(results))
	}
	if results[0].Err != nil {
		t.Fatalf("first item should succeed: %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Fatalf("second item should fail")
	}
}

func TestCloseDay_FoldsProfile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := createDaily(t, svc, "Run", "")
	day := schedule.MustDate("2024-01-03")

	if err := svc.RecordCompletion(ctx, id, day, true, nil); err != nil {
		t.Fatalf("RecordCompletion: %v", err)
	}

	res, err := svc.CloseDay(ctx, day)
	if err != nil {
		t.Fatalf("CloseDay: %v", err)
	}
	if !res.AllCompleted || res.Streak != 1 {
		t.Fatalf("close result=%+v, want all completed, streak 1", res)
	}
	if diff := res.Score - 1.01; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("score=%v, want 1.01", res.Score)
	}

	// Closing the same day twice is refused: the fold is order-sensitive.
	if _, err := svc.CloseDay(ctx, day); err == nil {
		t.Fatalf("expected error closing the same day twice")
	}
	if _, err := svc.CloseDay(ctx, day.AddDays(-1)); err == nil {
		t.Fatalf("expected error closing an earlier day")
	}

	// Next day: nothing completed, so the score decays and the streak
	// resets to 1.
	res, err = svc.CloseDay(ctx, day.AddDays(1))
	if err != nil {
		t.Fatalf("CloseDay next: %v", err)
	}
	if res.AllCompleted {
		t.Fatalf("day with a miss should not count as completed")
	}
	want := 1.01 * 0.99
	if diff := res.Score - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("score=%v, want %v", res.Score, want)
	}
	if res.Streak != 1 {
		t.Fatalf("streak=%d, want 1 after a miss", res.Streak)
	}
}

func TestImportRituals_PartialImport(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc := `
rituals:
  - name: Morning run
    time: "07:00"
    frequency: weekly
    days: [1, 3, 5]
  - name: Broken
    frequency: weekly
  - name: Strength
    frequency: daily
    steps:
      - name: Heavy squats
        exercise: squat
        measurement: weight
      - name: Squat hold
        exercise: squat
        measurement: time
`
	res, err := svc.ImportRituals(ctx, strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ImportRituals: %v", err)
	}
	if res.Created != 1 {
		t.Fatalf("created=%d, want 1", res.Created)
	}
	if len(res.Failed) != 2 {
		t.Fatalf("failed=%d, want 2 (empty weekdays, conflicting measurement)", len(res.Failed))
	}

	rit, err := svc.FindRitual(ctx, "Morning run")
	if err != nil {
		t.Fatalf("FindRitual: %v", err)
	}
	if rit.Time != "07:00" || rit.Frequency != "weekly" {
		t.Fatalf("imported ritual=%+v", rit)
	}
}
