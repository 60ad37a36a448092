package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestOpenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "essence.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by TestOpenFileDatabase.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{tableUsers, tableScores, tableProfile, tableLLMEvents, tableLessonEvents, tableAchievements} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	if err := migrate(context.Background(), s.DB()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func score(id, user, topic string, pct, spent int, ts time.Time) ScoreRecord {
	return ScoreRecord{
		ID: id, UserID: user, UserName: user, Topic: topic,
		Score: pct * 8 / 100, TotalQuestions: 8, Percentage: pct,
		TimeSpent: spent, Timestamp: ts,
	}
}

func TestScoreRepo_ByUserNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.ScoreRepo()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		rec := score(fmt.Sprintf("s%02d", i), "alice", "Origami", 50, 100, base.Add(time.Duration(i)*time.Minute))
		if err := repo.Insert(ctx, rec); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
	if err := repo.Insert(ctx, score("other", "bob", "Origami", 100, 10, base)); err != nil {
		t.Fatalf("insert bob: %v", err)
	}

	got, err := repo.ByUser(ctx, "alice", 20)
	if err != nil {
		t.Fatalf("by user: %v", err)
	}
	if len(got) != 20 {
		t.Fatalf("len = %d, want 20", len(got))
	}
	if got[0].ID != "s24" {
		t.Errorf("first = %s, want s24", got[0].ID)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp.After(got[i-1].Timestamp) {
			t.Fatalf("records not in descending timestamp order at %d", i)
		}
	}
	if !got[0].Timestamp.Equal(base.Add(24 * time.Minute)) {
		t.Errorf("timestamp round trip = %v", got[0].Timestamp)
	}
}

func TestScoreRepo_RankedTwoKeySort(t *testing.T) {
	s := openTestStore(t)
	repo := s.ScoreRepo()
	ctx := context.Background()
	now := time.Now().UTC()

	recs := []ScoreRecord{
		score("slow-perfect", "a", "Origami", 100, 300, now),
		score("fast-perfect", "b", "Origami", 100, 40, now),
		score("mid", "c", "Calligraphy", 75, 20, now),
		score("low", "d", "Origami", 25, 5, now),
	}
	for _, r := range recs {
		if err := repo.Insert(ctx, r); err != nil {
			t.Fatalf("insert %s: %v", r.ID, err)
		}
	}

	global, err := repo.Ranked(ctx, "", 10)
	if err != nil {
		t.Fatalf("ranked: %v", err)
	}
	wantGlobal := []string{"fast-perfect", "slow-perfect", "mid", "low"}
	for i, id := range wantGlobal {
		if global[i].ID != id {
			t.Errorf("global[%d] = %s, want %s", i, global[i].ID, id)
		}
	}

	topic, err := repo.Ranked(ctx, "Origami", 2)
	if err != nil {
		t.Fatalf("ranked topic: %v", err)
	}
	if len(topic) != 2 || topic[0].ID != "fast-perfect" || topic[1].ID != "slow-perfect" {
		t.Errorf("topic leaderboard = %+v", topic)
	}
}

func TestUserRepo_CreateAndLookup(t *testing.T) {
	s := openTestStore(t)
	repo := s.UserRepo()
	ctx := context.Background()
	now := time.Now().UTC()

	u := UserRecord{ID: "u1", Email: "a@example.com", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := u
	dup.ID = "u2"
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate create err = %v, want ErrDuplicate", err)
	}

	got, err := repo.ByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("by email: %v", err)
	}
	if got.ID != "u1" {
		t.Errorf("ID = %q, want u1", got.ID)
	}

	if err := repo.UpdateProfile(ctx, "u1", "Ada", "https://img.example/a.png"); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	got, err = repo.ByID(ctx, "u1")
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if got.DisplayName != "Ada" || got.PhotoURL != "https://img.example/a.png" {
		t.Errorf("profile = %q/%q", got.DisplayName, got.PhotoURL)
	}

	if _, err := repo.ByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing user err = %v, want ErrNotFound", err)
	}
	if err := repo.UpdateProfile(ctx, "missing", "x", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing err = %v, want ErrNotFound", err)
	}
}

func TestProfileRepo_Upsert(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	if _, ok, err := repo.Get(ctx, "displayName_u1"); err != nil || ok {
		t.Fatalf("get empty: ok=%v err=%v", ok, err)
	}
	if err := repo.Set(ctx, "displayName_u1", "Ada"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Set(ctx, "displayName_u1", "Grace"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := repo.Get(ctx, "displayName_u1")
	if err != nil || !ok || v != "Grace" {
		t.Fatalf("get = %q ok=%v err=%v", v, ok, err)
	}
	if err := repo.Delete(ctx, "displayName_u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "displayName_u1"); ok {
		t.Error("entry still present after delete")
	}
}

func TestEventRepo_LLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "groq", Model: "llama-3.3-70b-versatile", Purpose: "lesson", InputTokens: 100, OutputTokens: 900, LatencyMs: 1000, Success: true},
		{Provider: "groq", Model: "llama-3.3-70b-versatile", Purpose: "lesson", InputTokens: 120, OutputTokens: 800, LatencyMs: 3000, Success: true},
		{Provider: "mock", Model: "mock", Purpose: "unknown", Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	list, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].Sequence < list[1].Sequence {
		t.Error("expected newest event first")
	}
	if list[0].ErrorMessage != "boom" {
		t.Errorf("newest error = %q, want boom", list[0].ErrorMessage)
	}

	got, err := repo.GetLLMEvent(ctx, list[0].ID)
	if err != nil || got == nil {
		t.Fatalf("get: %v %v", got, err)
	}
	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Fatalf("get missing = %v, %v; want nil, nil", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 || byPurpose[0].Purpose != "lesson" {
		t.Fatalf("usage by purpose = %+v", byPurpose)
	}
	if byPurpose[0].Calls != 2 || byPurpose[0].InputTokens != 220 || byPurpose[0].AvgLatencyMs != 2000 {
		t.Errorf("lesson usage = %+v", byPurpose[0])
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Errorf("usage by model = %+v", byModel)
	}
}

func TestEventRepo_LessonAndAchievementEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendLessonEvent(ctx, LessonEventData{Topic: "Origami", Fallback: true}); err != nil {
		t.Fatalf("append lesson: %v", err)
	}
	if err := repo.AppendAchievementEvent(ctx, AchievementEventData{UserID: "u1", Achievement: "perfect_score", Topic: "Origami"}); err != nil {
		t.Fatalf("append achievement: %v", err)
	}
	if err := repo.AppendAchievementEvent(ctx, AchievementEventData{UserID: "u2", Achievement: "speed_demon"}); err != nil {
		t.Fatalf("append achievement: %v", err)
	}

	lessons, err := repo.QueryLessonEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query lessons: %v", err)
	}
	if len(lessons) != 1 || !lessons[0].Fallback || lessons[0].Topic != "Origami" {
		t.Errorf("lesson events = %+v", lessons)
	}

	achievements, err := repo.QueryAchievementEvents(ctx, "u1", QueryOpts{})
	if err != nil {
		t.Fatalf("query achievements: %v", err)
	}
	if len(achievements) != 1 || achievements[0].Achievement != "perfect_score" {
		t.Errorf("achievement events = %+v", achievements)
	}
	// Lesson event was appended first, so it holds the lower sequence.
	if lessons[0].Sequence >= achievements[0].Sequence {
		t.Errorf("sequence ordering broken: lesson=%d achievement=%d", lessons[0].Sequence, achievements[0].Sequence)
	}
}
