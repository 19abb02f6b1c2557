package persistence_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/okian/scoutbase/internal/adapters/persistence"
	"github.com/okian/scoutbase/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
	_ "modernc.org/sqlite"
)

// writeRawPayload bypasses the store to plant an arbitrary blob in the slot.
func writeRawPayload(t *testing.T, path, slot string, payload []byte) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	defer func() { _ = db.Close() }()
	if _, err := db.Exec(
		`INSERT INTO state (slot, payload) VALUES (?, ?)
		 ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload`,
		slot, payload,
	); err != nil {
		t.Fatalf("write raw payload: %v", err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given a store on a fresh database", t, func() {
		path := filepath.Join(t.TempDir(), "scout.db")
		store, err := persistence.NewStore(path)
		convey.So(err, convey.ShouldBeNil)
		defer func() { _ = store.Close() }()

		convey.Convey("When loading before anything was saved", func() {
			snap := store.Load(ctx)

			convey.Convey("Then the default snapshot should come back", func() {
				convey.So(snap.Schema, convey.ShouldHaveLength, 6)
				convey.So(snap.Records, convey.ShouldBeEmpty)
				convey.So(snap.Theme, convey.ShouldEqual, model.ThemeDark)
			})
		})

		convey.Convey("When saving and reloading a snapshot", func() {
			snap := model.DefaultSnapshot()
			snap.Theme = model.ThemeLight
			snap.Settings.RemoteEndpointURL = "https://sync.example.com"
			snap.Records = []model.MatchRecord{{
				ID:          "rec-1",
				MatchNumber: "4",
				TeamNumber:  "254",
				Alliance:    model.AllianceB,
				Values: map[string]model.Value{
					"auto_score_top": model.Number(6),
					"auto_mobility":  model.Bool(true),
					"notes":          model.Text("solid auton"),
				},
				RecordedAt: 1_700_000_000_000,
			}}
			convey.So(store.Save(ctx, snap), convey.ShouldBeNil)

			loaded := store.Load(ctx)

			convey.Convey("Then the content should survive intact", func() {
				convey.So(loaded.Theme, convey.ShouldEqual, model.ThemeLight)
				convey.So(loaded.Settings.RemoteEndpointURL, convey.ShouldEqual, "https://sync.example.com")
				convey.So(loaded.Records, convey.ShouldHaveLength, 1)
				r := loaded.Records[0]
				convey.So(r.ID, convey.ShouldEqual, "rec-1")
				convey.So(r.Alliance, convey.ShouldEqual, model.AllianceB)
				n, ok := r.Values["auto_score_top"].AsNumber()
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(n, convey.ShouldEqual, 6)
				b, ok := r.Values["auto_mobility"].AsFlag()
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(b, convey.ShouldBeTrue)
				s, ok := r.Values["notes"].AsString()
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(s, convey.ShouldEqual, "solid auton")
			})
		})

		convey.Convey("When saving twice", func() {
			first := model.DefaultSnapshot()
			first.Theme = model.ThemeLight
			convey.So(store.Save(ctx, first), convey.ShouldBeNil)

			second := model.DefaultSnapshot()
			convey.So(store.Save(ctx, second), convey.ShouldBeNil)

			convey.Convey("Then the slot should hold the latest write", func() {
				convey.So(store.Load(ctx).Theme, convey.ShouldEqual, model.ThemeDark)
			})
		})

		convey.Convey("When the store was closed and reopened", func() {
			snap := model.DefaultSnapshot()
			snap.Theme = model.ThemeLight
			convey.So(store.Save(ctx, snap), convey.ShouldBeNil)
			convey.So(store.Close(), convey.ShouldBeNil)

			reopened, err := persistence.NewStore(path)
			convey.So(err, convey.ShouldBeNil)
			defer func() { _ = reopened.Close() }()

			convey.Convey("Then the snapshot should still be there", func() {
				convey.So(reopened.Load(ctx).Theme, convey.ShouldEqual, model.ThemeLight)
			})
		})
	})
}

func TestStoreSlots(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given two stores on the same database with different slots", t, func() {
		path := filepath.Join(t.TempDir(), "scout.db")
		a, err := persistence.NewStore(path, persistence.WithSlot("slot-a"))
		convey.So(err, convey.ShouldBeNil)
		defer func() { _ = a.Close() }()
		b, err := persistence.NewStore(path, persistence.WithSlot("slot-b"))
		convey.So(err, convey.ShouldBeNil)
		defer func() { _ = b.Close() }()

		convey.Convey("When each saves a different snapshot", func() {
			light := model.DefaultSnapshot()
			light.Theme = model.ThemeLight
			convey.So(a.Save(ctx, light), convey.ShouldBeNil)
			convey.So(b.Save(ctx, model.DefaultSnapshot()), convey.ShouldBeNil)

			convey.Convey("Then the slots should not interfere", func() {
				convey.So(a.Load(ctx).Theme, convey.ShouldEqual, model.ThemeLight)
				convey.So(b.Load(ctx).Theme, convey.ShouldEqual, model.ThemeDark)
			})
		})
	})
}

func TestStoreFallbacks(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given a slot holding a payload that is not a snapshot", t, func() {
		path := filepath.Join(t.TempDir(), "scout.db")
		store, err := persistence.NewStore(path)
		convey.So(err, convey.ShouldBeNil)
		defer func() { _ = store.Close() }()

		writeRawPayload(t, path, persistence.DefaultSlot, []byte("{not json"))

		convey.Convey("When loading", func() {
			snap := store.Load(ctx)

			convey.Convey("Then the default snapshot should come back", func() {
				convey.So(snap.Schema, convey.ShouldHaveLength, 6)
				convey.So(snap.Records, convey.ShouldBeEmpty)
			})
		})
	})

	convey.Convey("Given a slot written by an older shape missing sections", t, func() {
		path := filepath.Join(t.TempDir(), "scout.db")
		store, err := persistence.NewStore(path)
		convey.So(err, convey.ShouldBeNil)
		defer func() { _ = store.Close() }()

		writeRawPayload(t, path, persistence.DefaultSlot, []byte(`{"theme":"light"}`))

		convey.Convey("When loading", func() {
			snap := store.Load(ctx)

			convey.Convey("Then missing sections should default and present ones load", func() {
				convey.So(snap.Theme, convey.ShouldEqual, model.ThemeLight)
				convey.So(snap.Schema, convey.ShouldHaveLength, 6)
				convey.So(snap.Records, convey.ShouldNotBeNil)
				convey.So(snap.Records, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the stored theme is unknown", func() {
			writeRawPayload(t, path, persistence.DefaultSlot, []byte(`{"schema":[],"matches":[],"theme":"sepia"}`))
			snap := store.Load(ctx)

			convey.Convey("Then the theme should default but empty sections stay empty", func() {
				convey.So(snap.Theme, convey.ShouldEqual, model.ThemeDark)
				convey.So(snap.Schema, convey.ShouldBeEmpty)
			})
		})
	})
}
