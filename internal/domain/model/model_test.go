package model_test

import (
	"encoding/json"
	"testing"

	model "github.com/okian/scoutbase/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestFieldKind(t *testing.T) {
	convey.Convey("Given field kinds", t, func() {
		convey.Convey("When checking validity", func() {
			convey.Convey("Then the five known kinds should be valid", func() {
				convey.So(model.KindCounter.Valid(), convey.ShouldBeTrue)
				convey.So(model.KindDirect.Valid(), convey.ShouldBeTrue)
				convey.So(model.KindGrade.Valid(), convey.ShouldBeTrue)
				convey.So(model.KindText.Valid(), convey.ShouldBeTrue)
				convey.So(model.KindFlag.Valid(), convey.ShouldBeTrue)
			})

			convey.Convey("Then unknown kinds should be invalid", func() {
				convey.So(model.FieldKind("slider").Valid(), convey.ShouldBeFalse)
				convey.So(model.FieldKind("").Valid(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When checking numeric participation", func() {
			convey.Convey("Then only counter and direct should be numeric", func() {
				convey.So(model.KindCounter.Numeric(), convey.ShouldBeTrue)
				convey.So(model.KindDirect.Numeric(), convey.ShouldBeTrue)
				convey.So(model.KindGrade.Numeric(), convey.ShouldBeFalse)
				convey.So(model.KindText.Numeric(), convey.ShouldBeFalse)
				convey.So(model.KindFlag.Numeric(), convey.ShouldBeFalse)
			})
		})
	})
}

func TestFieldDefValidate(t *testing.T) {
	convey.Convey("Given a field definition", t, func() {
		minV := 0.0
		maxV := 10.0

		convey.Convey("When the definition is well formed", func() {
			def := model.FieldDef{ID: "cargo", Label: "Cargo scored", Kind: model.KindCounter, Min: &minV, Max: &maxV}

			convey.Convey("Then validation should pass", func() {
				convey.So(def.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the id is blank", func() {
			def := model.FieldDef{ID: "  ", Label: "Cargo scored", Kind: model.KindCounter}

			convey.Convey("Then validation should fail", func() {
				convey.So(def.Validate(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the label is blank", func() {
			def := model.FieldDef{ID: "cargo", Label: "", Kind: model.KindCounter}

			convey.Convey("Then validation should fail", func() {
				convey.So(def.Validate(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the kind is unknown", func() {
			def := model.FieldDef{ID: "cargo", Label: "Cargo scored", Kind: "slider"}

			convey.Convey("Then validation should fail", func() {
				convey.So(def.Validate(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When min exceeds max", func() {
			def := model.FieldDef{ID: "cargo", Label: "Cargo scored", Kind: model.KindCounter, Min: &maxV, Max: &minV}

			convey.Convey("Then validation should fail", func() {
				convey.So(def.Validate(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When only one bound is set", func() {
			def := model.FieldDef{ID: "cargo", Label: "Cargo scored", Kind: model.KindDirect, Min: &minV}

			convey.Convey("Then validation should pass", func() {
				convey.So(def.Validate(), convey.ShouldBeNil)
			})
		})
	})
}

func TestGradeScale(t *testing.T) {
	convey.Convey("Given the grade scale", t, func() {
		convey.Convey("Then it should run from S to F, best first", func() {
			convey.So(model.GradeScale, convey.ShouldResemble, []string{"S", "A", "B", "C", "D", "E", "F"})
		})

		convey.Convey("Then the default grade should sit mid-scale", func() {
			convey.So(model.DefaultGrade, convey.ShouldEqual, "C")
			convey.So(model.ValidGrade(model.DefaultGrade), convey.ShouldBeTrue)
		})

		convey.Convey("Then off-scale grades should be rejected", func() {
			convey.So(model.ValidGrade("G"), convey.ShouldBeFalse)
			convey.So(model.ValidGrade("s"), convey.ShouldBeFalse)
			convey.So(model.ValidGrade(""), convey.ShouldBeFalse)
		})
	})
}

func TestValueJSON(t *testing.T) {
	convey.Convey("Given recorded values", t, func() {
		convey.Convey("When marshaling a numeric value", func() {
			data, err := json.Marshal(model.Number(42))

			convey.Convey("Then it should emit a bare number", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldEqual, "42")
			})
		})

		convey.Convey("When marshaling a text value", func() {
			data, err := json.Marshal(model.Text("broke down mid-match"))

			convey.Convey("Then it should emit a bare string", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldEqual, `"broke down mid-match"`)
			})
		})

		convey.Convey("When marshaling a grade value", func() {
			data, err := json.Marshal(model.Grade("A"))

			convey.Convey("Then it should emit a bare string", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldEqual, `"A"`)
			})
		})

		convey.Convey("When marshaling a flag value", func() {
			data, err := json.Marshal(model.Bool(true))

			convey.Convey("Then it should emit a bare boolean", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldEqual, "true")
			})
		})

		convey.Convey("When unmarshaling scalars", func() {
			var num, str, flag model.Value

			convey.So(json.Unmarshal([]byte("3.5"), &num), convey.ShouldBeNil)
			convey.So(json.Unmarshal([]byte(`"B"`), &str), convey.ShouldBeNil)
			convey.So(json.Unmarshal([]byte("false"), &flag), convey.ShouldBeNil)

			convey.Convey("Then each should carry its scalar shape", func() {
				n, ok := num.AsNumber()
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(n, convey.ShouldEqual, 3.5)

				s, ok := str.AsString()
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(s, convey.ShouldEqual, "B")

				b, ok := flag.AsFlag()
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(b, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When unmarshaling a non-scalar", func() {
			var v model.Value
			err := json.Unmarshal([]byte(`{"nested":1}`), &v)

			convey.Convey("Then it should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When round-tripping a grade through JSON", func() {
			data, err := json.Marshal(model.Grade("S"))
			convey.So(err, convey.ShouldBeNil)

			var back model.Value
			convey.So(json.Unmarshal(data, &back), convey.ShouldBeNil)

			convey.Convey("Then it should compare equal to the original", func() {
				convey.So(back.Equal(model.Grade("S")), convey.ShouldBeTrue)
			})
		})
	})
}

func TestMatchRecordValidate(t *testing.T) {
	convey.Convey("Given a match record", t, func() {
		base := model.MatchRecord{
			ID:          "rec-1",
			MatchNumber: "12",
			TeamNumber:  "254",
			Alliance:    model.AllianceA,
			Values:      map[string]model.Value{"notes": model.Text("fast cycles")},
			RecordedAt:  1_700_000_000_000,
		}

		convey.Convey("When the record is well formed", func() {
			convey.So(base.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When the id is missing", func() {
			rec := base
			rec.ID = ""
			convey.So(rec.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("When the match number is missing", func() {
			rec := base
			rec.MatchNumber = " "
			convey.So(rec.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("When the team number is missing", func() {
			rec := base
			rec.TeamNumber = ""
			convey.So(rec.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("When the alliance is unknown", func() {
			rec := base
			rec.Alliance = "red"
			convey.So(rec.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("When the observer name is empty", func() {
			rec := base
			rec.ObserverName = ""

			convey.Convey("Then validation should still pass", func() {
				convey.So(rec.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When cloning values", func() {
			clone := base.CloneValues()
			clone["notes"] = model.Text("mutated")

			convey.Convey("Then the original map should be untouched", func() {
				s, _ := base.Values["notes"].AsString()
				convey.So(s, convey.ShouldEqual, "fast cycles")
			})
		})
	})
}

func TestDefaultSnapshot(t *testing.T) {
	convey.Convey("Given the default snapshot", t, func() {
		snap := model.DefaultSnapshot()

		convey.Convey("Then it should carry the six built-in fields", func() {
			convey.So(snap.Schema, convey.ShouldHaveLength, 6)
			ids := make([]string, 0, len(snap.Schema))
			for _, d := range snap.Schema {
				ids = append(ids, d.ID)
				convey.So(d.Validate(), convey.ShouldBeNil)
			}
			convey.So(ids, convey.ShouldResemble, []string{
				"auto_mobility", "auto_score_top", "tele_score_manual",
				"driver_skill", "defense_quality", "notes",
			})
		})

		convey.Convey("Then records should be empty but non-nil", func() {
			convey.So(snap.Records, convey.ShouldNotBeNil)
			convey.So(snap.Records, convey.ShouldBeEmpty)
		})

		convey.Convey("Then the theme should default to dark", func() {
			convey.So(snap.Theme, convey.ShouldEqual, model.ThemeDark)
		})

		convey.Convey("Then sync should be disabled", func() {
			convey.So(snap.Settings.RemoteEndpointURL, convey.ShouldEqual, "")
		})
	})
}

func TestSnapshotClone(t *testing.T) {
	convey.Convey("Given a populated snapshot", t, func() {
		snap := model.DefaultSnapshot()
		snap.Records = []model.MatchRecord{{
			ID:          "rec-1",
			MatchNumber: "3",
			TeamNumber:  "1678",
			Alliance:    model.AllianceB,
			Values:      map[string]model.Value{"auto_score_top": model.Number(4)},
			RecordedAt:  1_700_000_000_000,
		}}

		convey.Convey("When cloning and mutating the clone", func() {
			clone := snap.Clone()
			clone.Schema[0].Label = "changed"
			*clone.Schema[1].Max = 1
			clone.Records[0].Values["auto_score_top"] = model.Number(99)

			convey.Convey("Then the original should be untouched", func() {
				convey.So(snap.Schema[0].Label, convey.ShouldEqual, "Auto mobility")
				convey.So(*snap.Schema[1].Max, convey.ShouldEqual, 99)
				n, _ := snap.Records[0].Values["auto_score_top"].AsNumber()
				convey.So(n, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When looking up fields by id", func() {
			def, ok := snap.FieldByID("driver_skill")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(def.Kind, convey.ShouldEqual, model.KindGrade)

			_, ok = snap.FieldByID("nope")
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("When round-tripping through JSON", func() {
			data, err := json.Marshal(snap)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(data), convey.ShouldContainSubstring, `"matches"`)

			var back model.Snapshot
			convey.So(json.Unmarshal(data, &back), convey.ShouldBeNil)

			convey.Convey("Then the structural content should survive", func() {
				convey.So(back.Schema, convey.ShouldHaveLength, len(snap.Schema))
				convey.So(back.Records, convey.ShouldHaveLength, 1)
				convey.So(back.Records[0].ID, convey.ShouldEqual, "rec-1")
				convey.So(back.Theme, convey.ShouldEqual, model.ThemeDark)
			})
		})
	})
}
