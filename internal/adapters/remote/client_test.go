package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/scoutbase/internal/adapters/remote"
	"github.com/okian/scoutbase/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func sampleRecord() model.MatchRecord {
	return model.MatchRecord{
		ID:          "rec-1",
		MatchNumber: "12",
		TeamNumber:  "254",
		Alliance:    model.AllianceA,
		Values: map[string]model.Value{
			"auto_score_top": model.Number(5),
			"notes":          model.Text("clean run"),
		},
		RecordedAt: 1_700_000_000_000,
	}
}

func TestPushRecord(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given a sync client", t, func() {
		client := remote.NewClient()

		convey.Convey("When pushing to a live endpoint", func() {
			var gotMethod, gotContentType string
			var gotBody model.MatchRecord
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotContentType = r.Header.Get("Content-Type")
				_ = json.NewDecoder(r.Body).Decode(&gotBody)
				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			err := client.PushRecord(ctx, sampleRecord(), srv.URL)

			convey.Convey("Then the record should arrive as a JSON POST", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(gotMethod, convey.ShouldEqual, http.MethodPost)
				convey.So(gotContentType, convey.ShouldEqual, "application/json")
				convey.So(gotBody.ID, convey.ShouldEqual, "rec-1")
				convey.So(gotBody.TeamNumber, convey.ShouldEqual, "254")
				n, ok := gotBody.Values["auto_score_top"].AsNumber()
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(n, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When the endpoint returns a server error", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer srv.Close()

			err := client.PushRecord(ctx, sampleRecord(), srv.URL)

			convey.Convey("Then the push should still count as delivered", func() {
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the endpoint is unreachable", func() {
			err := client.PushRecord(ctx, sampleRecord(), "http://127.0.0.1:1")

			convey.Convey("Then the push should fail", func() {
				convey.So(errors.Is(err, remote.ErrPushFailed), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When no endpoint is configured", func() {
			err := client.PushRecord(ctx, sampleRecord(), "")

			convey.Convey("Then the push should be skipped", func() {
				convey.So(errors.Is(err, remote.ErrNoEndpoint), convey.ShouldBeTrue)
			})
		})
	})
}

func TestPullAll(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given a sync client", t, func() {
		client := remote.NewClient()

		convey.Convey("When the endpoint serves a record array", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode([]model.MatchRecord{sampleRecord()})
			}))
			defer srv.Close()

			records, err := client.PullAll(ctx, srv.URL)

			convey.Convey("Then the records should parse", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(records, convey.ShouldHaveLength, 1)
				convey.So(records[0].ID, convey.ShouldEqual, "rec-1")
			})
		})

		convey.Convey("When the endpoint serves an empty array", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("[]"))
			}))
			defer srv.Close()

			records, err := client.PullAll(ctx, srv.URL)

			convey.Convey("Then the pull should succeed with no records", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(records, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the endpoint serves a JSON object instead of an array", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"records":[]}`))
			}))
			defer srv.Close()

			_, err := client.PullAll(ctx, srv.URL)

			convey.Convey("Then the pull should fail as malformed", func() {
				convey.So(errors.Is(err, remote.ErrMalformedPayload), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the endpoint returns a non-2xx status", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			}))
			defer srv.Close()

			_, err := client.PullAll(ctx, srv.URL)

			convey.Convey("Then the pull should fail", func() {
				convey.So(errors.Is(err, remote.ErrPullFailed), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When no endpoint is configured", func() {
			_, err := client.PullAll(ctx, "")

			convey.Convey("Then the pull should fail fast", func() {
				convey.So(errors.Is(err, remote.ErrNoEndpoint), convey.ShouldBeTrue)
			})
		})
	})
}

func TestBusyGate(t *testing.T) {
	convey.Convey("Given a sync client", t, func() {
		client := remote.NewClient()

		convey.Convey("When the gate is free", func() {
			convey.So(client.Busy(), convey.ShouldBeFalse)

			convey.Convey("Then the first acquire should win", func() {
				convey.So(client.TryAcquire(), convey.ShouldBeTrue)
				convey.So(client.Busy(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the gate is held", func() {
			convey.So(client.TryAcquire(), convey.ShouldBeTrue)

			convey.Convey("Then a second acquire should be refused", func() {
				convey.So(client.TryAcquire(), convey.ShouldBeFalse)
			})

			convey.Convey("And after release the gate should open again", func() {
				client.Release()
				convey.So(client.Busy(), convey.ShouldBeFalse)
				convey.So(client.TryAcquire(), convey.ShouldBeTrue)
			})
		})
	})
}
