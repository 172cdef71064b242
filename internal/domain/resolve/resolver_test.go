package resolve_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/fastbreak/internal/domain/resolve"
	"github.com/okian/fastbreak/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	m.Run()
}

func TestTokenSortRatio(t *testing.T) {
	Convey("Given the token-sort similarity metric", t, func() {
		Convey("Then identical names score 100", func() {
			So(resolve.TokenSortRatio("Jane Smith", "Jane Smith"), ShouldEqual, 100)
		})

		Convey("Then token order and case do not matter", func() {
			So(resolve.TokenSortRatio("Smith Jane", "jane smith"), ShouldEqual, 100)
			So(resolve.TokenSortRatio("  jane   SMITH ", "Smith Jane"), ShouldEqual, 100)
		})

		Convey("Then unrelated names score low", func() {
			So(resolve.TokenSortRatio("Jane Smith", "Qqqq Zzzz"), ShouldBeLessThan, 30)
		})

		Convey("Then scores stay within [0, 100]", func() {
			So(resolve.TokenSortRatio("a", "zzzzzzzzzzzzzzzz"), ShouldBeGreaterThanOrEqualTo, 0)
			So(resolve.TokenSortRatio("", ""), ShouldEqual, 100)
		})
	})
}

func TestResolverMatching(t *testing.T) {
	ctx := context.Background()

	Convey("Given a canonical roster", t, func() {
		known := []resolve.KnownName{
			{Name: "Jane Smith", ID: "1001"},
			{Name: "Aja Wilson", ID: "1002"},
			{Name: "Janet Smithson", ID: "1003"},
		}

		Convey("When an observed name matches closely", func() {
			r, err := resolve.New(known)
			So(err, ShouldBeNil)

			report, err := r.Resolve(ctx, []string{"Smith Jane"})
			So(err, ShouldBeNil)
			So(report.Matches, ShouldHaveLength, 1)
			So(report.Matches[0].CanonicalName, ShouldEqual, "Jane Smith")
			So(report.Matches[0].CanonicalID, ShouldEqual, "1001")
			So(report.Matches[0].Score, ShouldEqual, 100)
			So(report.Matches[0].Method, ShouldEqual, resolve.MethodFuzzy)
		})

		Convey("When no candidate clears the confidence gate", func() {
			r, err := resolve.New(known)
			So(err, ShouldBeNil)

			report, err := r.Resolve(ctx, []string{"Qqqq Zzzz"})
			So(err, ShouldBeNil)
			So(report.Matches, ShouldBeEmpty)
			So(report.Dropped, ShouldHaveLength, 1)
			So(report.Dropped[0].ObservedName, ShouldEqual, "Qqqq Zzzz")
			So(report.Dropped[0].BestCandidate, ShouldNotBeBlank)
			So(report.Matched(), ShouldEqual, 0)
			So(report.Total(), ShouldEqual, 1)
		})

		Convey("When a manual override exists for the observed name", func() {
			r, err := resolve.New(known,
				resolve.WithOverrides(map[string]string{"J. Smith": "Janet Smithson"}))
			So(err, ShouldBeNil)

			report, err := r.Resolve(ctx, []string{"J. Smith"})
			So(err, ShouldBeNil)
			So(report.Matches, ShouldHaveLength, 1)
			So(report.Matches[0].CanonicalName, ShouldEqual, "Janet Smithson")
			So(report.Matches[0].CanonicalID, ShouldEqual, "1003")
			So(report.Matches[0].Score, ShouldEqual, 100)
			So(report.Matches[0].Method, ShouldEqual, resolve.MethodManual)
		})

		Convey("When an override points outside the roster", func() {
			r, err := resolve.New(known,
				resolve.WithOverrides(map[string]string{"J. Smith": "Nobody Here"}))
			So(err, ShouldBeNil)

			report, err := r.Resolve(ctx, []string{"J. Smith", "Aja Wilson"})
			So(err, ShouldBeNil)

			Convey("Then the bad name degrades and the rest still resolve", func() {
				So(report.LookupErrors, ShouldEqual, 1)
				So(report.Matches, ShouldHaveLength, 1)
				So(report.Matches[0].CanonicalID, ShouldEqual, "1002")
				So(report.Total(), ShouldEqual, 2)
			})
		})

		Convey("When duplicate observed names appear", func() {
			r, err := resolve.New(known)
			So(err, ShouldBeNil)

			report, err := r.Resolve(ctx, []string{"Jane Smith", "Jane Smith"})
			So(err, ShouldBeNil)
			So(report.Matches, ShouldHaveLength, 2)
		})
	})
}

func TestResolverTieBreak(t *testing.T) {
	ctx := context.Background()

	Convey("Given two candidates scoring identically", t, func() {
		// Both are one edit from the observed name, same length, so the
		// scores tie exactly.
		observed := []string{"abcd efgh"}
		first := resolve.KnownName{Name: "abce efgh", ID: "first"}
		second := resolve.KnownName{Name: "abcf efgh", ID: "second"}

		Convey("When the roster lists them in one order", func() {
			r, err := resolve.New([]resolve.KnownName{first, second}, resolve.WithThreshold(50))
			So(err, ShouldBeNil)

			report, err := r.Resolve(ctx, observed)
			So(err, ShouldBeNil)
			So(report.Matches, ShouldHaveLength, 1)
			So(report.Matches[0].CanonicalID, ShouldEqual, "first")
		})

		Convey("When the roster order is reversed", func() {
			r, err := resolve.New([]resolve.KnownName{second, first}, resolve.WithThreshold(50))
			So(err, ShouldBeNil)

			report, err := r.Resolve(ctx, observed)
			So(err, ShouldBeNil)
			So(report.Matches[0].CanonicalID, ShouldEqual, "second")
		})
	})
}

func TestResolverPreconditions(t *testing.T) {
	ctx := context.Background()

	Convey("Given unusable inputs", t, func() {
		Convey("When the roster is empty", func() {
			_, err := resolve.New(nil)
			So(errors.Is(err, resolve.ErrNoKnownNames), ShouldBeTrue)
		})

		Convey("When the roster has only blank names", func() {
			_, err := resolve.New([]resolve.KnownName{{Name: "   ", ID: "1"}})
			So(errors.Is(err, resolve.ErrNoKnownNames), ShouldBeTrue)
		})

		Convey("When the observed list is empty", func() {
			r, err := resolve.New([]resolve.KnownName{{Name: "Jane Smith", ID: "1"}})
			So(err, ShouldBeNil)
			_, err = r.Resolve(ctx, nil)
			So(errors.Is(err, resolve.ErrNoObservedNames), ShouldBeTrue)
		})

		Convey("When duplicate roster names carry different ids", func() {
			r, err := resolve.New([]resolve.KnownName{
				{Name: "Jane Smith", ID: "1"},
				{Name: "Jane Smith", ID: "2"},
			})
			So(err, ShouldBeNil)

			report, err := r.Resolve(ctx, []string{"Jane Smith"})
			So(err, ShouldBeNil)

			Convey("Then the first-seen id wins", func() {
				So(report.Matches[0].CanonicalID, ShouldEqual, "1")
			})
		})
	})
}
