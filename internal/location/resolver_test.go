package location

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/i474232898/wfetch/internal/mocks"
	"github.com/i474232898/wfetch/internal/weather"
)

var parisCandidates = []weather.Location{
	{ID: 2801268, Name: "Paris", Region: "Ile-de-France", Country: "France", Lat: 48.87, Lon: 2.33, URL: "paris-ile-de-france-france"},
	{ID: 2709462, Name: "Paris", Region: "Texas", Country: "United States of America", Lat: 33.66, Lon: -95.56, URL: "paris-texas-united-states-of-america"},
}

var parisLabels = []string{
	"Paris, Ile-de-France, France",
	"Paris, Texas, United States of America",
}

type fixture struct {
	prompter *mocks.MockPrompter
	searcher *mocks.MockSearcher
	store    *mocks.MockFieldWriter
	resolver *Resolver
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		prompter: mocks.NewMockPrompter(ctrl),
		searcher: mocks.NewMockSearcher(ctrl),
		store:    mocks.NewMockFieldWriter(ctrl),
	}
	f.resolver = NewResolver(f.searcher, f.prompter, f.store, nil)
	return f
}

func TestResolve(t *testing.T) {
	f := newFixture(t)

	gomock.InOrder(
		f.prompter.EXPECT().Input("Search your location").Return("  Paris ", nil),
		f.searcher.EXPECT().Search(gomock.Any(), "ABC123", "Paris").Return(parisCandidates, nil),
		f.prompter.EXPECT().Select("Choose the location", parisLabels).Return(1, nil),
		f.store.EXPECT().SetField("query_location", "paris-texas-united-states-of-america").Return(nil),
	)

	Convey("Resolve stores the chosen reference", t, func() {
		loc, err := f.resolver.Resolve(context.Background(), "ABC123")
		So(err, ShouldBeNil)
		So(loc.ID, ShouldEqual, 2709462)
		So(loc.Label(), ShouldEqual, "Paris, Texas, United States of America")
	})
}

func TestResolveNoMatches(t *testing.T) {
	f := newFixture(t)

	f.prompter.EXPECT().Input(gomock.Any()).Return("Atlantis", nil)
	f.searcher.EXPECT().Search(gomock.Any(), "ABC123", "Atlantis").Return([]weather.Location{}, nil)

	Convey("Zero candidates are reported, not indexed", t, func() {
		_, err := f.resolver.Resolve(context.Background(), "ABC123")
		So(errors.Is(err, ErrNoMatches), ShouldBeTrue)
	})
}

func TestResolveInvalidSelection(t *testing.T) {
	for _, idx := range []int{len(parisCandidates), -1} {
		f := newFixture(t)

		f.prompter.EXPECT().Input(gomock.Any()).Return("Paris", nil)
		f.searcher.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any()).Return(parisCandidates, nil)
		f.prompter.EXPECT().Select(gomock.Any(), gomock.Any()).Return(idx, nil)

		Convey("Out of range selection", t, func() {
			_, err := f.resolver.Resolve(context.Background(), "ABC123")
			So(errors.Is(err, ErrInvalidSelection), ShouldBeTrue)
		})
	}
}

func TestResolveMissingKey(t *testing.T) {
	f := newFixture(t)

	Convey("Setup cannot run without a key", t, func() {
		_, err := f.resolver.Resolve(context.Background(), "")
		So(errors.Is(err, weather.ErrMissingCredential), ShouldBeTrue)
	})
}

func TestResolveSearchFailure(t *testing.T) {
	f := newFixture(t)

	f.prompter.EXPECT().Input(gomock.Any()).Return("Paris", nil)
	f.searcher.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, weather.ErrFetch)

	Convey("Fetch errors propagate", t, func() {
		_, err := f.resolver.Resolve(context.Background(), "ABC123")
		So(errors.Is(err, weather.ErrFetch), ShouldBeTrue)
	})
}

func TestResolveStoreFailure(t *testing.T) {
	f := newFixture(t)
	diskFull := errors.New("no space left on device")

	f.prompter.EXPECT().Input(gomock.Any()).Return("Paris", nil)
	f.searcher.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any()).Return(parisCandidates, nil)
	f.prompter.EXPECT().Select(gomock.Any(), gomock.Any()).Return(0, nil)
	f.store.EXPECT().SetField("query_location", "paris-ile-de-france-france").Return(diskFull)

	Convey("Write errors propagate", t, func() {
		_, err := f.resolver.Resolve(context.Background(), "ABC123")
		So(errors.Is(err, diskFull), ShouldBeTrue)
	})
}

func TestPromptFreeTextQuery(t *testing.T) {
	f := newFixture(t)
	interrupted := errors.New("^C")

	gomock.InOrder(
		f.prompter.EXPECT().Input(gomock.Any()).Return("   ", nil),
		f.prompter.EXPECT().Input(gomock.Any()).Return("", interrupted),
	)

	Convey("Blank and interrupted input", t, func() {
		_, err := f.resolver.PromptFreeTextQuery()
		So(errors.Is(err, ErrEmptyQuery), ShouldBeTrue)

		_, err = f.resolver.PromptFreeTextQuery()
		So(errors.Is(err, interrupted), ShouldBeTrue)
	})
}

func TestPromptSelect(t *testing.T) {
	f := newFixture(t)

	f.prompter.EXPECT().Select("Choose the location", parisLabels).Return(0, nil)

	Convey("PromptSelect", t, func() {
		idx, err := f.resolver.PromptSelect(parisCandidates)
		So(err, ShouldBeNil)
		So(idx, ShouldEqual, 0)

		_, err = f.resolver.PromptSelect(nil)
		So(errors.Is(err, ErrNoMatches), ShouldBeTrue)
	})
}

func TestCheckIndex(t *testing.T) {
	Convey("checkIndex", t, func() {
		So(checkIndex(0, 1), ShouldBeNil)
		So(checkIndex(2, 3), ShouldBeNil)
		So(errors.Is(checkIndex(3, 3), ErrInvalidSelection), ShouldBeTrue)
		So(errors.Is(checkIndex(-1, 3), ErrInvalidSelection), ShouldBeTrue)
		So(errors.Is(checkIndex(0, 0), ErrInvalidSelection), ShouldBeTrue)
	})
}
