package browse

import (
	"context"
	"errors"
	"testing"

	"github.com/kholland/moviedeck/pkg/moviesvc"
	"github.com/kholland/moviedeck/pkg/moviesvc/mocks"
	"github.com/kholland/moviedeck/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func descriptorForPage(index int) query.Descriptor {
	s := query.NewState()
	s.SetPageIndex(index)
	return query.Compile(s.Snapshot())
}

func pageWithTitles(page int, titles ...string) *moviesvc.MoviePage {
	results := make([]moviesvc.Movie, 0, len(titles))
	for i, title := range titles {
		results = append(results, moviesvc.Movie{ID: i + 1, Title: title})
	}
	return &moviesvc.MoviePage{
		Page:         page,
		TotalResults: len(titles),
		TotalPages:   1,
		Results:      results,
	}
}

func TestCatalog_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes the fetched page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClientInterface(ctrl)
		catalog := NewCatalog(client)

		desc := descriptorForPage(0)
		client.EXPECT().DiscoverMovies(gomock.Any(), desc).Return(pageWithTitles(1, "Heat", "Ronin"), nil)

		require.NoError(t, catalog.Refresh(ctx, desc))

		view := catalog.View()
		assert.False(t, view.Loading)
		assert.Equal(t, 2, view.Page.TotalResults)
		assert.Equal(t, "Heat", view.Page.Results[0].Title)
	})

	t.Run("slow early response never overwrites a fast later one", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClientInterface(ctrl)
		catalog := NewCatalog(client)

		desc1 := descriptorForPage(0)
		desc2 := descriptorForPage(1)

		r1Started := make(chan struct{})
		r1Release := make(chan struct{})
		client.EXPECT().DiscoverMovies(gomock.Any(), desc1).DoAndReturn(
			func(context.Context, query.Descriptor) (*moviesvc.MoviePage, error) {
				close(r1Started)
				<-r1Release
				return pageWithTitles(1, "stale"), nil
			})
		client.EXPECT().DiscoverMovies(gomock.Any(), desc2).Return(pageWithTitles(2, "fresh"), nil)

		r1Done := make(chan error, 1)
		go func() {
			r1Done <- catalog.Refresh(ctx, desc1)
		}()
		<-r1Started

		require.NoError(t, catalog.Refresh(ctx, desc2))
		assert.Equal(t, "fresh", catalog.View().Page.Results[0].Title)

		close(r1Release)
		require.NoError(t, <-r1Done)

		view := catalog.View()
		assert.Equal(t, "fresh", view.Page.Results[0].Title)
		assert.False(t, view.Loading)
	})

	t.Run("stale completion does not resolve loading early", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClientInterface(ctrl)
		catalog := NewCatalog(client)

		desc1 := descriptorForPage(0)
		desc2 := descriptorForPage(1)

		r1Started := make(chan struct{})
		r1Release := make(chan struct{})
		r2Started := make(chan struct{})
		r2Release := make(chan struct{})
		client.EXPECT().DiscoverMovies(gomock.Any(), desc1).DoAndReturn(
			func(context.Context, query.Descriptor) (*moviesvc.MoviePage, error) {
				close(r1Started)
				<-r1Release
				return pageWithTitles(1, "stale"), nil
			})
		client.EXPECT().DiscoverMovies(gomock.Any(), desc2).DoAndReturn(
			func(context.Context, query.Descriptor) (*moviesvc.MoviePage, error) {
				close(r2Started)
				<-r2Release
				return pageWithTitles(2, "fresh"), nil
			})

		r1Done := make(chan error, 1)
		r2Done := make(chan error, 1)
		go func() {
			r1Done <- catalog.Refresh(ctx, desc1)
		}()
		<-r1Started
		go func() {
			r2Done <- catalog.Refresh(ctx, desc2)
		}()
		<-r2Started

		assert.True(t, catalog.View().Loading)

		// the stale request settling must not flip loading off
		close(r1Release)
		require.NoError(t, <-r1Done)
		assert.True(t, catalog.View().Loading)

		close(r2Release)
		require.NoError(t, <-r2Done)

		view := catalog.View()
		assert.False(t, view.Loading)
		assert.Equal(t, "fresh", view.Page.Results[0].Title)
	})

	t.Run("failure keeps the last accepted page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClientInterface(ctrl)
		catalog := NewCatalog(client)

		desc1 := descriptorForPage(0)
		titles := make([]string, 20)
		for i := range titles {
			titles[i] = "movie"
		}
		client.EXPECT().DiscoverMovies(gomock.Any(), desc1).Return(pageWithTitles(1, titles...), nil)
		require.NoError(t, catalog.Refresh(ctx, desc1))

		desc2 := descriptorForPage(1)
		client.EXPECT().DiscoverMovies(gomock.Any(), desc2).Return(nil, errors.New("service unavailable"))

		err := catalog.Refresh(ctx, desc2)
		assert.ErrorContains(t, err, "refreshing catalog")

		view := catalog.View()
		assert.Len(t, view.Page.Results, 20)
		assert.False(t, view.Loading)
	})
}
