package dogs

import (
	"context"
	"testing"

	"github.com/spetersoncode/statekit"
	"github.com/spetersoncode/statekit/apicache"
	"github.com/spetersoncode/statekit/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSource(t *testing.T) {
	ctx := context.Background()

	t.Run("serves built-in catalog in id order", func(t *testing.T) {
		breeds, err := NewStaticSource().Breeds(ctx, 3)
		require.NoError(t, err)
		require.Len(t, breeds, 3)
		assert.Equal(t, "Affenpinscher", breeds[0].Name)
		assert.Equal(t, 3, breeds[2].ID)
	})

	t.Run("caps limit at catalog size", func(t *testing.T) {
		src := NewStaticSource(Breed{ID: 2, Name: "b"}, Breed{ID: 1, Name: "a"})
		breeds, err := src.Breeds(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []Breed{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}, breeds)
	})

	t.Run("rejects negative limit", func(t *testing.T) {
		_, err := NewStaticSource().Breeds(ctx, -1)
		assert.True(t, statekit.IsPermanent(err))
	})

	t.Run("honors cancellation", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := NewStaticSource().Breeds(cctx, 1)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFetchBreeds(t *testing.T) {
	api, err := apicache.New(apicache.Config{Endpoints: Endpoints(NewStaticSource())})
	require.NoError(t, err)
	defer api.Close()

	s, err := store.Configure([]statekit.Slice{api}, store.WithMiddleware(api.Middleware()))
	require.NoError(t, err)

	s.Dispatch(FetchBreeds(api, 5))
	api.Wait()

	breeds, entry := SelectBreeds(api, s.GetState(), 5)
	assert.Equal(t, apicache.StatusFulfilled, entry.Status)
	assert.Len(t, breeds, 5)

	t.Run("default limit", func(t *testing.T) {
		s.Dispatch(FetchBreeds(api, 0))
		api.Wait()

		breeds, entry := SelectBreeds(api, s.GetState(), DefaultLimit)
		assert.Equal(t, apicache.StatusFulfilled, entry.Status)
		assert.Len(t, breeds, DefaultLimit)
		assert.Equal(t, "fetchBreeds(10)", apicache.Key(entry.Endpoint, entry.Arg))
	})

	t.Run("release drops subscription", func(t *testing.T) {
		s.Dispatch(ReleaseBreeds(api, 5))
		assert.Zero(t, api.Subscribers(s.GetState(), EndpointFetchBreeds, 5))
	})
}

func TestEndpointRejectsBadArgument(t *testing.T) {
	eps := Endpoints(NewStaticSource())
	require.Len(t, eps, 1)

	_, err := eps[0].Fetch(context.Background(), "ten")
	assert.True(t, statekit.IsPermanent(err))
}
