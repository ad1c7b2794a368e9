// Package dogs defines the dog breeds feature served through the API cache
// slice.
package dogs

import (
	"context"
	"fmt"
	"sort"

	"github.com/spetersoncode/statekit"
	"github.com/spetersoncode/statekit/apicache"
)

// EndpointFetchBreeds is the name of the breeds query.
const EndpointFetchBreeds = "fetchBreeds"

// DefaultLimit is the number of breeds requested when no limit is given.
const DefaultLimit = 10

// Breed describes one dog breed.
type Breed struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Temperament string `json:"temperament,omitempty" yaml:"temperament,omitempty"`
	LifeSpan    string `json:"life_span,omitempty" yaml:"life_span,omitempty"`
	ImageURL    string `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// Source lists breeds. Implementations backed by a remote service live
// outside this module.
type Source interface {
	Breeds(ctx context.Context, limit int) ([]Breed, error)
}

// Endpoints returns the API endpoints of the feature.
func Endpoints(src Source) []apicache.Endpoint {
	return []apicache.Endpoint{{
		Name: EndpointFetchBreeds,
		Fetch: func(ctx context.Context, arg any) (any, error) {
			limit, ok := arg.(int)
			if !ok {
				return nil, statekit.NewPermanentError(fmt.Sprintf("invalid limit %v", arg), nil)
			}
			return src.Breeds(ctx, limit)
		},
	}}
}

// FetchBreeds returns the action that subscribes to the first limit breeds.
// A limit of zero or less uses DefaultLimit.
func FetchBreeds(api *apicache.API, limit int) statekit.Action {
	return api.Initiate(EndpointFetchBreeds, normalizeLimit(limit))
}

// ReleaseBreeds returns the action that drops a FetchBreeds subscription.
func ReleaseBreeds(api *apicache.API, limit int) statekit.Action {
	return api.Unsubscribe(EndpointFetchBreeds, normalizeLimit(limit))
}

// SelectBreeds returns the cached breeds for limit together with the entry.
func SelectBreeds(api *apicache.API, st *statekit.State, limit int) ([]Breed, apicache.Entry) {
	entry := api.Select(st, EndpointFetchBreeds, normalizeLimit(limit))
	breeds, _ := entry.Data.([]Breed)
	return breeds, entry
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// StaticSource serves breeds from memory.
type StaticSource struct {
	breeds []Breed
}

// NewStaticSource creates a source over the given breeds, ordered by ID.
// With no breeds it serves the built-in catalog.
func NewStaticSource(breeds ...Breed) *StaticSource {
	if len(breeds) == 0 {
		breeds = catalog
	}
	sorted := make([]Breed, len(breeds))
	copy(sorted, breeds)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return &StaticSource{breeds: sorted}
}

// Breeds returns at most limit breeds.
func (s *StaticSource) Breeds(ctx context.Context, limit int) ([]Breed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, statekit.NewPermanentError(fmt.Sprintf("negative limit %d", limit), nil)
	}
	if limit > len(s.breeds) {
		limit = len(s.breeds)
	}
	out := make([]Breed, limit)
	copy(out, s.breeds[:limit])
	return out, nil
}

var catalog = []Breed{
	{ID: 1, Name: "Affenpinscher", Temperament: "Stubborn, Curious, Playful", LifeSpan: "10 - 12 years"},
	{ID: 2, Name: "Afghan Hound", Temperament: "Aloof, Clownish, Dignified", LifeSpan: "10 - 13 years"},
	{ID: 3, Name: "African Hunting Dog", Temperament: "Wild, Hardworking, Dutiful", LifeSpan: "11 years"},
	{ID: 4, Name: "Airedale Terrier", Temperament: "Outgoing, Friendly, Alert", LifeSpan: "10 - 13 years"},
	{ID: 5, Name: "Akbash Dog", Temperament: "Loyal, Independent, Intelligent", LifeSpan: "10 - 12 years"},
	{ID: 6, Name: "Akita", Temperament: "Docile, Alert, Responsive", LifeSpan: "10 - 14 years"},
	{ID: 7, Name: "Alapaha Blue Blood Bulldog", Temperament: "Loving, Protective, Trainable", LifeSpan: "12 - 13 years"},
	{ID: 8, Name: "Alaskan Husky", Temperament: "Friendly, Energetic, Loyal", LifeSpan: "10 - 13 years"},
	{ID: 9, Name: "Alaskan Malamute", Temperament: "Friendly, Affectionate, Devoted", LifeSpan: "12 - 15 years"},
	{ID: 10, Name: "American Bulldog", Temperament: "Friendly, Assertive, Energetic", LifeSpan: "10 - 12 years"},
	{ID: 11, Name: "American Bully", Temperament: "Strong Willed, Stubborn, Friendly", LifeSpan: "8 - 15 years"},
	{ID: 12, Name: "American Eskimo Dog", Temperament: "Friendly, Alert, Reserved", LifeSpan: "12 - 15 years"},
}
