package simulation

import (
	"math"
	"math/rand/v2"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/constants"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/models"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/population"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/simerr"
)

// Pool names reported in EmptyPool errors.
const (
	PoolCommunityResources = "community_resource_pool"
	PoolCommunityTags      = "community_tag_pool"
	PoolResources          = "resource_pool"
	PoolTags               = "tag_pool"
)

// PoolConfig sets how much of the resource and tag lists the dense community draws from.
type PoolConfig struct {
	ResourceFraction float64 `json:"resource_fraction" yaml:"resource_fraction"`
	TagFraction      float64 `json:"tag_fraction" yaml:"tag_fraction"`

	// MinSize is the smallest pool taken from a non-empty list. Zero keeps the
	// plain rounded-down prefix, so short lists yield empty pools.
	MinSize int `json:"min_size" yaml:"min_size"`
}

// DefaultPools returns the 30% resource / 50% tag community pools with a
// one-element floor for non-empty lists.
func DefaultPools() PoolConfig {
	return PoolConfig{
		ResourceFraction: constants.CommunityResourceFraction,
		TagFraction:      constants.CommunityTagFraction,
		MinSize:          constants.DefaultMinPoolSize,
	}
}

// CommunityPools returns the list prefixes the community samples from.
// Each prefix has int(len * fraction) elements, rounded down, raised to
// MinSize when the list is long enough.
func (c PoolConfig) CommunityPools(resources []models.Resource, tags []models.Tag) ([]models.Resource, []models.Tag) {
	return resources[:c.poolSize(len(resources), c.ResourceFraction)],
		tags[:c.poolSize(len(tags), c.TagFraction)]
}

func (c PoolConfig) poolSize(n int, fraction float64) int {
	size := int(float64(n) * fraction)
	if size < c.MinSize {
		size = c.MinSize
	}
	switch {
	case size < 0:
		return 0
	case size > n:
		return n
	}
	return size
}

// Activity is the number of draws per user for each population.
type Activity struct {
	Community int
	Other     int
}

// Simulate produces all tagging events for pop: community users first, then
// other users, each user's events contiguous and in draw order.
func Simulate(rng *rand.Rand, pop *population.Population, activity Activity, pools PoolConfig) ([]models.TaggingEvent, error) {
	community, err := SimulateCommunity(rng, pop, activity.Community, pools)
	if err != nil {
		return nil, err
	}
	others, err := SimulateOthers(rng, pop, activity.Other)
	if err != nil {
		return nil, err
	}
	return append(community, others...), nil
}

// SimulateCommunity draws perUser (resource, tag) pairs for every community
// user from the community pools.
func SimulateCommunity(rng *rand.Rand, pop *population.Population, perUser int, pools PoolConfig) ([]models.TaggingEvent, error) {
	resources, tags := pools.CommunityPools(pop.Resources, pop.Tags)
	return draw(rng, "simulate_community", pop.Community, perUser,
		resources, PoolCommunityResources, tags, PoolCommunityTags, "community_activity")
}

// SimulateOthers draws perUser (resource, tag) pairs for every other user
// from the full resource and tag lists.
func SimulateOthers(rng *rand.Rand, pop *population.Population, perUser int) ([]models.TaggingEvent, error) {
	return draw(rng, "simulate_other", pop.Others, perUser,
		pop.Resources, PoolResources, pop.Tags, PoolTags, "other_activity")
}

// draw performs len(users)*perUser independent uniform draws with replacement.
// An empty pool is only an error when at least one draw is required.
func draw(
	rng *rand.Rand,
	op string,
	users []models.User,
	perUser int,
	resources []models.Resource,
	resourcePool string,
	tags []models.Tag,
	tagPool string,
	activityField string,
) ([]models.TaggingEvent, error) {
	if perUser < 0 {
		return nil, simerr.InvalidParameter(op, activityField, "must be at least 0, got %d", perUser)
	}
	if len(users) == 0 || perUser == 0 {
		return []models.TaggingEvent{}, nil
	}
	if perUser > math.MaxInt/len(users) {
		return nil, simerr.InvalidParameter(op, activityField,
			"%d users x %d draws overflows the event count", len(users), perUser)
	}
	if len(resources) == 0 {
		return nil, simerr.EmptyPool(op, resourcePool, "cannot sample a resource: pool is empty")
	}
	if len(tags) == 0 {
		return nil, simerr.EmptyPool(op, tagPool, "cannot sample a tag: pool is empty")
	}

	events := make([]models.TaggingEvent, 0, len(users)*perUser)
	for _, u := range users {
		for range perUser {
			events = append(events, models.TaggingEvent{
				User:     u.ID,
				Resource: resources[rng.IntN(len(resources))],
				Tag:      tags[rng.IntN(len(tags))],
			})
		}
	}
	return events, nil
}

// NewRNG returns a deterministic generator for seed.
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
}

// RandomSeed returns a fresh non-zero seed from the runtime's random source.
func RandomSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}
