// Package population generates the users, resources, and tags for a run.
package population

import (
	"strconv"
	"strings"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/constants"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/models"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/simerr"
)

// Sizes are the four population dimensions.
type Sizes struct {
	CommunityUsers int
	OtherUsers     int
	Resources      int
	Tags           int
}

// Population holds the generated lists. All slices are owned by the caller;
// nothing is shared between runs.
type Population struct {
	Community []models.User
	Others    []models.User
	Resources []models.Resource
	Tags      []models.Tag
}

// Generate builds a population with stable identifiers:
// CommUser_<i>, OtherUser_<i>, resource_<i>, #tag_<i>.
func Generate(sizes Sizes) (*Population, error) {
	checks := []struct {
		field string
		n     int
	}{
		{"num_community_users", sizes.CommunityUsers},
		{"num_other_users", sizes.OtherUsers},
		{"num_resources", sizes.Resources},
		{"num_tags", sizes.Tags},
	}
	for _, c := range checks {
		if c.n < 0 {
			return nil, simerr.InvalidParameter("generate", c.field, "must be at least 0, got %d", c.n)
		}
	}

	pop := &Population{
		Community: make([]models.User, sizes.CommunityUsers),
		Others:    make([]models.User, sizes.OtherUsers),
		Resources: make([]models.Resource, sizes.Resources),
		Tags:      make([]models.Tag, sizes.Tags),
	}
	for i := range pop.Community {
		pop.Community[i] = models.User{ID: constants.CommunityUserPrefix + strconv.Itoa(i), Community: true}
	}
	for i := range pop.Others {
		pop.Others[i] = models.User{ID: constants.OtherUserPrefix + strconv.Itoa(i)}
	}
	for i := range pop.Resources {
		pop.Resources[i] = models.Resource(constants.ResourcePrefix + strconv.Itoa(i))
	}
	for i := range pop.Tags {
		pop.Tags[i] = models.Tag(constants.TagPrefix + strconv.Itoa(i))
	}
	return pop, nil
}

// AllUsers returns community users followed by other users in a new slice.
func (p *Population) AllUsers() []models.User {
	all := make([]models.User, 0, len(p.Community)+len(p.Others))
	all = append(all, p.Community...)
	return append(all, p.Others...)
}

// IsCommunityID reports whether id was generated for a dense-community user.
func IsCommunityID(id string) bool {
	return strings.HasPrefix(id, constants.CommunityUserPrefix)
}
