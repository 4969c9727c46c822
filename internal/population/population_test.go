package population

import (
	"errors"
	"testing"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/simerr"
)

func TestGenerate_Naming(t *testing.T) {
	pop, err := Generate(Sizes{CommunityUsers: 2, OtherUsers: 3, Resources: 4, Tags: 2})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got := pop.Community[1].ID; got != "CommUser_1" {
		t.Errorf("community[1] = %q, want CommUser_1", got)
	}
	if got := pop.Others[2].ID; got != "OtherUser_2" {
		t.Errorf("others[2] = %q, want OtherUser_2", got)
	}
	if got := pop.Resources[0]; got != "resource_0" {
		t.Errorf("resources[0] = %q, want resource_0", got)
	}
	if got := pop.Tags[1]; got != "#tag_1" {
		t.Errorf("tags[1] = %q, want #tag_1", got)
	}

	for _, u := range pop.Community {
		if !u.Community || !IsCommunityID(u.ID) {
			t.Errorf("community user %q not marked as community", u.ID)
		}
	}
	for _, u := range pop.Others {
		if u.Community || IsCommunityID(u.ID) {
			t.Errorf("other user %q marked as community", u.ID)
		}
	}
}

func TestGenerate_ZeroSizes(t *testing.T) {
	pop, err := Generate(Sizes{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(pop.AllUsers()) != 0 || len(pop.Resources) != 0 || len(pop.Tags) != 0 {
		t.Errorf("expected empty population, got %+v", pop)
	}
}

func TestGenerate_Negative(t *testing.T) {
	_, err := Generate(Sizes{CommunityUsers: 1, Resources: -1})
	if !errors.Is(err, simerr.ErrInvalidParameter) {
		t.Fatalf("err = %v, want InvalidParameter", err)
	}
}

func TestAllUsers_Order(t *testing.T) {
	pop, err := Generate(Sizes{CommunityUsers: 2, OtherUsers: 1})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	all := pop.AllUsers()
	want := []string{"CommUser_0", "CommUser_1", "OtherUser_0"}
	if len(all) != len(want) {
		t.Fatalf("len = %d, want %d", len(all), len(want))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("all[%d] = %q, want %q", i, all[i].ID, id)
		}
	}
}
