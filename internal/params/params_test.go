package params

import (
	"errors"
	"math"
	"testing"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/simerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	p, err := Preset("interactive")
	require.NoError(t, err)
	assert.Equal(t, Params{50, 100, 50, 20, 20, 10}, p)

	p, err = Preset("Scripted")
	require.NoError(t, err)
	assert.Equal(t, Params{10, 20, 10, 5, 10, 5}, p)

	_, err = Preset("turbo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, simerr.ErrInvalidParameter))

	assert.Equal(t, []string{"interactive", "scripted"}, PresetNames())
}

func TestValidate(t *testing.T) {
	require.NoError(t, Interactive.Validate())
	require.NoError(t, Params{}.Validate(), "all-zero params are valid")

	bad := Scripted
	bad.NumTags = -1
	err := bad.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, simerr.ErrInvalidParameter))

	var se *simerr.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "num_tags", se.Field)
}

func TestFromStrings(t *testing.T) {
	t.Run("missing keys fall back", func(t *testing.T) {
		p, err := FromStrings(map[string]string{"num_tags": "7", "other_activity": " "}, Scripted)
		require.NoError(t, err)
		want := Scripted
		want.NumTags = 7
		assert.Equal(t, want, p)
	})

	t.Run("non-numeric is invalid", func(t *testing.T) {
		_, err := FromStrings(map[string]string{"num_resources": "ten"}, Scripted)
		require.Error(t, err)
		assert.True(t, errors.Is(err, simerr.ErrInvalidParameter))
		assert.Contains(t, err.Error(), "num_resources")
	})

	t.Run("negative parses but fails validation", func(t *testing.T) {
		p, err := FromStrings(map[string]string{"community_activity": "-3"}, Scripted)
		require.NoError(t, err)
		assert.True(t, errors.Is(p.Validate(), simerr.ErrInvalidParameter))
	})
}

func TestGetSetRoundTripsEveryField(t *testing.T) {
	var p Params
	for i, f := range Fields {
		require.True(t, p.Set(f, i+1), f)
	}
	for i, f := range Fields {
		v, ok := p.Get(f)
		require.True(t, ok, f)
		assert.Equal(t, i+1, v, f)
	}
	assert.False(t, p.Set("bogus", 1))
}

func TestTotals(t *testing.T) {
	assert.Equal(t, int64(50*20+100*10), Interactive.TotalEvents())
	assert.Equal(t, 150, Interactive.TotalUsers())
}

func TestTotalEvents_Saturates(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want int64
	}{
		{"scripted", Scripted, 200},
		{"zero activity", Params{NumCommunityUsers: 10, NumOtherUsers: 10}, 0},
		{"product overflows", Params{NumCommunityUsers: math.MaxInt, CommunityActivity: 3}, math.MaxInt64},
		{"sum overflows", Params{
			NumCommunityUsers: math.MaxInt / 2, CommunityActivity: 2,
			NumOtherUsers: math.MaxInt / 2, OtherActivity: 2,
		}, math.MaxInt64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.TotalEvents())
		})
	}
}
