// Package params defines the six simulation inputs, their named presets, and
// validation.
package params

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"sort"
	"strconv"
	"strings"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/simerr"
	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance.
var validate = validator.New()

// Params are the inputs to one simulation run.
type Params struct {
	NumCommunityUsers int `json:"num_community_users" yaml:"num_community_users" validate:"min=0"`
	NumOtherUsers     int `json:"num_other_users" yaml:"num_other_users" validate:"min=0"`
	NumResources      int `json:"num_resources" yaml:"num_resources" validate:"min=0"`
	NumTags           int `json:"num_tags" yaml:"num_tags" validate:"min=0"`
	CommunityActivity int `json:"community_activity" yaml:"community_activity" validate:"min=0"`
	OtherActivity     int `json:"other_activity" yaml:"other_activity" validate:"min=0"`
}

// Named presets.
const (
	PresetInteractive = "interactive"
	PresetScripted    = "scripted"
)

// Interactive is the default set used by the interactive console path.
var Interactive = Params{
	NumCommunityUsers: 50,
	NumOtherUsers:     100,
	NumResources:      50,
	NumTags:           20,
	CommunityActivity: 20,
	OtherActivity:     10,
}

// Scripted is the default set used by the non-interactive (web form) path.
var Scripted = Params{
	NumCommunityUsers: 10,
	NumOtherUsers:     20,
	NumResources:      10,
	NumTags:           5,
	CommunityActivity: 10,
	OtherActivity:     5,
}

var presets = map[string]Params{
	PresetInteractive: Interactive,
	PresetScripted:    Scripted,
}

// Preset returns the named preset. Names are case-insensitive.
func Preset(name string) (Params, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Params{}, simerr.InvalidParameter("preset", "preset",
			"unknown preset %q (valid: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return p, nil
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Field names in form order, matching the JSON tags.
var Fields = []string{
	"num_community_users",
	"num_other_users",
	"num_resources",
	"num_tags",
	"community_activity",
	"other_activity",
}

// Get returns the value of the named field.
func (p Params) Get(field string) (int, bool) {
	switch field {
	case "num_community_users":
		return p.NumCommunityUsers, true
	case "num_other_users":
		return p.NumOtherUsers, true
	case "num_resources":
		return p.NumResources, true
	case "num_tags":
		return p.NumTags, true
	case "community_activity":
		return p.CommunityActivity, true
	case "other_activity":
		return p.OtherActivity, true
	}
	return 0, false
}

// Set assigns the named field.
func (p *Params) Set(field string, v int) bool {
	switch field {
	case "num_community_users":
		p.NumCommunityUsers = v
	case "num_other_users":
		p.NumOtherUsers = v
	case "num_resources":
		p.NumResources = v
	case "num_tags":
		p.NumTags = v
	case "community_activity":
		p.CommunityActivity = v
	case "other_activity":
		p.OtherActivity = v
	default:
		return false
	}
	return true
}

// FromStrings parses form-style values. Missing or blank keys keep the value
// from fallback; non-numeric values are an InvalidParameter error.
func FromStrings(values map[string]string, fallback Params) (Params, error) {
	p := fallback
	for _, field := range Fields {
		raw, ok := values[field]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Params{}, simerr.InvalidParameter("parse", field, "expected a whole number, got %q", raw)
		}
		p.Set(field, n)
	}
	return p, nil
}

// Validate checks that every field is non-negative.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// TotalEvents is the number of tagging events a run will generate.
// The count saturates at math.MaxInt64 instead of wrapping.
func (p Params) TotalEvents() int64 {
	return addSat(mulSat(p.NumCommunityUsers, p.CommunityActivity),
		mulSat(p.NumOtherUsers, p.OtherActivity))
}

func mulSat(a, b int) int64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(lo)
}

func addSat(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// TotalUsers is the node count of the resulting graph.
func (p Params) TotalUsers() int {
	return p.NumCommunityUsers + p.NumOtherUsers
}

// String renders the params in form order.
func (p Params) String() string {
	return fmt.Sprintf("community=%d other=%d resources=%d tags=%d community_activity=%d other_activity=%d",
		p.NumCommunityUsers, p.NumOtherUsers, p.NumResources, p.NumTags, p.CommunityActivity, p.OtherActivity)
}

// formatValidationError converts the first validator failure to an InvalidParameter error.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return simerr.InvalidParameter("validate", "", "%v", err)
	}

	for _, e := range validationErrs {
		field := jsonName(e.StructField())
		switch e.Tag() {
		case "min":
			return simerr.InvalidParameter("validate", field, "must be at least %s, got %v", e.Param(), e.Value())
		default:
			return simerr.InvalidParameter("validate", field, "validation failed (%s)", e.Tag())
		}
	}
	return nil
}

// jsonName maps a Params struct field to its form name.
func jsonName(structField string) string {
	switch structField {
	case "NumCommunityUsers":
		return "num_community_users"
	case "NumOtherUsers":
		return "num_other_users"
	case "NumResources":
		return "num_resources"
	case "NumTags":
		return "num_tags"
	case "CommunityActivity":
		return "community_activity"
	case "OtherActivity":
		return "other_activity"
	}
	return structField
}
