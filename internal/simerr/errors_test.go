package simerr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIs_MatchesByKind(t *testing.T) {
	err := InvalidParameter("validate", "num_tags", "must be >= 0, got %d", -1)
	wrapped := fmt.Errorf("run: %w", err)

	if !errors.Is(wrapped, ErrInvalidParameter) {
		t.Error("expected wrapped error to match ErrInvalidParameter")
	}
	if errors.Is(wrapped, ErrEmptyPool) {
		t.Error("InvalidParameter must be distinguishable from EmptyPool")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"invalid", InvalidParameter("op", "f", "bad"), KindInvalidParameter},
		{"pool", fmt.Errorf("x: %w", EmptyPool("simulate", "community_resource_pool", "empty")), KindEmptyPool},
		{"render", RenderingFailure("render", errors.New("disk full")), KindRenderingFailure},
		{"foreign", errors.New("boom"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPublicMessage_HidesCause(t *testing.T) {
	err := RenderingFailure("render", errors.New("open /secret/path: permission denied"))
	msg := PublicMessage(err)
	if strings.Contains(msg, "/secret/path") {
		t.Errorf("public message leaked cause: %q", msg)
	}
	if !strings.Contains(err.Error(), "/secret/path") {
		t.Errorf("Error() should keep the cause for logs: %q", err.Error())
	}
	if got := PublicMessage(errors.New("raw")); got != "internal error" {
		t.Errorf("PublicMessage(foreign) = %q, want %q", got, "internal error")
	}
}
