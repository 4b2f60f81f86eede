package provider_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soustackgw/internal/domain"
	"soustackgw/internal/provider"
)

func callString(t *testing.T, fn provider.StageFunc, args ...any) any {
	t.Helper()
	res, err := fn(context.Background(), args...)
	require.NoError(t, err)
	return res
}

func TestResolve_TopLevel(t *testing.T) {
	mod := provider.Exports{
		"segment": func(text string) string { return "top:" + text },
	}

	fn, err := provider.Resolve(mod, domain.StageSegment, []string{"segment"})

	require.NoError(t, err)
	assert.Equal(t, "top:x", callString(t, fn, "x"))
}

func TestResolve_NestedBags(t *testing.T) {
	tests := []struct {
		name string
		mod  provider.Exports
	}{
		{
			name: "default",
			mod: provider.Exports{
				"default": map[string]any{"segment": func(string) string { return "ok" }},
			},
		},
		{
			name: "stages",
			mod: provider.Exports{
				"stages": provider.Exports{"segment": func(string) string { return "ok" }},
			},
		},
		{
			name: "default.stages",
			mod: provider.Exports{
				"default": map[string]any{
					"stages": map[string]any{"segment": func(string) string { return "ok" }},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := provider.Resolve(tt.mod, domain.StageSegment, []string{"segment"})
			require.NoError(t, err)
			assert.Equal(t, "ok", callString(t, fn, "x"))
		})
	}
}

func TestResolve_CandidateOrderWinsOverLocation(t *testing.T) {
	mod := provider.Exports{
		"split": func(string) string { return "split" },
		"default": map[string]any{
			"stages": map[string]any{"segment": func(string) string { return "segment" }},
		},
	}

	fn, err := provider.Resolve(mod, domain.StageSegment, []string{"segment", "split"})

	require.NoError(t, err)
	assert.Equal(t, "segment", callString(t, fn, "x"))
}

func TestResolve_SkipsNonFunctions(t *testing.T) {
	mod := provider.Exports{
		"segment": "not a function",
		"split":   func(string) string { return "split" },
	}

	fn, err := provider.Resolve(mod, domain.StageSegment, []string{"segment", "split"})

	require.NoError(t, err)
	assert.Equal(t, "split", callString(t, fn, "x"))
}

func TestResolve_NotFound(t *testing.T) {
	_, err := provider.Resolve(provider.Exports{}, domain.StageExtract, []string{"extract", "extractRecipe"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStageNotFound))

	var notFound *provider.StageNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, domain.StageExtract, notFound.Stage)
	assert.Contains(t, err.Error(), `"extract"`)
	assert.Contains(t, err.Error(), "extractRecipe")
}

func TestResolve_StageFuncSignatures(t *testing.T) {
	ctxKey := struct{}{}
	ctx := context.WithValue(context.Background(), ctxKey, "seen")

	tests := []struct {
		name    string
		fn      any
		want    any
		wantErr string
	}{
		{name: "no results", fn: func(string) {}, want: nil},
		{name: "value", fn: func(s string) int { return len(s) }, want: 3},
		{name: "error only", fn: func(string) error { return errors.New("nope") }, wantErr: "nope"},
		{name: "value and error", fn: func(s string) (string, error) { return s + "!", nil }, want: "abc!"},
		{
			name: "context first",
			fn: func(ctx context.Context, s string) string {
				v, _ := ctx.Value(ctxKey).(string)
				return v + ":" + s
			},
			want: "seen:abc",
		},
		{
			name: "variadic",
			fn:   func(parts ...string) string { return strings.Join(parts, "+") },
			want: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := provider.Resolve(provider.Exports{"run": tt.fn}, domain.StageIngest, []string{"run"})
			require.NoError(t, err)

			res, err := fn(ctx, "abc")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestResolve_RejectsUnsupportedResults(t *testing.T) {
	mod := provider.Exports{"run": func() (int, int) { return 1, 2 }}

	_, err := provider.Resolve(mod, domain.StageIngest, []string{"run"})

	assert.ErrorIs(t, err, domain.ErrStageNotFound)
}
