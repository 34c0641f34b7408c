package handle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "bare handle",
			raw:  "foodie_nina",
			want: "foodie_nina",
		},
		{
			name: "handle with at prefix",
			raw:  "@foodie_nina",
			want: "foodie_nina",
		},
		{
			name: "handle with whitespace",
			raw:  "  @foodie_nina  ",
			want: "foodie_nina",
		},
		{
			name: "profile url",
			raw:  "https://instagram.com/foodie_nina",
			want: "foodie_nina",
		},
		{
			name: "profile url with www",
			raw:  "https://www.instagram.com/foodie_nina",
			want: "foodie_nina",
		},
		{
			name: "profile url with trailing slash",
			raw:  "https://instagram.com/foodie_nina/",
			want: "foodie_nina",
		},
		{
			name: "profile url without scheme",
			raw:  "instagram.com/foodie_nina",
			want: "foodie_nina",
		},
		{
			name: "profile url with query",
			raw:  "https://instagram.com/foodie_nina?igshid=abc",
			want: "foodie_nina",
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			raw:     "   ",
			wantErr: true,
		},
		{
			name:    "lone at sign",
			raw:     "@",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	first, err := Normalize("https://instagram.com/foodie_nina")
	require.NoError(t, err)

	second, err := Normalize(first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
