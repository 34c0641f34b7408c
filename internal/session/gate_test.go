package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/creator-ratecard/internal/models"
)

func TestGate_Anonymous(t *testing.T) {
	gate := NewGate()

	assert.False(t, gate.IsAuthenticated())
	assert.False(t, gate.CanAutoApply())
	assert.Nil(t, gate.Session())
}

func TestGate_SetAndClear(t *testing.T) {
	gate := NewGate()
	gate.Set(models.Session{ID: "uid-1", Name: "Nina", OnboardingComplete: true})

	require.True(t, gate.IsAuthenticated())
	require.NotNil(t, gate.Session())
	assert.Equal(t, "Nina", gate.Session().Name)

	gate.Clear()

	assert.False(t, gate.IsAuthenticated())
	assert.False(t, gate.CanAutoApply())
	assert.Nil(t, gate.Session())
}

func TestGate_CanAutoApply(t *testing.T) {
	tests := []struct {
		name    string
		session *models.Session
		want    bool
	}{
		{name: "anonymous", session: nil, want: false},
		{
			name:    "authenticated with onboarding complete",
			session: &models.Session{ID: "uid-1", OnboardingComplete: true},
			want:    true,
		},
		{
			name:    "authenticated without onboarding",
			session: &models.Session{ID: "uid-1", OnboardingComplete: false},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewGate()
			if tt.session != nil {
				gate.Set(*tt.session)
			}
			assert.Equal(t, tt.want, gate.CanAutoApply())
		})
	}
}

func TestGate_SessionReturnsCopy(t *testing.T) {
	gate := NewGate()
	gate.Set(models.Session{ID: "uid-1", Name: "Nina"})

	copied := gate.Session()
	copied.Name = "changed"

	assert.Equal(t, "Nina", gate.Session().Name)
}
