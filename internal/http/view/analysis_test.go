package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/creator-ratecard/internal/models"
	"github.com/magabrotheeeer/creator-ratecard/internal/orchestrator"
	"github.com/magabrotheeeer/creator-ratecard/internal/services/ratecard"
)

func TestBuildAnalysis_AwaitingAuth(t *testing.T) {
	snap := orchestrator.Snapshot{State: orchestrator.StateAwaitingAuth, Handle: "foodie_nina"}

	a, err := BuildAnalysis(snap, ratecard.New(10))
	require.NoError(t, err)

	assert.Equal(t, "awaiting_auth", a.State)
	assert.True(t, a.AuthRequired)
	assert.Nil(t, a.Result)
	assert.Nil(t, a.RateCard)
}

func TestBuildAnalysis_Resolved(t *testing.T) {
	snap := orchestrator.Snapshot{
		State:  orchestrator.StateResolved,
		Handle: "foodie_nina",
		Result: &models.AnalysisResult{
			Handle:         "foodie_nina",
			EstimatedRates: models.EstimatedRates{Post: 7000, Story: 1800, Reel: 12000},
		},
	}

	a, err := BuildAnalysis(snap, ratecard.New(10))
	require.NoError(t, err)

	require.NotNil(t, a.RateCard)
	assert.Equal(t, 10, a.RateCard.FeePct)
	assert.Equal(t, 6300, a.RateCard.Post.Net)
	assert.Equal(t, snap.Result, a.Result)
}

func TestBuildAnalysis_Failed(t *testing.T) {
	snap := orchestrator.Snapshot{State: orchestrator.StateFailed, FailReason: orchestrator.FailAnalysisFailed}

	a, err := BuildAnalysis(snap, ratecard.New(10))
	require.NoError(t, err)

	assert.Equal(t, "failed", a.State)
	assert.Equal(t, "analysis_failed", a.FailReason)
	assert.False(t, a.AuthRequired)
}
