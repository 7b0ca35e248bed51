package domain_test

import (
	"errors"
	"scraper/pkg/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutcome_OK(t *testing.T) {
	require.True(t, domain.Outcome{Status: domain.OutcomeSuccess}.OK())
	require.True(t, domain.Outcome{Status: domain.OutcomeSkipped}.OK())
	require.False(t, domain.Outcome{Status: domain.OutcomeFailed, Err: errors.New("boom")}.OK())
}

func TestSummary_Count(t *testing.T) {
	s := domain.Summary{Outcomes: []domain.Outcome{
		{Status: domain.OutcomeSuccess},
		{Status: domain.OutcomeFailed},
		{Status: domain.OutcomeSuccess},
	}}

	require.Equal(t, 2, s.Count(domain.OutcomeSuccess))
	require.Equal(t, 1, s.Count(domain.OutcomeFailed))
	require.Equal(t, 0, s.Count(domain.OutcomeSkipped))
}
