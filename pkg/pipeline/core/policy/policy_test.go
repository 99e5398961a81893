package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	policy "github.com/blank-1/datacollector/pkg/pipeline/core/policy"
)

func TestParseErrorPolicy(t *testing.T) {
	for _, s := range []string{"DISCARD", "TO_ERROR", "STOP_PIPELINE"} {
		p, err := policy.ParseErrorPolicy(s)
		require.NoError(t, err)
		assert.True(t, p.Valid())
	}

	_, err := policy.ParseErrorPolicy("RETRY")
	require.Error(t, err)
	assert.False(t, policy.ErrorPolicy("RETRY").Valid())
	assert.False(t, policy.ErrorPolicy("").Valid())
}
