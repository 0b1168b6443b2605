package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionsPolicyBucketFor(t *testing.T) {
	policy := DefaultCollectionsPolicy()

	assert.Equal(t, "0-30", policy.BucketFor(0).Label)
	assert.Equal(t, "0-30", policy.BucketFor(30).Label)
	assert.Equal(t, "31-60", policy.BucketFor(31).Label)
	assert.Equal(t, "61-90", policy.BucketFor(90).Label)
	assert.Equal(t, "90+", policy.BucketFor(91).Label)
	assert.Equal(t, "90+", policy.BucketFor(4000).Label)
}

func TestCollectionsPolicyRiskFor(t *testing.T) {
	policy := DefaultCollectionsPolicy()

	assert.Equal(t, "low", policy.RiskFor(5_000, 10).Level)
	assert.Equal(t, "medium", policy.RiskFor(20_000, 45).Level)
	assert.Equal(t, "high", policy.RiskFor(80_000, 75).Level)
	// High principal but fresh case stays below the day threshold.
	assert.Equal(t, "low", policy.RiskFor(80_000, 5).Level)
}

func TestValidateCollectionsPolicy(t *testing.T) {
	assert.NoError(t, validateCollectionsPolicy(DefaultCollectionsPolicy()))

	assert.Error(t, validateCollectionsPolicy(CollectionsPolicy{}))

	bounded := CollectionsPolicy{
		AgingBuckets: []AgingBucket{{Label: "0-30", MinDays: 0, MaxDays: intPtr(30)}},
		RiskLevels:   []RiskLevel{{Level: "low"}},
	}
	assert.Error(t, validateCollectionsPolicy(bounded))
}

func TestOverdueAfterDays(t *testing.T) {
	assert.Equal(t, 91, DefaultCollectionsPolicy().OverdueAfterDays())
}
