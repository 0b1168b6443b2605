package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CollectionsPolicy controls how open debt cases are bucketed by age and
// classified by risk. It is operator-tunable without a restart.
type CollectionsPolicy struct {
	AgingBuckets []AgingBucket `mapstructure:"agingBuckets"`
	RiskLevels   []RiskLevel   `mapstructure:"riskLevels"`
}

// AgingBucket is one days-open range. A nil MaxDays means open-ended;
// cases in the final open-ended bucket are considered overdue.
type AgingBucket struct {
	Label   string `mapstructure:"label"`
	MinDays int    `mapstructure:"minDays"`
	MaxDays *int   `mapstructure:"maxDays"`
}

type RiskLevel struct {
	Level        string  `mapstructure:"level"`
	MinPrincipal float64 `mapstructure:"minPrincipal"`
	MinDays      int     `mapstructure:"minDays"`
}

func DefaultCollectionsPolicy() CollectionsPolicy {
	return CollectionsPolicy{
		AgingBuckets: []AgingBucket{
			{Label: "0-30", MinDays: 0, MaxDays: intPtr(30)},
			{Label: "31-60", MinDays: 31, MaxDays: intPtr(60)},
			{Label: "61-90", MinDays: 61, MaxDays: intPtr(90)},
			{Label: "90+", MinDays: 91, MaxDays: nil},
		},
		RiskLevels: []RiskLevel{
			{Level: "high", MinPrincipal: 50_000, MinDays: 60},
			{Level: "medium", MinPrincipal: 10_000, MinDays: 31},
			{Level: "low", MinPrincipal: 0, MinDays: 0},
		},
	}
}

func intPtr(v int) *int { return &v }

// CollectionsPolicyHolder hands out the current policy and hot-reloads it
// when collections.yml changes on disk.
type CollectionsPolicyHolder struct {
	current atomic.Value // holds CollectionsPolicy
}

func NewCollectionsPolicyHolder() (*CollectionsPolicyHolder, error) {
	v := viper.New()

	v.SetConfigName("collections")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/legara/config")
	v.AddConfigPath("/etc/legara")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LEGARA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultCollectionsPolicy()
		v.SetDefault("collections.agingBuckets", defaults.AgingBuckets)
		v.SetDefault("collections.riskLevels", defaults.RiskLevels)
	}

	var policy CollectionsPolicy
	if err := v.UnmarshalKey("collections", &policy); err != nil {
		return nil, err
	}
	if err := validateCollectionsPolicy(policy); err != nil {
		return nil, err
	}

	holder := &CollectionsPolicyHolder{}
	holder.current.Store(policy)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CollectionsPolicy
		if err := v.UnmarshalKey("collections", &updated); err != nil {
			log.Printf("[collections-policy] reload failed: %v", err)
			return
		}
		if err := validateCollectionsPolicy(updated); err != nil {
			log.Printf("[collections-policy] invalid policy ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[collections-policy] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticCollectionsPolicyHolder wraps a fixed policy, for tests.
func NewStaticCollectionsPolicyHolder(policy CollectionsPolicy) *CollectionsPolicyHolder {
	holder := &CollectionsPolicyHolder{}
	holder.current.Store(policy)
	return holder
}

func (h *CollectionsPolicyHolder) Get() CollectionsPolicy {
	return h.current.Load().(CollectionsPolicy)
}

// BucketFor returns the aging bucket covering daysOpen, or the last
// bucket when daysOpen runs past every bounded range.
func (p CollectionsPolicy) BucketFor(daysOpen int) AgingBucket {
	for _, bucket := range p.AgingBuckets {
		if daysOpen < bucket.MinDays {
			continue
		}
		if bucket.MaxDays == nil || daysOpen <= *bucket.MaxDays {
			return bucket
		}
	}
	return p.AgingBuckets[len(p.AgingBuckets)-1]
}

// RiskFor returns the first risk level whose thresholds are met.
// Levels are ordered most severe first.
func (p CollectionsPolicy) RiskFor(principal float64, daysOpen int) RiskLevel {
	for _, level := range p.RiskLevels {
		if principal >= level.MinPrincipal && daysOpen >= level.MinDays {
			return level
		}
	}
	return p.RiskLevels[len(p.RiskLevels)-1]
}

// OverdueAfterDays returns the day count at which a case enters the final,
// open-ended aging bucket.
func (p CollectionsPolicy) OverdueAfterDays() int {
	last := p.AgingBuckets[len(p.AgingBuckets)-1]
	return last.MinDays
}

func validateCollectionsPolicy(policy CollectionsPolicy) error {
	if len(policy.AgingBuckets) == 0 {
		return errors.New("collections.agingBuckets cannot be empty")
	}
	if len(policy.RiskLevels) == 0 {
		return errors.New("collections.riskLevels cannot be empty")
	}
	if policy.AgingBuckets[len(policy.AgingBuckets)-1].MaxDays != nil {
		return errors.New("collections.agingBuckets must end with an open-ended bucket")
	}
	return nil
}
