package config

import (
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// DigestPolicy controls the shape of the daily digest. It lives in an
// optional config file so caps can be tuned without a redeploy.
type DigestPolicy struct {
	UpcomingWindowDays int `mapstructure:"upcomingWindowDays"`
	MaxOverdueEntries  int `mapstructure:"maxOverdueEntries"`
	MaxUpcomingDates   int `mapstructure:"maxUpcomingDates"`
	MaxNamesPerDate    int `mapstructure:"maxNamesPerDate"`
}

func DefaultDigestPolicy() DigestPolicy {
	return DigestPolicy{
		UpcomingWindowDays: 7,
		MaxOverdueEntries:  5,
		MaxUpcomingDates:   5,
		MaxNamesPerDate:    2,
	}
}

type DigestPolicyHolder struct {
	current atomic.Value // holds DigestPolicy
}

func NewDigestPolicyHolder() (*DigestPolicyHolder, error) {
	v := viper.New()

	v.SetConfigName("digest")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/relance")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RELANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultDigestPolicy()
		v.SetDefault("digest.upcomingWindowDays", defaults.UpcomingWindowDays)
		v.SetDefault("digest.maxOverdueEntries", defaults.MaxOverdueEntries)
		v.SetDefault("digest.maxUpcomingDates", defaults.MaxUpcomingDates)
		v.SetDefault("digest.maxNamesPerDate", defaults.MaxNamesPerDate)
	}

	holder := &DigestPolicyHolder{}
	if err := holder.reload(v); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := holder.reload(v); err != nil {
			log.Printf("digest policy reload failed: %v", err)
		}
	})
	v.WatchConfig()

	return holder, nil
}

// StaticDigestPolicy pins the holder to a fixed policy with no file
// watching behind it.
func StaticDigestPolicy(p DigestPolicy) *DigestPolicyHolder {
	holder := &DigestPolicyHolder{}
	holder.current.Store(p.withDefaults())
	return holder
}

func (h *DigestPolicyHolder) reload(v *viper.Viper) error {
	var policy DigestPolicy
	if err := v.UnmarshalKey("digest", &policy); err != nil {
		return err
	}
	policy = policy.withDefaults()
	h.current.Store(policy)
	return nil
}

func (h *DigestPolicyHolder) Current() DigestPolicy {
	if policy, ok := h.current.Load().(DigestPolicy); ok {
		return policy
	}
	return DefaultDigestPolicy()
}

func (p DigestPolicy) withDefaults() DigestPolicy {
	defaults := DefaultDigestPolicy()
	if p.UpcomingWindowDays <= 0 {
		p.UpcomingWindowDays = defaults.UpcomingWindowDays
	}
	if p.MaxOverdueEntries <= 0 {
		p.MaxOverdueEntries = defaults.MaxOverdueEntries
	}
	if p.MaxUpcomingDates <= 0 {
		p.MaxUpcomingDates = defaults.MaxUpcomingDates
	}
	if p.MaxNamesPerDate <= 0 {
		p.MaxNamesPerDate = defaults.MaxNamesPerDate
	}
	return p
}
