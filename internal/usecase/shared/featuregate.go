package shared

import "member-portal/internal/pkg/config"

// ConfigFeatureGate excludes payment channels listed in deployment
// configuration.
type ConfigFeatureGate struct {
	excluded map[string]struct{}
}

func NewConfigFeatureGate(cfg config.FeaturesConfig) *ConfigFeatureGate {
	excluded := make(map[string]struct{}, len(cfg.Excluded))
	for _, f := range cfg.Excluded {
		if f != "" {
			excluded[f] = struct{}{}
		}
	}
	return &ConfigFeatureGate{excluded: excluded}
}

func (g *ConfigFeatureGate) IsExcluded(feature string) bool {
	_, ok := g.excluded[feature]
	return ok
}
