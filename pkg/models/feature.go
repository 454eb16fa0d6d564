package models

import "strings"

// Feature names an optional integration that can be installed into a project.
type Feature string

const (
	FeatureLint        Feature = "lint"
	FeatureSwagger     Feature = "swagger"
	FeatureValidation  Feature = "validation"
	FeatureDatabase    Feature = "database"
	FeatureDocker      Feature = "docker"
	FeatureUserModule  Feature = "user-module"
	FeatureRedis       Feature = "redis"
	FeatureQualityGate Feature = "quality-gate"
)

// AllFeatures returns every feature in installation order.
func AllFeatures() []Feature {
	return []Feature{
		FeatureLint,
		FeatureSwagger,
		FeatureValidation,
		FeatureDatabase,
		FeatureDocker,
		FeatureUserModule,
		FeatureRedis,
		FeatureQualityGate,
	}
}

// ParseFeature resolves a user-supplied feature name, case-insensitively.
func ParseFeature(s string) (Feature, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range AllFeatures() {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// FeatureNames returns the feature names as plain strings.
func FeatureNames() []string {
	all := AllFeatures()
	names := make([]string, len(all))
	for i, f := range all {
		names[i] = string(f)
	}
	return names
}
