package plan

import (
	"fmt"
	"strconv"
	"strings"
)

// Feature-string markers. The pricing copy embeds each limit in a
// human-readable sentence ("2 Proje", "75 Form Doldurma/Proje",
// "30 Dakika Ses Üretimi"); the leading integer is the limit and the literal
// "Sınırsız" means no cap.
const (
	markerProjects    = "Proje"
	markerSubmissions = "Form Doldurma"
	markerVoice       = "Ses"
	markerUnlimited   = "Sınırsız"
)

// LimitsFromFeatures parses typed limits out of a display feature list.
// Matching is independent of the list order: each resource scans the whole
// list for its own marker. A missing marker is an explicit error, never a
// silent zero.
func LimitsFromFeatures(features []string) (Limits, error) {
	maxProjects, err := findLimit(features, func(f string) bool {
		// "75 Form Doldurma/Proje" also contains "Proje"; the project-count
		// marker is the one without the submissions marker.
		return strings.Contains(f, markerProjects) && !strings.Contains(f, markerSubmissions)
	})
	if err != nil {
		return Limits{}, fmt.Errorf("%w: projects", err)
	}

	maxSubmissions, err := findLimit(features, func(f string) bool {
		return strings.Contains(f, markerSubmissions)
	})
	if err != nil {
		return Limits{}, fmt.Errorf("%w: submissions", err)
	}

	voiceCredits, err := findLimit(features, func(f string) bool {
		return strings.Contains(f, markerVoice)
	})
	if err != nil {
		return Limits{}, fmt.Errorf("%w: voice credits", err)
	}

	return Limits{
		MaxProjects:              maxProjects,
		MaxSubmissionsPerProject: maxSubmissions,
		VoiceCreditsPerPeriod:    voiceCredits,
	}, nil
}

// MustLimitsFromFeatures panics on a malformed feature list. Used for the
// built-in catalog, where a bad string should prevent startup.
func MustLimitsFromFeatures(features []string) Limits {
	l, err := LimitsFromFeatures(features)
	if err != nil {
		panic(err)
	}
	return l
}

func findLimit(features []string, match func(string) bool) (int64, error) {
	for _, f := range features {
		if !match(f) {
			continue
		}
		return parseAmount(f)
	}
	return 0, ErrLimitNotDeclared
}

// parseAmount extracts the leading integer from a feature sentence, or
// Unlimited for the "Sınırsız" literal.
func parseAmount(feature string) (int64, error) {
	feature = strings.TrimSpace(feature)
	if strings.HasPrefix(feature, markerUnlimited) {
		return Unlimited, nil
	}

	i := 0
	for i < len(feature) && feature[i] >= '0' && feature[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFeatureString, feature)
	}

	n, err := strconv.ParseInt(feature[:i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFeatureString, feature)
	}
	return n, nil
}
