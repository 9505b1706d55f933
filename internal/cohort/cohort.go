package cohort

import "coldflix/internal/dataset"

const (
	DefaultAgeRange = 5
	DefaultMinSize  = 3
)

// PlatformFilter es un filtro (plataforma, valor requerido) ya ordenado.
type PlatformFilter struct {
	Name  string
	Value bool
}

// Result holds the selected user ids and the platform filters that were
// rejected because they would have shrunk the cohort below the minimum.
type Result struct {
	UserIDs        map[int]struct{}
	SkippedFilters []string
}

// Empty reports whether no historical user matched the profile.
func (r Result) Empty() bool { return len(r.UserIDs) == 0 }

// Selector filtra la población histórica por perfil demográfico.
type Selector struct {
	AgeRange int
	MinSize  int
}

// NewSelector crea un selector con los umbrales dados; valores no positivos
// caen a los defaults.
func NewSelector(ageRange, minSize int) *Selector {
	if ageRange <= 0 {
		ageRange = DefaultAgeRange
	}
	if minSize <= 0 {
		minSize = DefaultMinSize
	}
	return &Selector{AgeRange: ageRange, MinSize: minSize}
}

// Select aplica primero el filtro base (género igual y edad dentro de
// [age-AgeRange, age+AgeRange]) y luego cada filtro de plataforma en orden.
// A platform filter is committed only when at least MinSize users survive
// it; otherwise the cohort keeps its previous members and the filter name
// is recorded as skipped. Greedy and order-dependent on purpose.
func (s *Selector) Select(users []dataset.User, age int, gender string, filters []PlatformFilter) Result {
	cohort := make([]dataset.User, 0, 64)
	for _, u := range users {
		if u.Gender != gender {
			continue
		}
		if u.Age < age-s.AgeRange || u.Age > age+s.AgeRange {
			continue
		}
		cohort = append(cohort, u)
	}

	skipped := make([]string, 0)
	for _, f := range filters {
		filtered := make([]dataset.User, 0, len(cohort))
		for _, u := range cohort {
			if u.Platforms[f.Name] == f.Value {
				filtered = append(filtered, u)
			}
		}
		if len(filtered) >= s.MinSize {
			cohort = filtered
		} else {
			skipped = append(skipped, f.Name)
		}
	}

	ids := make(map[int]struct{}, len(cohort))
	for _, u := range cohort {
		ids[u.UserID] = struct{}{}
	}
	return Result{UserIDs: ids, SkippedFilters: skipped}
}
