package pgversion

// FeatureFlags records which optional capabilities a given major.minor line
// supports. Looked up via FeatureSupport: exact major.minor match, then
// same-major fallback, then the largest known version below the queried
// one, then the conservative all-false set.
type FeatureFlags struct {
	IncrementalSort bool
	Multirange      bool
	Merge           bool
}

type versionKey struct{ major, minor int }

// featureTable is the static knowledge of spec.md §4.4: 13.0 lacks
// incremental sorting and multirange; 14.0 adds both; 15.0 adds MERGE.
var featureTable = map[versionKey]FeatureFlags{
	{13, 0}: {IncrementalSort: false, Multirange: false, Merge: false},
	{14, 0}: {IncrementalSort: true, Multirange: true, Merge: false},
	{15, 0}: {IncrementalSort: true, Multirange: true, Merge: true},
	{16, 0}: {IncrementalSort: true, Multirange: true, Merge: true},
	{17, 0}: {IncrementalSort: true, Multirange: true, Merge: true},
	{18, 0}: {IncrementalSort: true, Multirange: true, Merge: true},
}

// FeatureSupport resolves the feature flags for v: exact major.minor match,
// else same-major (lowest minor on record for that major), else the
// largest entry with a lower major, else all-false.
func FeatureSupport(v Version) FeatureFlags {
	if flags, ok := featureTable[versionKey{v.Major, v.Minor}]; ok {
		return flags
	}

	var sameMajorMatch *FeatureFlags
	sameMajorMinor := -1
	var bestLower *FeatureFlags
	bestLowerMajor := -1

	for key, flags := range featureTable {
		flags := flags
		if key.major == v.Major {
			if sameMajorMatch == nil || key.minor < sameMajorMinor {
				sameMajorMatch = &flags
				sameMajorMinor = key.minor
			}
			continue
		}
		if key.major < v.Major && key.major > bestLowerMajor {
			bestLowerMajor = key.major
			bestLower = &flags
		}
	}

	if sameMajorMatch != nil {
		return *sameMajorMatch
	}
	if bestLower != nil {
		return *bestLower
	}
	return FeatureFlags{}
}

// operationMinimums maps operation names to the minimum version they
// require, for ValidateForOperation.
var operationMinimums = map[string]Version{
	"incremental_sort": {Major: 14, Minor: 0},
	"multirange":       {Major: 14, Minor: 0},
	"merge":            {Major: 15, Minor: 0},
	"schema_compare":   Minimum,
}

// ValidateForOperation reports whether v satisfies the minimum version
// required for op. Unknown operations are treated as requiring only the
// global minimum.
func ValidateForOperation(v Version, op string) bool {
	required, ok := operationMinimums[op]
	if !ok {
		required = Minimum
	}
	return v.Compare(required) >= 0
}
