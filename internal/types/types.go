// =============================================================================
// steam2xml - Shared Types
// =============================================================================
//
// This package contains the achievement model shared by every parser and
// writer. Both conversion directions produce and consume these types:
//   - xmlparser / vdfparser build an AchievementSet
//   - xmlwriter / vdfwriter serialize an AchievementSet
//
// =============================================================================

package types

// =============================================================================
// ACHIEVEMENT RECORD
// =============================================================================

// Achievement is a single localized achievement.
// Name and Description are empty until set by a parser.
type Achievement struct {
	// Key is the achievement identifier, e.g. "ACH_WIN_ONE_GAME".
	Key string

	// Name is the localized display name.
	Name string

	// Description is the localized description.
	Description string
}

// =============================================================================
// ACHIEVEMENT SET
// =============================================================================

// AchievementSet maps achievement keys to records while remembering the
// order in which keys were first added. Writers iterate in that order so
// output is deterministic and follows the source document.
//
// The zero value is not usable; call NewAchievementSet.
type AchievementSet struct {
	order   []string
	records map[string]*Achievement
}

// NewAchievementSet returns an empty set.
func NewAchievementSet() *AchievementSet {
	return &AchievementSet{
		records: make(map[string]*Achievement),
	}
}

// Add inserts a new, empty record for key.
// It returns false and leaves the set untouched if key is already present.
func (s *AchievementSet) Add(key string) (*Achievement, bool) {
	if _, exists := s.records[key]; exists {
		return nil, false
	}
	a := &Achievement{Key: key}
	s.records[key] = a
	s.order = append(s.order, key)
	return a, true
}

// Ensure returns the record for key, creating it if necessary.
func (s *AchievementSet) Ensure(key string) *Achievement {
	if a, exists := s.records[key]; exists {
		return a
	}
	a, _ := s.Add(key)
	return a
}

// Get returns the record for key, or nil.
func (s *AchievementSet) Get(key string) *Achievement {
	return s.records[key]
}

// Len returns the number of records.
func (s *AchievementSet) Len() int {
	return len(s.order)
}

// Keys returns the keys in insertion order.
func (s *AchievementSet) Keys() []string {
	keys := make([]string, len(s.order))
	copy(keys, s.order)
	return keys
}

// All returns copies of the records in insertion order.
func (s *AchievementSet) All() []Achievement {
	all := make([]Achievement, 0, len(s.order))
	for _, key := range s.order {
		all = append(all, *s.records[key])
	}
	return all
}

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is the whole in-memory result of parsing either format:
// one language tag plus the achievements it localizes.
type Document struct {
	// Language names the locale of every string, e.g. "english".
	// It may be empty when the XML source omits the attribute.
	Language string

	// Achievements holds the parsed records.
	Achievements *AchievementSet
}

// NewDocument returns a document with an empty achievement set.
func NewDocument(language string) *Document {
	return &Document{
		Language:     language,
		Achievements: NewAchievementSet(),
	}
}
