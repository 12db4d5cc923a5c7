// Package synonyms builds the term-equivalence groups that configure the
// store's text analyzer at index-creation time. The groups are not consulted
// at query time; the analyzer applies them during indexing and search.
package synonyms

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// curatedGroups is the hand-maintained hotel/travel vocabulary, one
// comma-separated equivalence group per entry.
var curatedGroups = []string{
	// ambience
	"quiet,peaceful,calm,tranquil,serene",
	"romantic,intimate,cozy,charming",
	"luxury,luxurious,premium,upscale,high-end,deluxe,elegant,sophisticated",
	"budget,cheap,affordable,economical,inexpensive",

	// cleanliness
	"clean,tidy,spotless,pristine,immaculate",
	"dirty,unclean,filthy,messy",

	// service quality
	"friendly,hospitable,welcoming,warm,courteous,pleasant,helpful",
	"rude,unfriendly,impolite,discourteous",
	"professional,competent,efficient,skilled",

	// location descriptors
	"central,downtown,city center",
	"nearby,close,near,adjacent",
	"remote,isolated,far,distant",

	// amenities
	"breakfast,morning meal",
	"wifi,internet,wireless,wi-fi",
	"pool,swimming pool",
	"gym,fitness center,workout room,exercise room",
	"spa,wellness center",
	"parking,car park,garage",
	"restaurant,dining,eatery",
	"bar,lounge,pub",

	// room attributes
	"room,suite,accommodation,chamber",
	"spacious,large,roomy,big,ample",
	"tiny,small,cramped,compact",
	"comfortable,cozy",
	"view,scenery,vista",
	"balcony,terrace,patio",

	// price sentiment
	"expensive,costly,pricey,overpriced",
	"reasonable,fair",

	// food
	"delicious,tasty,yummy",

	// condition
	"modern,contemporary,updated,renovated",
	"old,dated,outdated,worn",
	"new,brand new,fresh",

	// noise
	"noisy,loud,disturbing",

	// travel type
	"family friendly,kid friendly",
	"business hotel,business center",
	"pet friendly,pets allowed,dog friendly",

	// overall quality
	"excellent,outstanding,exceptional,superb,fantastic,wonderful,great",
	"poor,bad,terrible,awful,disappointing",
	"good,nice,pleasant,satisfactory",
	"average,okay,mediocre,decent",
}

// seedWords are adjectives expanded through the lexical-relations source.
// Words already covered by a curated group are never expanded.
var seedWords = []string{"beautiful", "convenient", "amazing", "perfect", "helpful"}

// maxRelationSynonyms caps how many related terms a seed word contributes.
const maxRelationSynonyms = 5

// RelationSource looks up synonyms of a single word in a lexical-relations
// database. Implementations must be deterministic or cached so the builder
// stays idempotent.
type RelationSource interface {
	Synonyms(ctx context.Context, word string) ([]string, error)
}

// Builder assembles the ordered synonym group list. It is safe for concurrent
// use; the expanded list is computed once and reused.
type Builder struct {
	relations RelationSource
	logger    *zap.Logger

	once   sync.Once
	groups []string
}

// NewBuilder creates a synonym builder. relations may be nil, in which case
// only the curated groups are produced.
func NewBuilder(relations RelationSource, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{relations: relations, logger: logger}
}

// Groups returns the ordered synonym group list: curated groups first, then
// one group per successfully expanded seed word. Relation lookup failures
// drop the seed word, never the whole list.
func (b *Builder) Groups(ctx context.Context) []string {
	b.once.Do(func() {
		b.groups = b.build(ctx)
	})
	return b.groups
}

func (b *Builder) build(ctx context.Context) []string {
	groups := make([]string, len(curatedGroups))
	copy(groups, curatedGroups)

	if b.relations == nil {
		return groups
	}

	known := curatedVocabulary()
	for _, seed := range seedWords {
		if known[seed] {
			continue
		}
		syns, err := b.relations.Synonyms(ctx, seed)
		if err != nil {
			b.logger.Warn("synonym expansion failed",
				zap.String("word", seed), zap.Error(err))
			continue
		}
		group := expandGroup(seed, syns, known)
		if group != "" {
			groups = append(groups, group)
		}
	}
	return groups
}

// expandGroup builds "seed,syn1,syn2,..." from relation lookups: lowercased,
// deduplicated against the curated vocabulary, multi-word phrases skipped.
func expandGroup(seed string, syns []string, known map[string]bool) string {
	terms := []string{seed}
	seen := map[string]bool{seed: true}
	for _, s := range syns {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] || known[s] || strings.ContainsAny(s, " _") {
			continue
		}
		terms = append(terms, s)
		seen[s] = true
		if len(terms) == maxRelationSynonyms+1 {
			break
		}
	}
	if len(terms) < 2 {
		return ""
	}
	return strings.Join(terms, ",")
}

// curatedVocabulary flattens the curated groups into a term set used to
// deduplicate expanded entries.
func curatedVocabulary() map[string]bool {
	vocab := make(map[string]bool)
	for _, group := range curatedGroups {
		for _, term := range strings.Split(group, ",") {
			vocab[strings.ToLower(strings.TrimSpace(term))] = true
		}
	}
	return vocab
}
