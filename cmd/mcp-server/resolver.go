package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode"
)

// ResolvedBoundary is the result of a successful place-name lookup: the
// matched geometry plus where it came from.
type ResolvedBoundary struct {
	Geometry  *Geometry
	DatasetID string
	Level     string
}

// LocationNotFoundError is the only error the resolver surfaces: every
// strategy was exhausted without a match.
type LocationNotFoundError struct {
	PlaceName string
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("location %q not found in any boundary dataset; try adding context, e.g. %q",
		e.PlaceName, e.PlaceName+", Country")
}

// placeSuffixes are common administrative suffixes stripped by the retry
// strategy. Checked against the lower-cased primary name.
var placeSuffixes = []string{" city", " county", " district", " province", " state"}

// maxResolveDepth bounds the suffix-stripping recursion. One strip is the
// normal case; the limit only guards pathological multiply-suffixed input.
const maxResolveDepth = 3

// locationResolver turns a free-text place description into an administrative
// boundary. Three strategies are tried in fixed fallback order: an exact scan
// across all datasets and name variants, a context-qualified district lookup,
// and a suffix-stripped retry of the whole sequence.
type locationResolver struct {
	provider boundaryProvider
	datasets []boundaryDataset
}

func newLocationResolver(p boundaryProvider) *locationResolver {
	return &locationResolver{provider: p, datasets: boundaryDatasets}
}

// Resolve returns the first matching boundary for place, or
// *LocationNotFoundError. Queries run sequentially; an error on any single
// query is treated as no-match and the scan continues.
func (r *locationResolver) Resolve(ctx context.Context, place string) (*ResolvedBoundary, error) {
	return r.resolve(ctx, place, 0)
}

func (r *locationResolver) resolve(ctx context.Context, place string, depth int) (*ResolvedBoundary, error) {
	primary, context_ := splitPlace(place)

	// Strategy 1: exact/variant scan, most specific dataset first.
	if rb := r.scanDatasets(ctx, primary); rb != nil {
		return rb, nil
	}

	// Strategy 2: context-qualified district lookup ("Paris, France").
	if context_ != "" {
		if rb := r.scanWithContext(ctx, primary, context_); rb != nil {
			return rb, nil
		}
	}

	// Strategy 3: strip one administrative suffix and retry everything.
	if depth < maxResolveDepth {
		if stripped, ok := stripSuffix(primary); ok {
			log.Printf("resolver: retrying %q as %q after suffix strip", primary, stripped)
			if rb, err := r.resolve(ctx, stripped, depth+1); err == nil {
				return rb, nil
			}
		}
	}

	return nil, &LocationNotFoundError{PlaceName: place}
}

// scanDatasets runs the dataset → field → variant loop. Dataset is the
// outermost loop so a finer administrative level always beats a coarser one,
// regardless of which name variant matched.
func (r *locationResolver) scanDatasets(ctx context.Context, primary string) *ResolvedBoundary {
	variants := nameVariants(primary)
	for _, ds := range r.datasets {
		for _, field := range ds.Fields {
			for _, variant := range variants {
				res, err := r.provider.QueryByFieldEquals(ctx, ds.CollectionID, field, variant)
				if err != nil {
					// A single bad combination must never abort the scan.
					log.Printf("resolver: query %s.%s=%q failed: %v", ds.CollectionID, field, variant, err)
					continue
				}
				if res.MatchCount > 0 && res.First != nil {
					log.Printf("resolver: %q matched %s.%s (level %s)", primary, ds.CollectionID, field, ds.Level)
					return &ResolvedBoundary{
						Geometry:  res.First,
						DatasetID: ds.CollectionID,
						Level:     ds.Level,
					}
				}
			}
		}
	}
	return nil
}

// scanWithContext looks up primary at district level qualified by a parent
// name: country first, then state/province.
func (r *locationResolver) scanWithContext(ctx context.Context, primary, parent string) *ResolvedBoundary {
	for _, parentField := range []string{countryParentField, stateParentField} {
		res, err := r.provider.QueryByFieldsEqualsAnd(ctx, districtDatasetID, []fieldCondition{
			{Field: districtNameField, Value: titleCase(primary)},
			{Field: parentField, Value: titleCase(parent)},
		})
		if err != nil {
			log.Printf("resolver: context query %s=%q failed: %v", parentField, parent, err)
			continue
		}
		if res.MatchCount > 0 && res.First != nil {
			log.Printf("resolver: %q, %q matched %s via %s", primary, parent, districtDatasetID, parentField)
			return &ResolvedBoundary{
				Geometry:  res.First,
				DatasetID: districtDatasetID,
				Level:     "City/District",
			}
		}
	}
	return nil
}

// splitPlace separates a place string into its primary name and optional
// context on the FIRST comma only ("Springfield, Illinois, USA" keeps
// "Illinois, USA" as context).
func splitPlace(place string) (primary, context string) {
	primary = strings.TrimSpace(place)
	if i := strings.Index(primary, ","); i >= 0 {
		context = strings.TrimSpace(primary[i+1:])
		primary = strings.TrimSpace(primary[:i])
	}
	return primary, context
}

// nameVariants returns the match attempts for a primary name in fixed order:
// as given, title-case, upper-case, lower-case. Duplicates are dropped while
// preserving order so repeated lookups stay deterministic.
func nameVariants(primary string) []string {
	candidates := []string{
		primary,
		titleCase(primary),
		strings.ToUpper(primary),
		strings.ToLower(strings.TrimSpace(primary)),
	}
	seen := make(map[string]bool, len(candidates))
	variants := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if !seen[c] {
			seen[c] = true
			variants = append(variants, c)
		}
	}
	return variants
}

// titleCase capitalizes the first letter of each whitespace-delimited word
// and lowercases the rest ("new york" -> "New York").
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// stripSuffix removes one trailing administrative suffix, if present.
func stripSuffix(primary string) (string, bool) {
	p := strings.TrimSpace(primary)
	lower := strings.ToLower(p)
	for _, suffix := range placeSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return strings.TrimSpace(p[:len(p)-len(suffix)]), true
		}
	}
	return "", false
}
