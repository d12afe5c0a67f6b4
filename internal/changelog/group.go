package changelog

import (
	"sort"
)

// Group arranges classified commits into sections for rendering.
//
// Sections are ordered by type string ascending. Within a section commits are
// ordered by category, then short id, then long id, then subject, so the result is
// independent of input order. Identical subjects are not merged. Headings come from
// h; types missing from the table get OtherHeading but keep their own group key.
func Group(commits []ClassifiedCommit, h Headings) []Section {
	byType := make(map[string][]ClassifiedCommit)
	for _, c := range commits {
		byType[c.Type] = append(byType[c.Type], c)
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	sections := make([]Section, 0, len(types))
	for _, t := range types {
		members := byType[t]
		sort.Slice(members, func(i, j int) bool {
			return commitLess(members[i], members[j])
		})
		sections = append(sections, Section{
			Type:    t,
			Heading: h.Lookup(t),
			Commits: members,
		})
	}

	return sections
}

// commitLess is the total order used inside a section.
func commitLess(a, b ClassifiedCommit) bool {
	if a.Category != b.Category {
		return a.Category < b.Category
	}
	if a.ShortID != b.ShortID {
		return a.ShortID < b.ShortID
	}
	if a.LongID != b.LongID {
		return a.LongID < b.LongID
	}
	return a.Subject < b.Subject
}

// BuildRange classifies raw commits for one window and groups them under h.
func BuildRange(w Window, raws []RawCommit, linkBase string, h Headings) Range {
	return Range{
		StartTag: w.Start,
		EndTag:   w.Title,
		Date:     w.Date,
		LinkBase: linkBase,
		Sections: Group(ClassifyAll(raws), h),
	}
}
