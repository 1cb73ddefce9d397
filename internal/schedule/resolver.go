package schedule

import (
	"strings"

	"github.com/ketan-2905/classbunk/models"
)

// SubjectKey identifies a (subject, lecture kind) pair. A student needs
// exactly one section per key even when several batches offer it.
type SubjectKey struct {
	Subject string
	Type    models.LectureType
}

// ElectiveNameSet collects every subject name that appears in either elective
// slot for a (branch, semester).
func ElectiveNameSet(electives []models.Elective) map[string]struct{} {
	names := make(map[string]struct{})
	for _, e := range electives {
		if e.FirstElectiveName != "" {
			names[e.FirstElectiveName] = struct{}{}
		}
		if e.SecondElectiveName != "" {
			names[e.SecondElectiveName] = struct{}{}
		}
	}
	return names
}

// BatchMatches reports whether a template's batch applies to the student. An
// empty batch means the whole class; otherwise the label must end with the
// student's sub-division id ("D11" matches sub-division "1").
func BatchMatches(batch, subDivisionID string) bool {
	return batch == "" || strings.HasSuffix(batch, subDivisionID)
}

// StaleElectiveTemplates returns the template ids of elective sections the
// student can never attend: for each chosen elective that has a section
// matching the student's own batch, the sections filed under other batches.
// Groups with no direct batch match keep every section (the fallback in
// ResolveTemplates) and contribute nothing here.
func StaleElectiveTemplates(all []models.LectureTemplate, electiveNames map[string]struct{}, student *models.Student) []uint {
	grouped := make(map[SubjectKey][]models.LectureTemplate)
	for _, t := range all {
		if _, isElective := electiveNames[t.Subject]; !isElective {
			continue
		}
		if t.Subject != student.ElectiveChoice1 && t.Subject != student.ElectiveChoice2 {
			continue
		}
		key := SubjectKey{Subject: t.Subject, Type: t.LectureType}
		grouped[key] = append(grouped[key], t)
	}

	var stale []uint
	for _, group := range grouped {
		hasMatch := false
		for _, t := range group {
			if BatchMatches(t.Batch, student.SubDivisionID) {
				hasMatch = true
				break
			}
		}
		if !hasMatch {
			continue
		}
		for _, t := range group {
			if !BatchMatches(t.Batch, student.SubDivisionID) {
				stale = append(stale, t.ID)
			}
		}
	}
	return stale
}

// ResolveTemplates filters the active templates of a student's (branch,
// division, semester) down to the set the student must actually attend:
//
//  1. Elective subjects the student did not choose are discarded outright.
//  2. The rest are grouped by (subject, lecture kind).
//  3. If any template in a group matches the student's batch directly, only
//     the matching ones are kept, so a D12 student is never also scheduled
//     into the D11 section of the same subject.
//  4. If none match and the subject is an elective, the whole group is kept:
//     the elective is mandatory even though no session was filed under this
//     student's batch. A core subject with no batch match is dropped.
//
// The elective/core asymmetry in step 4 mirrors the product's existing rule;
// do not extend it without confirmation.
func ResolveTemplates(all []models.LectureTemplate, electiveNames map[string]struct{}, student *models.Student) []models.LectureTemplate {
	var candidates []models.LectureTemplate
	for _, t := range all {
		if _, isElective := electiveNames[t.Subject]; isElective {
			if t.Subject != student.ElectiveChoice1 && t.Subject != student.ElectiveChoice2 {
				continue
			}
		}
		candidates = append(candidates, t)
	}

	grouped := make(map[SubjectKey][]models.LectureTemplate)
	var order []SubjectKey
	for _, t := range candidates {
		key := SubjectKey{Subject: t.Subject, Type: t.LectureType}
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], t)
	}

	var resolved []models.LectureTemplate
	for _, key := range order {
		group := grouped[key]
		var matches []models.LectureTemplate
		for _, t := range group {
			if BatchMatches(t.Batch, student.SubDivisionID) {
				matches = append(matches, t)
			}
		}

		switch {
		case len(matches) > 0:
			resolved = append(resolved, matches...)
		default:
			if _, isElective := electiveNames[key.Subject]; isElective {
				resolved = append(resolved, group...)
			}
		}
	}

	return resolved
}
