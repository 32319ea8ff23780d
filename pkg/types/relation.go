// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Relation is a relation label: one of the 41 relation types of the corpus,
// or NoRelation for negative examples.
type Relation string

// NoRelation is the negative label assigned when no relation holds between
// the subject and object mentions.
const NoRelation Relation = "no_relation"

// relationList is the closed set of 41 relation types: 25 person-subject
// relations and 16 organization-subject relations. Label spelling follows
// the TAC KBP slot names, slashes included.
var relationList = []Relation{
	"per:age",
	"per:alternate_names",
	"per:cause_of_death",
	"per:charges",
	"per:children",
	"per:cities_of_residence",
	"per:city_of_birth",
	"per:city_of_death",
	"per:countries_of_residence",
	"per:country_of_birth",
	"per:country_of_death",
	"per:date_of_birth",
	"per:date_of_death",
	"per:employee_of",
	"per:origin",
	"per:other_family",
	"per:parents",
	"per:religion",
	"per:schools_attended",
	"per:siblings",
	"per:spouse",
	"per:stateorprovince_of_birth",
	"per:stateorprovince_of_death",
	"per:stateorprovinces_of_residence",
	"per:title",
	"org:alternate_names",
	"org:city_of_headquarters",
	"org:country_of_headquarters",
	"org:dissolved",
	"org:founded",
	"org:founded_by",
	"org:member_of",
	"org:members",
	"org:number_of_employees/members",
	"org:parents",
	"org:political/religious_affiliation",
	"org:shareholders",
	"org:stateorprovince_of_headquarters",
	"org:subsidiaries",
	"org:top_members/employees",
	"org:website",
}

var relationSet = func() map[Relation]bool {
	m := make(map[Relation]bool, len(relationList)+1)
	for _, r := range relationList {
		m[r] = true
	}
	m[NoRelation] = true
	return m
}()

// Relations returns the 41 relation types in canonical order, without the
// negative label. The returned slice must not be modified.
func Relations() []Relation {
	return relationList
}

// ValidRelation reports whether r is a known relation label, including
// NoRelation.
func ValidRelation(r Relation) bool {
	return relationSet[r]
}

// IsNegative reports whether r is the negative label.
func (r Relation) IsNegative() bool {
	return r == NoRelation
}
