// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the tacred-tools pipeline:
// corpus examples and their token annotations, the relation label inventory,
// entity types, partitions, and per-stage configuration.
package types

import "strings"

// Token is one annotated token of an example sentence. Field names follow
// the column names of the tabular corpus format; all annotations come from
// the Stanford CoreNLP pipeline that produced the corpus.
type Token struct {
	// Text is the surface form of the token.
	Text string `json:"text" yaml:"text"`

	// POS is the Penn Treebank part-of-speech tag (stanford_pos column).
	POS string `json:"pos" yaml:"pos"`

	// NER is the named-entity tag, "O" for none (stanford_ner column).
	NER string `json:"ner" yaml:"ner"`

	// DepRel is the dependency relation to the head token
	// (stanford_deprel column).
	DepRel string `json:"deprel" yaml:"deprel"`

	// Head is the 1-based index of the dependency head; 0 marks the
	// sentence root (stanford_head column).
	Head int `json:"head" yaml:"head"`
}

// Span is a contiguous token range, zero-based and inclusive at both ends.
// This is the JSON-format encoding of the SUBJECT/OBJECT marker columns.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the number of tokens covered by the span.
func (s Span) Len() int {
	return s.End - s.Start + 1
}

// Contains reports whether the zero-based token index i falls inside the span.
func (s Span) Contains(i int) bool {
	return i >= s.Start && i <= s.End
}

// Example is one annotated sentence of the corpus: a unique ID, the source
// document, a relation label, and an ordered token sequence with exactly one
// contiguous subject span and one contiguous object span.
type Example struct {
	// ID uniquely identifies the example across all partitions
	// (e.g. "e7798fb926b9403cfcd2").
	ID string `json:"id" yaml:"id"`

	// DocID identifies the TAC KBP source document the sentence was
	// drawn from.
	DocID string `json:"docid" yaml:"docid"`

	// Relation is the gold label: one of the 41 relation types, or
	// NoRelation for negative examples.
	Relation Relation `json:"relation" yaml:"relation"`

	// Tokens is the annotated token sequence.
	Tokens []Token `json:"tokens" yaml:"tokens"`

	// Subj is the subject entity mention span.
	Subj Span `json:"subj" yaml:"subj"`

	// SubjType is the subject entity type: PERSON or ORGANIZATION.
	SubjType EntityType `json:"subj_type" yaml:"subj_type"`

	// Obj is the object entity mention span.
	Obj Span `json:"obj" yaml:"obj"`

	// ObjType is the object entity type from the TAC KBP inventory.
	ObjType EntityType `json:"obj_type" yaml:"obj_type"`

	// Partition records which split the example came from, when known:
	// train, dev, or test. Empty when read from a bare annotation file.
	Partition Partition `json:"partition,omitempty" yaml:"partition,omitempty"`
}

// Words returns the surface forms of the example's tokens.
func (e *Example) Words() []string {
	words := make([]string, len(e.Tokens))
	for i, t := range e.Tokens {
		words[i] = t.Text
	}
	return words
}

// Sentence returns the space-joined surface text of the sentence.
func (e *Example) Sentence() string {
	return strings.Join(e.Words(), " ")
}

// SubjText returns the space-joined surface text of the subject mention.
func (e *Example) SubjText() string {
	return strings.Join(e.Words()[e.Subj.Start:e.Subj.End+1], " ")
}

// ObjText returns the space-joined surface text of the object mention.
func (e *Example) ObjText() string {
	return strings.Join(e.Words()[e.Obj.Start:e.Obj.End+1], " ")
}

// EntityType is a TAC KBP entity type tag as it appears in the subj_type
// and obj_type columns (e.g. "PERSON", "ORGANIZATION", "DATE").
type EntityType string

// Subject mentions are restricted to persons and organizations; objects
// draw on the full inventory.
const (
	TypePerson       EntityType = "PERSON"
	TypeOrganization EntityType = "ORGANIZATION"
)

// objectTypes is the closed inventory of object entity types.
var objectTypes = map[EntityType]bool{
	TypePerson:        true,
	TypeOrganization:  true,
	"LOCATION":        true,
	"CITY":            true,
	"COUNTRY":         true,
	"STATE_OR_PROVINCE": true,
	"DATE":            true,
	"NUMBER":          true,
	"TITLE":           true,
	"NATIONALITY":     true,
	"RELIGION":        true,
	"URL":             true,
	"DURATION":        true,
	"MISC":            true,
	"CAUSE_OF_DEATH":  true,
	"CRIMINAL_CHARGE": true,
	"IDEOLOGY":        true,
}

// ValidSubjectType reports whether t is an admissible subject entity type.
func ValidSubjectType(t EntityType) bool {
	return t == TypePerson || t == TypeOrganization
}

// ValidObjectType reports whether t is an admissible object entity type.
func ValidObjectType(t EntityType) bool {
	return objectTypes[t]
}

// Partition identifies a corpus split.
type Partition string

const (
	PartitionTrain Partition = "train"
	PartitionDev   Partition = "dev"
	PartitionTest  Partition = "test"
)

// PartitionInfo records the documented size and source-year range of a split.
type PartitionInfo struct {
	Examples  int
	YearFirst int
	YearLast  int
}

// Partitions holds the documented composition of the corpus: sentences from
// the 2009-2014 TAC KBP evaluations, split by year.
var Partitions = map[Partition]PartitionInfo{
	PartitionTrain: {Examples: 75050, YearFirst: 2009, YearLast: 2012},
	PartitionDev:   {Examples: 25764, YearFirst: 2013, YearLast: 2013},
	PartitionTest:  {Examples: 18660, YearFirst: 2014, YearLast: 2014},
}

// ValidPartition reports whether p names a known corpus split.
func ValidPartition(p Partition) bool {
	_, ok := Partitions[p]
	return ok
}
