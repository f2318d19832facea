package domain

// domain package contains the Domain Models for the aicore application.
//
// Core entities in the domain are:
//
// - `guideline`: one classified sentence extracted from program guideline
// text (a Fact), and the structured set built from a batch of texts
// (Guidelines). Facts are immutable once produced by the structurer.
//
// - `project`: the complete synthesized proposal record (ProjectStructure),
// subject to bias and quality scoring. It is owned by the request which
// created it until it is handed to rendering or persistence.
//
// - `feedback`: append-only outcome feedback (FeedbackEntry) accumulated in
// the feedback ledger and consumed, never deleted, by retraining.
//
// Physical representation of these entities (their RDB expression) lives in
// `pkg/db` and `pkg/db/postgres`. Derived reports (bias, conformity) are
// not entities; they live with their engines.
