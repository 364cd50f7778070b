// Package models defines the persisted domain models for Flipfolio.
//
// # Models
//
//   - User: registered account (login, listing ownership)
//   - Listing: an off-market property a user is evaluating
//   - Photo: an uploaded listing photo with its public URL
//   - SavedAnalysis: the flattened subset of a financial analysis kept per
//     listing, used to re-seed the analysis engine's inputs
//
// # Design Principles
//
//  1. Models carry persistence state only. The analysis engine has its own
//     value types (engine.DealInputs, engine.AnalysisResult) and never
//     depends on this package.
//  2. Relationships use ID strings instead of pointers to avoid circular
//     references.
//  3. SavedAnalysis stores inputs, never derived outputs: the engine's
//     result is always recomputed from inputs, never read back from
//     storage.
package models
