// Package dto defines the JSON shapes exchanged with API clients and the
// mappings between them and domain or service types.
//
// View DTOs never carry secrets such as the password hash. Create DTOs omit
// system-assigned fields (identity, timestamps, gamification state). Update
// DTOs wrap every field in domain.Optional so that a missing key leaves the
// stored value untouched while an explicit null clears it.
package dto
