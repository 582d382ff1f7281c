// Package sanitizer provides input normalization for guest-facing booking
// data before validation and storage.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning empty strings or empty slices rather than errors.
//
// Normalization includes:
//   - Phone numbers: Convert to E.164 format (+[country][number])
//   - Strings: Collapse whitespace, trim leading/trailing spaces
//   - Room types: Collapse whitespace so catalog keys compare predictably
//   - Slices: Remove duplicates and empty values after normalization
package sanitizer
