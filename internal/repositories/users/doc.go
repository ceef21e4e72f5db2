// Package users persists local user accounts.
//
// Emails are stored as given; callers normalize them first. The unique
// index idx_user_email rejects duplicates, reported as
// common.ErrorAlreadyExists.
package users
