// Package repository defines the data access layer. This file holds the
// sentinel errors shared across repositories so handlers can map failures to
// HTTP status codes without inspecting driver errors. ErrNotFound covers any
// missing entity and becomes a 404; ErrConflict and the *_Exists variants
// become 409; ErrAlreadyRegistered is raised when the unique
// (event, mentor) key rejects a duplicate registration.
package repository

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict signals that an operation cannot proceed due to conflicting
// existing state.
var ErrConflict = errors.New("conflict")

// ErrUsernameExists is returned when creating a user with a taken username.
var ErrUsernameExists = errors.New("username already exists")

// ErrCategoryExists is returned when creating a category whose name is taken.
var ErrCategoryExists = errors.New("category already exists")

// ErrAlreadyRegistered is returned when a mentor already holds a
// registration for the event, either found by the transactional check or
// enforced by the unique key on (event_id, mentor_id).
var ErrAlreadyRegistered = errors.New("already registered")

// ErrUnknownCategory is returned when an event references a category name
// that does not exist in the catalog.
var ErrUnknownCategory = errors.New("unknown category")
