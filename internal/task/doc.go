// Package task implements owner-scoped task operations.
//
// Every by-ID operation re-checks ownership against the caller's identity
// before touching the task. A missing task reports store.ErrNotFound; a
// task owned by someone else reports ErrForbidden, in that order, so the
// two cases stay distinguishable. Ownership is fixed at creation and
// never changes on update.
package task
