// Package service contains the application use cases. It orchestrates domain
// objects and the repositories defined in internal/store.
//
// Services receive their dependencies through constructor injection and never
// depend on a concrete storage implementation. Operations spanning more than
// one repository call run inside store.RunInTransaction.
//
// Live play sessions are hosted by the play subpackage; this package owns
// children, their game assignments and their progress history, and acts as
// the session record sink.
package service
