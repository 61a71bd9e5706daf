// ABOUTME: Readiness reporting for the update endpoint.
// ABOUTME: Backs the /healthz route; true once all collaborators are wired.

package dyndns53

// Ready reports whether the updater has every stage it needs to serve
// traffic. Collaborators are wired once at startup and never change.
func (u *Updater) Ready() bool {
	return u.auth != nil && u.resolver != nil && u.rec != nil
}
