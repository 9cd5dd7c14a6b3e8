// Package errors provides the coded error type shared by the combat engine,
// its orchestrators and the gRPC surface.
//
// Every failure that crosses a package boundary is an *Error carrying a Code,
// a caller-facing message, an optional cause and optional metadata:
//
//	err := errors.NotFound("combatant not found").WithMeta("combatant_id", id)
//	err := errors.FailedPreconditionf("%s is on cooldown for %d turns", action, turns)
//
// Wrapping keeps the original code so callers can still branch on it:
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save combat session")
//	}
//	if errors.IsNotFound(err) { ... }
//
// How the combat taxonomy maps onto codes:
//   - InvalidArgument: malformed input such as bad dice notation, unknown
//     action type, a target on the wrong side
//   - NotFound: unknown session, actor, target or team-up partner
//   - FailedPrecondition: acting at 0 HP, action on cooldown, combat already over
//   - Internal: storage or encoding failures
//
// Action validation verdicts (impossible, redirect, expand) are results, not
// errors, and never appear here.
//
// Handlers convert with ToGRPCError before returning to gRPC clients.
package errors
