// Package animate turns layout targets into animation requests.
//
// [Apply] is the transform applier: for one item it assigns the stacking
// index, issues translate, scale and rotate requests in order, and returns a
// [Pending] handle that waits for the three concurrently. Callers that need determinism (tests,
// snapshot renderers) call [Pending.Wait]; the carousel itself never waits, so
// a new layout pass simply retargets animations that are still running.
//
// The host's animation subsystem is reached through the [Animator] interface.
// Two implementations ship with the package:
//
//   - [Sprite]: an in-process tween engine built on gween. Requests retarget
//     running tweens and the owner advances time with [Sprite.Tick].
//   - [Recorder]: completes every request instantly and records it.
//
// Easing functions are looked up by name ("cubic-out", "linear", ...) with
// [Lookup]; see [Names] for the full table.
package animate
