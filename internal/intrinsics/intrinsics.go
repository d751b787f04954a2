// Package intrinsics recognizes the callee names the analysis treats as
// opaque and skips from call-target reporting entirely — the debug/
// intrinsic namespace the original analysis filtered with
// Function::isIntrinsic(). There is no type information attached to these
// names; a callee is an intrinsic purely by naming convention.
package intrinsics

import "strings"

// namespace prefix for every recognized intrinsic, e.g. "llvm.dbg.value".
const namespace = "llvm."

// IsIntrinsic reports whether name names a call target that should be
// skipped by call-target reporting and by callee-summary recursion.
// spec.md §9 "Intrinsic filtering" skips any call whose callee name begins
// with the reserved namespace, not only the debug subset — a module can
// legally call other llvm.* intrinsics (llvm.trap, llvm.assume, ...) this
// analysis does not model, and none of them belong in a call-target report.
func IsIntrinsic(name string) bool {
	return strings.HasPrefix(name, namespace)
}
