package reconciler

import "github.com/vireoui/vireo/internal/view"

// init installs PatchChild as view's DefaultPatch, the same driver-
// registration pattern database/sql uses to let a leaf package (view)
// stay import-free of the package that implements policy on top of it
// (reconciler). Any program that imports internal/reconciler (directly or
// via internal/component) gets the real same-slot-reuse patcher instead
// of view's disposal-only fallback.
func init() {
	view.DefaultPatch = DynamicPatcher()
}
