// Package preflight provides readiness checks for the encoder binary and the
// filesystem paths mediashrink touches.
//
// The CLI "mediashrink check" command runs RunAll and CheckSystemDeps to show
// whether a run would start. The run itself performs its own fatal checks on
// the asset root and tool; these results are advisory.
package preflight
