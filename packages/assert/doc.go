// Package assert is the public assertion surface: checks are
// declared fluently, issued in declaration order, and resolved
// whenever the driver's answers come back.
//
//	a := assert.New(drv, assert.WithSink(report.NewConsole()))
//	a.Exists("#nav", "nav present")
//	a.Title("Welcome").Is("Welcome", "landing title")
//	a.Query("#teaser").
//		NumberOfElements(nil).Is(4, "four teasers").
//		End()
//	err := a.Run(ctx)
//
// Three composition styles share one frame stack:
//   - direct: every check names its selector
//   - chained: Chain() ... End() groups checks without re-prefixing
//   - queried: Query(selector) returns a handle whose checks omit
//     the selector until End()
//
// Value-producing checks (Text, Val, Width, NumberOfElements, ...)
// return a handle that accepts comparator attachments: Is, Not,
// Between, Gt, Gte, Lt and Lte judge the already-fetched value
// without issuing a second driver command. Each attachment fires at
// most once per check and operator.
//
// Run only guarantees command issuance order. Answers resolve in
// whatever order the driver produces them; WithStrictResolution
// makes each check wait for its answer before the next command goes
// out. A check the driver never answers stays pending forever;
// there is no timeout here. Settle waits for the in-flight rest,
// and Totals reports the resolved counts.
package assert
