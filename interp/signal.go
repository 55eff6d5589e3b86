package interp

// signalKind distinguishes the non-local control transfers that can unwind
// out of statement execution. Grounded on the teacher's eval/eval_statements.go,
// which already threads objects.Break/Continue/ReturnValue up through
// evalStatements as ordinary values rather than panicking; this project
// generalizes that into a small result-enum type instead of reusing one of
// the runtime value types for it.
type signalKind int

const (
	sigNone signalKind = iota
	sigBreak
	sigContinue
	sigReturn
)

// ctrl is the result of executing a statement: either nothing unusual
// happened (sigNone), or execution is unwinding toward a loop or function
// boundary and carries along whatever payload that unwind needs.
type ctrl struct {
	kind  signalKind
	value any // only meaningful when kind == sigReturn
}

var none = ctrl{kind: sigNone}
