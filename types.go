package nftmeta

// UnknownPolicy controls how keys that no record field consumes are handled.
type UnknownPolicy int

const (
	UnknownIgnore UnknownPolicy = iota // Drop unknown keys silently.
	UnknownReject                      // Report unknown keys as unknown_key issues.
)

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys).
}

// ParseOpt bundles decoding options.
type ParseOpt struct {
	Strictness Strictness
	Unknown    UnknownPolicy
	MaxDepth   int   // 0 means unlimited.
	MaxBytes   int64 // 0 means unlimited.
	// FailFast stops at the first issue instead of collecting all of them.
	FailFast bool
}

// StrictParseOpt returns the recommended options for untrusted input:
// duplicate and unknown keys are errors and nesting is bounded.
func StrictParseOpt() ParseOpt {
	return ParseOpt{
		Strictness: Strictness{OnDuplicateKey: Error},
		Unknown:    UnknownReject,
		MaxDepth:   64,
	}
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}
