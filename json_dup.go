package nftmeta

import (
	"io"

	eng "github.com/reoring/nftmeta/internal/engine"
)

// DetectDuplicateKeys reports duplicate object keys in a JSON document. Each
// issue's Path points at the repeated member. maxIssues < 0 means unlimited.
func DetectDuplicateKeys(data []byte, strict Strictness, maxIssues int) (Issues, error) {
	si, err := eng.Scan(data, eng.ScanOpt{OnDup: toEngineDup(strict.OnDuplicateKey), MaxIssues: maxIssues})
	if err != nil {
		return nil, err
	}
	return fromEngineIssues(si), nil
}

// DetectDuplicateKeysReader is DetectDuplicateKeys over an io.Reader. It
// consumes the reader fully.
func DetectDuplicateKeysReader(r io.Reader, strict Strictness, maxIssues int) (Issues, error) {
	si, err := eng.ScanReader(r, eng.ScanOpt{OnDup: toEngineDup(strict.OnDuplicateKey), MaxIssues: maxIssues})
	if err != nil {
		return nil, err
	}
	return fromEngineIssues(si), nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func fromEngineIssues(si []eng.SimpleIssue) Issues {
	var iss Issues
	for _, s := range si {
		it := ParsePath(s.Path).Issue(s.Code, s.Message)
		iss = AppendIssues(iss, it)
	}
	return iss
}
