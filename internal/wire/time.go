package wire

import (
	"time"

	"github.com/reoring/nftmeta"
	"github.com/reoring/nftmeta/codec"
)

// Time reads a timestamp member (RFC3339 string or epoch milliseconds).
func (o *Object) Time(key string, required bool) (time.Time, bool) {
	raw, ok := o.Raw(key, required)
	if !ok {
		return time.Time{}, false
	}
	t, err := codec.DecodeTimestampJSON(raw, o.Path(key))
	if err != nil {
		o.Add(nftmeta.ToIssues(err)...)
		return time.Time{}, false
	}
	return t, true
}
