package alloc

import jsoniter "github.com/json-iterator/go"

var json = jsoniter.Config{
	OnlyTaggedField: true,
	CaseSensitive:   true,
}.Froze()

// Stats is a snapshot of an allocator's bookkeeping. Byte counts are in
// rounded block sizes, not requested sizes.
type Stats struct {
	Allocs      int `json:"allocs"`
	Deallocs    int `json:"deallocs"`
	LiveBlocks  int `json:"live_blocks"`
	LiveBytes   int `json:"live_bytes"`
	LargeLive   int `json:"large_live"`
	MappedBytes int `json:"mapped_bytes"`
	Chunks      int `json:"chunks"`
	Wasted      int `json:"wasted"`
}

func (st Stats) String() string {
	b, err := json.Marshal(st)
	if err != nil {
		return err.Error()
	}
	return string(b)
}
