package offsetalloc

import (
	"strconv"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// MarshalStorageReport encodes r as a compact JSON object, hand-rolled with
// jwriter rather than reflection-based encoding/json.
func MarshalStorageReport(r StorageReport) ([]byte, error) {
	w := jwriter.NewWriter()

	obj := w.Object()
	obj.Name("TotalFreeSpace").Int(int(r.TotalFreeSpace))
	obj.Name("LargestFreeRegion").Int(int(r.LargestFreeRegion))
	obj.End()

	return w.Bytes(), w.Error()
}

// MarshalStorageReportFull encodes r as a JSON object keyed by bin index,
// one entry per bin that currently holds free nodes. Empty bins are
// omitted rather than written out as 256 zeroed entries.
func MarshalStorageReportFull(r StorageReportFull) ([]byte, error) {
	w := jwriter.NewWriter()

	obj := w.Object()
	for b := 0; b < BinCount; b++ {
		region := r.FreeRegions[b]
		if region.Count == 0 {
			continue
		}

		binObj := obj.Name(strconv.Itoa(b)).Object()
		binObj.Name("Count").Int(region.Count)
		binObj.Name("MinSize").Int(int(region.MinSize))
		binObj.Name("MaxSize").Int(int(region.MaxSize))
		binObj.End()
	}
	obj.End()

	return w.Bytes(), w.Error()
}
