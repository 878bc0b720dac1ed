package main

import (
	"fmt"
	"io"

	"github.com/deepch/ebml/format/fmp4/fmp4io"
	"github.com/deepch/ebml/format/mkv"
	"github.com/deepch/ebml/format/saz"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

type Report struct {
	RunID        string              `json:"run_id"`
	Archive      string              `json:"archive"`
	Media        saz.Media           `json:"media"`
	Bytes        int                 `json:"bytes"`
	WebM         *mkv.Report         `json:"webm,omitempty"`
	SegmentIndex *SegmentIndexReport `json:"segment_index,omitempty"`
}

type SegmentIndexReport struct {
	Offset      int                 `json:"offset"`
	TimeScale   uint32              `json:"timescale"`
	EarliestPTS uint64              `json:"earliest_pts"`
	References  []SubsegmentSummary `json:"references"`
}

type SubsegmentSummary struct {
	Size          uint32  `json:"size"`
	Seconds       float64 `json:"seconds"`
	StartsWithSAP bool    `json:"starts_with_sap"`
}

// dump locates the requested media in the archive index and decodes it.
func dump(a *saz.Archive, kind saz.Kind, cfg config, log zerolog.Logger) (*Report, error) {
	index, err := a.ReadFile(cfg.IndexPage)
	if err != nil {
		return nil, err
	}

	media, err := saz.FindMedia(index, kind, cfg.Index)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", media.Path).Str("type", media.ContentType).Msg("media located")

	data, err := a.ReadFile(media.Path)
	if err != nil {
		return nil, err
	}

	report := &Report{Media: media, Bytes: len(data)}

	switch media.ContentType {
	case "video/webm":
		if !mkv.Probe(data) {
			log.Debug().Int("cluster", mkv.FindCluster(data)).Msg("no EBML header, scanning from first cluster")
		}
		if report.WebM, err = mkv.ScanWebM(data); err != nil {
			return nil, fmt.Errorf("scan webm %s: %w", media.Path, err)
		}
		log.Info().Int("clusters", report.WebM.Clusters).Int("blocks", len(report.WebM.Blocks)).Msg("webm scanned")
	default:
		sidx, err := fmp4io.FindSegmentIndex(data)
		if err != nil {
			return nil, fmt.Errorf("scan mp4 %s: %w", media.Path, err)
		}
		report.SegmentIndex = summarizeSegmentIndex(sidx)
		log.Info().Int("references", len(sidx.References)).Uint32("timescale", sidx.TimeScale).Msg("segment index decoded")
	}

	return report, nil
}

func summarizeSegmentIndex(sidx *fmp4io.SegmentIndex) *SegmentIndexReport {
	offset, _ := sidx.Pos()
	r := &SegmentIndexReport{
		Offset:      offset,
		TimeScale:   sidx.TimeScale,
		EarliestPTS: sidx.EarliestPTS,
		References:  make([]SubsegmentSummary, 0, len(sidx.References)),
	}
	for _, ref := range sidx.References {
		r.References = append(r.References, SubsegmentSummary{
			Size:          ref.ReferencedSize,
			Seconds:       ref.Duration(sidx.TimeScale).Seconds(),
			StartsWithSAP: ref.StartsWithSAP,
		})
	}
	return r
}

func (r *Report) writeText(w io.Writer) {
	fmt.Fprintf(w, "%s %s (%d bytes)\n", r.Media.Path, r.Media.ContentType, r.Bytes)

	if webm := r.WebM; webm != nil {
		if h := webm.Header; h != nil {
			fmt.Fprintf(w, "doctype: %s v%d\n", h.DocType, h.DocTypeVersion)
		}
		if info := webm.Info; info != nil {
			fmt.Fprintf(w, "duration: %.3f scale: %d app: %s\n", info.Duration, info.TimecodeScale, info.MuxingApp)
		}
		fmt.Fprintf(w, "clusters: %d first at %d\n", webm.Clusters, webm.FirstCluster)
		// block ends are printed relative to the first cluster
		for _, b := range webm.Blocks {
			fmt.Fprintf(w, "%d: %d\n", b.Index, b.End-max(webm.FirstCluster, 0))
		}
	}

	if sidx := r.SegmentIndex; sidx != nil {
		fmt.Fprintf(w, "sidx at %d timescale: %d count: %d\n", sidx.Offset, sidx.TimeScale, len(sidx.References))
		for i, ref := range sidx.References {
			fmt.Fprintf(w, "%d: %d %.5f\n", i, ref.Size, ref.Seconds)
		}
	}
}

func (r *Report) writeJSON(w io.Writer) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
